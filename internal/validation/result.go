package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Issue is a single field-level validation problem. Path is the JSON name
// of the offending field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of validating one input record: either Valid with
// the normalized Data, or a summary Error with per-field Issues. Validation
// never surfaces as a Go error or panic across this boundary.
type Result[T any] struct {
	Valid  bool    `json:"valid"`
	Data   T       `json:"data,omitempty"`
	Error  string  `json:"error,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Valid: true, Data: data}
}

func fail[T any](summary string, err error) Result[T] {
	return Result[T]{Valid: false, Error: summary, Issues: issuesFrom(err)}
}

func failWith[T any](summary string, issues []Issue) Result[T] {
	return Result[T]{Valid: false, Error: summary, Issues: issues}
}

// issuesFrom converts a validator error into field issues. Anything that is
// not a field-level validation error (including recovered panics from the
// underlying library) becomes a single record-level issue.
func issuesFrom(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Path: "", Message: "input could not be validated"}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Path: fe.Field(), Message: message(fe)})
	}
	return issues
}
