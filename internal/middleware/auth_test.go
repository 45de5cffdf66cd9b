package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"paydown/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signedTestToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &JWTClaims{
		UserID: userID,
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    "paydown-api",
			Subject:   userID,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTKey())
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	const userID = "0198d4a2-5a51-7eee-8000-0123456789ab"

	t.Run("accepts a token from GenerateToken", func(t *testing.T) {
		user := &models.User{Email: "test@example.com"}
		user.ID = userID
		token, err := GenerateToken(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		rec := doAuthRequest(setupAuthTestRouter(), "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to parse response body: %v", err)
		}
		if body["user_id"] != userID {
			t.Errorf("user_id = %v, want %s", body["user_id"], userID)
		}
	})

	t.Run("rejects bad headers and tokens", func(t *testing.T) {
		tests := []struct {
			name       string
			authHeader string
		}{
			{name: "missing_header", authHeader: ""},
			{name: "wrong_scheme", authHeader: "Basic abc123"},
			{name: "missing_token", authHeader: "Bearer"},
			{name: "garbage_token", authHeader: "Bearer not.a.jwt"},
			{name: "expired_token", authHeader: "Bearer " + signedTestToken(t, userID, time.Now().Add(-time.Hour))},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := doAuthRequest(setupAuthTestRouter(), tt.authHeader)

				if rec.Code != http.StatusUnauthorized {
					t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
				}
			})
		}
	})
}
