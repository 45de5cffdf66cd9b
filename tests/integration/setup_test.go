package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paydown/internal/cache"
	"paydown/internal/handlers"
	"paydown/internal/logger"
	"paydown/internal/middleware"
	"paydown/internal/models"
	"paydown/internal/services"
	"paydown/internal/validation"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Debt{},
		&models.Payment{},
		&models.Strategy{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	schemas := validation.New()

	// Services
	userService := services.NewUserService(db)
	debtService := services.NewDebtService(db)
	paymentService := services.NewPaymentService(db, debtService)
	strategyService := services.NewStrategyService(db, cache.NewMemory())
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService, schemas)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService, schemas)
	strategyHandler := handlers.NewStrategyHandler(strategyService, auditService, schemas)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", debtHandler.GetDashboard)

	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.GET("/:id/progress", debtHandler.GetDebtProgress)
	debts.GET("/:id/payments", paymentHandler.GetDebtPayments)

	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.LogPayment)
	payments.GET("", paymentHandler.GetPayments)
	payments.GET("/summary", paymentHandler.GetPaymentSummary)

	strategies := protected.Group("/strategies")
	strategies.POST("", strategyHandler.CreateStrategy)
	strategies.GET("", strategyHandler.GetStrategies)
	strategies.GET("/compare", strategyHandler.CompareStrategies)
	strategies.GET("/:id", strategyHandler.GetStrategy)
	strategies.PUT("/:id", strategyHandler.UpdateStrategy)
	strategies.DELETE("/:id", strategyHandler.DeleteStrategy)
	strategies.POST("/:id/activate", strategyHandler.ActivateStrategy)
	strategies.GET("/:id/projection", strategyHandler.GetProjection)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}

// createDebt creates a debt via the API and returns its ID.
func (app *testApp) createDebt(t *testing.T, token, name string, balance, rate, minPayment float64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"category":"credit_card","current_balance":%v,`+
		`"original_balance":%v,"interest_rate":%v,"minimum_payment":%v,"due_day":15}`,
		name, balance, balance, rate, minPayment)
	rec := app.request("POST", "/api/v1/debts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create debt failed: %d %s", rec.Code, rec.Body.String())
	}
	debt := parseJSON(t, rec)["debt"].(map[string]interface{})
	return debt["id"].(string)
}
