package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/store"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Codes  *codeRecorder
}

// codeRecorder captures issued sign-in codes instead of delivering them.
type codeRecorder struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCodeRecorder() *codeRecorder {
	return &codeRecorder{codes: make(map[string]string)}
}

// Send implements services.CodeSender.
func (r *codeRecorder) Send(email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[email] = code
	return nil
}

// Last returns the most recently issued code for email.
func (r *codeRecorder) Last(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[email]
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
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
		&models.Transaction{},
		&models.Avatar{},
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
	codes := newCodeRecorder()

	// Services
	gateway := store.New(db)
	dashboardService := services.NewDashboardService(gateway, gateway)
	transactionService := services.NewTransactionService(gateway, dashboardService)
	userService := services.NewUserService(gateway, gateway, codes, 10*time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingsHandler := handlers.NewSettingsHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, userService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/otp", authHandler.RequestOTP)
	auth.POST("/verify", authHandler.VerifyOTP)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/avatar/:name", settingsHandler.GetAvatar)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/signout", authHandler.SignOut)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/settings", settingsHandler.UpdateSettings)
	protected.POST("/avatar", settingsHandler.UploadAvatar)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	return &testApp{DB: db, Router: router, Codes: codes}
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

// errorCode extracts the error code from an error envelope response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// signInUser completes the sign-in code flow for email and returns the
// access token, refresh token, and user ID.
func (app *testApp) signInUser(t *testing.T, email string) (accessToken, refreshToken, userID string) {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q}`, email)
	rec := app.request("POST", "/api/v1/auth/otp", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code request failed: %d %s", rec.Code, rec.Body.String())
	}

	code := app.Codes.Last(strings.ToLower(email))
	if code == "" {
		t.Fatalf("no sign-in code recorded for %s", email)
	}

	body = fmt.Sprintf(`{"email":%q,"code":%q}`, strings.ToLower(email), code)
	rec = app.request("POST", "/api/v1/auth/verify", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code verification failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(string)
}
