package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	summaryFn    func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error)
	invalidateFn func(userID string)
}

func (m *mockDashboardService) Summary(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID, preset, page)
	}
	return &services.DashboardSummary{
		Range:        preset,
		Trends:       []services.TrendWidget{},
		Transactions: []models.Transaction{},
	}, nil
}

func (m *mockDashboardService) Invalidate(userID string) {
	if m.invalidateFn != nil {
		m.invalidateFn(userID)
	}
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", injectUserID("user-1"), handler.GetDashboard)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("uses explicit range parameter", func(t *testing.T) {
		var gotPreset models.RangePreset
		dash := &mockDashboardService{
			summaryFn: func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
				gotPreset = preset
				return &services.DashboardSummary{Range: preset}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dash, &mockUserService{}))

		rec := doRequest(r, "GET", "/dashboard?range=last24hours", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPreset != models.RangeLast24Hours {
			t.Errorf("expected last24hours, got %q", gotPreset)
		}
	})

	t.Run("falls back to user default view", func(t *testing.T) {
		var gotPreset models.RangePreset
		dash := &mockDashboardService{
			summaryFn: func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
				gotPreset = preset
				return &services.DashboardSummary{Range: preset}, nil
			},
		}
		users := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{ID: id, DefaultView: models.RangeLast12Months}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dash, users))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPreset != models.RangeLast12Months {
			t.Errorf("expected last12months from settings, got %q", gotPreset)
		}
	})

	t.Run("falls back to system default when settings unavailable", func(t *testing.T) {
		var gotPreset models.RangePreset
		dash := &mockDashboardService{
			summaryFn: func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
				gotPreset = preset
				return &services.DashboardSummary{Range: preset}, nil
			},
		}
		users := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dash, users))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotPreset != models.RangeDefault {
			t.Errorf("expected default range, got %q", gotPreset)
		}
	})

	t.Run("returns 400 on unknown range", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}, &mockUserService{}))

		rec := doRequest(r, "GET", "/dashboard?range=fortnight", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("serializes widgets and transactions", func(t *testing.T) {
		dash := &mockDashboardService{
			summaryFn: func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
				return &services.DashboardSummary{
					Range: preset,
					Trends: []services.TrendWidget{
						{Type: models.TransactionTypeExpense, Amount: decimal.RequireFromString("12.30"), PreviousAmount: decimal.Zero},
						{Type: models.TransactionTypeIncome, Error: "cannot fetch trend"},
					},
					Transactions: []models.Transaction{{ID: testTransactionID, UserID: userID}},
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dash, &mockUserService{}))

		rec := doRequest(r, "GET", "/dashboard?range=last7days", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		trends := result["trends"].([]interface{})
		if len(trends) != 2 {
			t.Fatalf("expected 2 widgets, got %d", len(trends))
		}
		failed := trends[1].(map[string]interface{})
		if failed["error"] != "cannot fetch trend" {
			t.Errorf("expected fallback message, got %v", failed["error"])
		}
		ok := trends[0].(map[string]interface{})
		if _, present := ok["error"]; present {
			t.Errorf("expected no error key on healthy widget, got %v", ok)
		}
	})

	t.Run("returns 502 on summary failure", func(t *testing.T) {
		dash := &mockDashboardService{
			summaryFn: func(userID string, preset models.RangePreset, page pagination.PageRequest) (*services.DashboardSummary, error) {
				return nil, apperrors.ErrFetchFailed
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dash, &mockUserService{}))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FETCH_FAILED")
	})
}
