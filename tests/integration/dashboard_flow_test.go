package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestDashboardFlow_SummaryAndInvalidation(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.signInUser(t, "dash@test.com")

	today := time.Now().Format("2006-01-02")
	for _, body := range []string{
		fmt.Sprintf(`{"type":"Expense","category":"Food","amount":"25.50","created_at":%q}`, today),
		fmt.Sprintf(`{"type":"Income","amount":"1000","created_at":%q}`, today),
	} {
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/dashboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["range"] != "last30days" {
		t.Errorf("expected default range last30days, got %v", result["range"])
	}

	// One widget per type, in display order.
	trends := result["trends"].([]interface{})
	if len(trends) != 4 {
		t.Fatalf("expected 4 trend widgets, got %d", len(trends))
	}
	wantOrder := []string{"Expense", "Income", "Saving", "Investment"}
	byType := make(map[string]map[string]interface{})
	for i, raw := range trends {
		widget := raw.(map[string]interface{})
		if widget["type"] != wantOrder[i] {
			t.Errorf("widget %d: expected type %s, got %v", i, wantOrder[i], widget["type"])
		}
		if _, failed := widget["error"]; failed {
			t.Errorf("widget %v unexpectedly failed: %v", widget["type"], widget["error"])
		}
		byType[widget["type"].(string)] = widget
	}
	if byType["Expense"]["amount"] != "25.5" {
		t.Errorf("expected expense trend 25.5, got %v", byType["Expense"]["amount"])
	}
	if byType["Income"]["amount"] != "1000" {
		t.Errorf("expected income trend 1000, got %v", byType["Income"]["amount"])
	}
	if byType["Saving"]["amount"] != "0" {
		t.Errorf("expected saving trend 0, got %v", byType["Saving"]["amount"])
	}

	transactions := result["transactions"].([]interface{})
	if len(transactions) != 2 {
		t.Errorf("expected 2 transactions in the listing, got %d", len(transactions))
	}

	// A mutation drops the cached widgets; the next read reflects it.
	body := fmt.Sprintf(`{"type":"Expense","category":"Transport","amount":"10","created_at":%q}`, today)
	if rec := app.request("POST", "/api/v1/transactions", body, token); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", token)
	result = parseJSON(t, rec)
	for _, raw := range result["trends"].([]interface{}) {
		widget := raw.(map[string]interface{})
		if widget["type"] == "Expense" && widget["amount"] != "35.5" {
			t.Errorf("expected expense trend 35.5 after mutation, got %v", widget["amount"])
		}
	}
}

func TestDashboardFlow_RangeResolution(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.signInUser(t, "dashrange@test.com")

	// Explicit query parameter wins.
	rec := app.request("GET", "/api/v1/dashboard?range=last7days", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["range"]; got != "last7days" {
		t.Errorf("expected last7days, got %v", got)
	}

	// Saved default view is used when no parameter is given.
	body := `{"full_name":"Dash User","default_view":"last12months"}`
	rec = app.request("PUT", "/api/v1/settings", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("settings update failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", token)
	if got := parseJSON(t, rec)["range"]; got != "last12months" {
		t.Errorf("expected saved default view last12months, got %v", got)
	}

	rec = app.request("GET", "/api/v1/dashboard?range=thismonth", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown range, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDashboardFlow_ScopedPerUser(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.signInUser(t, "dash-a@test.com")
	tokenB, _, _ := app.signInUser(t, "dash-b@test.com")

	today := time.Now().Format("2006-01-02")
	body := fmt.Sprintf(`{"type":"Income","amount":"500","created_at":%q}`, today)
	if rec := app.request("POST", "/api/v1/transactions", body, tokenA); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := app.request("GET", "/api/v1/dashboard", "", tokenB)
	result := parseJSON(t, rec)
	for _, raw := range result["trends"].([]interface{}) {
		widget := raw.(map[string]interface{})
		if widget["amount"] != "0" {
			t.Errorf("widget %v leaked another user's totals: %v", widget["type"], widget["amount"])
		}
	}
	if transactions := result["transactions"].([]interface{}); len(transactions) != 0 {
		t.Errorf("expected empty listing for user B, got %d", len(transactions))
	}
}
