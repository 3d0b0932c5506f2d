package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"raankai/backend/internal/cache"
	"raankai/backend/internal/domain"
	"raankai/backend/internal/service"
	"raankai/backend/internal/store/memory"
)

// newTestAPI builds a full API with an in-memory store, real AuthManager and
// real Service so handler tests exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	repo := memory.NewSeeded()
	svc := service.New(repo, cache.NoopDashboardCache{}, time.Second, 0, 0, nil)
	auth := NewAuthManager("test-secret-key", time.Hour, repo)

	return New(svc, auth, "*", nil)
}

func doJSON(t *testing.T, api *API, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func authHeaders(token, csrf string) map[string]string {
	h := map[string]string{"Authorization": "Bearer " + token}
	if csrf != "" {
		h["X-CSRF-Token"] = csrf
	}
	return h
}

func TestHandleHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleLogin_Success(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["access_token"] == "" || body["access_token"] == nil {
		t.Fatalf("expected access_token in response, got %v", body)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "admin",
		"password": "wrongpassword",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleChickenParts_RequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/api/v1/chicken-parts", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandleChickenParts_WithValidToken(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/chicken-parts", nil, authHeaders(token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["chicken_parts"] == nil {
		t.Fatalf("expected chicken_parts key in response, got %v", body)
	}
}

func TestMutationRequiresCSRFToken(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	payload := map[string]string{"name": "Walk-in"}
	rec := doJSON(t, api, http.MethodPost, "/api/v1/customers", payload, authHeaders(token, ""))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without CSRF token, got %d", rec.Code)
	}

	csrf := fetchCSRFToken(t, api)
	rec = doJSON(t, api, http.MethodPost, "/api/v1/customers", payload, authHeaders(token, csrf))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with CSRF token, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateOrderEndToEnd(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/customers", map[string]string{"name": "Somchai"}, authHeaders(token, csrf))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create customer failed: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Customer domain.Customer `json:"customer"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	rec = doJSON(t, api, http.MethodPost, "/api/v1/orders", domain.OrderCreateRequest{
		CustomerID: created.Customer.ID,
		Items:      []domain.OrderItem{{ChickenPartID: "part-breast", QuantityKg: 2}},
	}, authHeaders(token, csrf))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d %s", rec.Code, rec.Body.String())
	}

	var orderResp struct {
		Order domain.Order `json:"order"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&orderResp); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	// Seeded breast is 95 baht/kg, so 2 kg is 190 baht.
	if orderResp.Order.TotalSatang != 19000 {
		t.Fatalf("expected total 19000 satang, got %d", orderResp.Order.TotalSatang)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/chicken-parts/part-breast", nil, authHeaders(token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("get part failed: %d", rec.Code)
	}
	var partResp struct {
		ChickenPart domain.ChickenPart `json:"chicken_part"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&partResp); err != nil {
		t.Fatalf("decode part: %v", err)
	}
	if partResp.ChickenPart.StockKg != 118 {
		t.Fatalf("expected stock 118 after order, got %v", partResp.ChickenPart.StockKg)
	}
}

func TestStaffCannotDeleteParts(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "staff", "staff123")
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodDelete, "/api/v1/chicken-parts/part-wing", nil, authHeaders(token, csrf))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestRegisterRouteIsAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	staffToken := loginAs(t, api, "staff", "staff123")
	csrf := fetchCSRFToken(t, api)

	payload := map[string]string{"username": "newstaff", "password": "pass1234"}
	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/register", payload, authHeaders(staffToken, csrf))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff register, got %d", rec.Code)
	}

	adminToken := loginAs(t, api, "admin", "admin123")
	rec = doJSON(t, api, http.MethodPost, "/api/v1/auth/register", payload, authHeaders(adminToken, csrf))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin register, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestLowStockRequiresThresholdParam(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/chicken-parts/low-stock", nil, authHeaders(token, ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without threshold, got %d", rec.Code)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/chicken-parts/low-stock?threshold=15", nil, authHeaders(token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with threshold, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestAdjustStockEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/chicken-parts/part-feet/adjust-stock", domain.StockAdjustRequest{AmountKg: -500}, authHeaders(token, csrf))
	if rec.Code != http.StatusOK {
		t.Fatalf("adjust stock failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ChickenPart domain.ChickenPart `json:"chicken_part"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode part: %v", err)
	}
	if resp.ChickenPart.StockKg != 0 {
		t.Fatalf("expected stock clamped to 0, got %v", resp.ChickenPart.StockKg)
	}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "staff", "staff123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/dashboard/stats", nil, authHeaders(token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["stats"] == nil {
		t.Fatalf("expected stats key, got %v", body)
	}
}

func TestExportStockCSVHasBOM(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/export/stock.csv", nil, authHeaders(token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "stock.csv") {
		t.Fatalf("expected attachment filename, got %q", cd)
	}
	raw := rec.Body.Bytes()
	if len(raw) < 3 || raw[0] != 0xEF || raw[1] != 0xBB || raw[2] != 0xBF {
		t.Fatalf("expected UTF-8 BOM prefix, got % x", raw[:3])
	}
	if !strings.Contains(string(raw), "Part") {
		t.Fatalf("expected header row in CSV output")
	}
}

func TestUnknownExportIs404(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/export/secrets.csv", nil, authHeaders(token, ""))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown export, got %d", rec.Code)
	}
}

func TestGetMissingOrderIs404(t *testing.T) {
	api := newTestAPI(t)
	token := loginAs(t, api, "admin", "admin123")

	rec := doJSON(t, api, http.MethodGet, "/api/v1/orders/order-missing", nil, authHeaders(token, ""))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}
