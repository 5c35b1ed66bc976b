package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blood-bank-api-server/config"
	"blood-bank-api-server/internal/auth"
	"blood-bank-api-server/internal/database"
	"blood-bank-api-server/internal/models"
	"blood-bank-api-server/internal/socket"
	"blood-bank-api-server/internal/store/memstore"
)

type testServer struct {
	router   *gin.Engine
	requests *memstore.RequestStore
	ledger   *memstore.InventoryStore
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: "1h"},
	}

	logger := zap.NewNop()
	ledger := memstore.NewInventoryStore()
	requests := memstore.NewRequestStore()
	admins := memstore.NewAdminStore()
	hub := socket.NewHub(logger)

	ctx := context.Background()
	require.NoError(t, database.SeedInventory(ctx, ledger, logger))
	require.NoError(t, database.SeedAdmin(ctx, admins, "admin@bloodbank.local", "admin-pass", logger))

	router := SetupRouter(cfg, ledger, requests, admins, hub, logger)

	ts := &testServer{router: router, requests: requests, ledger: ledger}
	ts.token = ts.login(t, "admin@bloodbank.local", "admin-pass", http.StatusOK)
	return ts
}

func (ts *testServer) login(t *testing.T, email, password string, wantStatus int) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"email": email, "password": password})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ts.router.ServeHTTP(w, req)

	require.Equal(t, wantStatus, w.Code, w.Body.String())
	if wantStatus != http.StatusOK {
		return ""
	}

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (ts *testServer) do(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func intakePayload(contact string) gin.H {
	return gin.H{
		"patientName":   "Jordan Rivera",
		"bloodGroup":    "O+",
		"hospital":      "City General Hospital",
		"unitsRequired": 2,
		"urgency":       models.UrgencyHigh,
		"contactPerson": contact,
		"phoneNumber":   "5551234567",
		"email":         "contact@example.com",
		"address":       "12 Elm Street",
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "admin@bloodbank.local", "wrong", http.StatusUnauthorized)
	ts.login(t, "ghost@bloodbank.local", "admin-pass", http.StatusUnauthorized)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/inventory"},
		{http.MethodGet, "/api/v1/requests"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodDelete, "/api/v1/requests/some-id"},
	} {
		w := ts.do(t, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}

	// A token signed with another secret is rejected too.
	forged, err := auth.GenerateToken([]byte("other-secret"), "admin@bloodbank.local", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)
	w := ts.do(t, http.MethodGet, "/api/v1/inventory", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetInventory(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/inventory", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Inventory []models.Inventory      `json:"inventory"`
		Summary   models.InventorySummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Inventory, 8)
	assert.Equal(t, "A+", resp.Inventory[0].BloodGroup)
	assert.Equal(t, "O-", resp.Inventory[7].BloodGroup)
	assert.Equal(t, models.StockOutOfStock, resp.Inventory[0].Status)
	assert.Equal(t, 8, resp.Summary.BloodGroups)
	assert.Equal(t, 0, resp.Summary.TotalUnits)
}

func TestAdjustInventory(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/api/v1/inventory/A+", gin.H{"unitsAvailable": 12, "pricePerUnit": 2800}, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec models.Inventory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, 12, rec.UnitsAvailable)
	assert.Equal(t, 2800, rec.PricePerUnit)
	assert.Equal(t, models.StockLow, rec.Status)
}

func TestAdjustInventory_NegativeUnits(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/api/v1/inventory/O+", gin.H{"unitsAvailable": -1, "pricePerUnit": 3000}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unchanged after the rejected write.
	rec, err := ts.ledger.Get(context.Background(), "O+")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.UnitsAvailable)
}

func TestAdjustInventory_UnknownGroup(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/api/v1/inventory/Z+", gin.H{"unitsAvailable": 1, "pricePerUnit": 3000}, ts.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRequest_PublicIntake(t *testing.T) {
	ts := newTestServer(t)

	// No token: intake is public.
	w := ts.do(t, http.MethodPost, "/api/v1/requests", intakePayload("Sam Rivera"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec models.BloodRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.RequestPending, rec.Status)
}

func TestCreateRequest_ValidationErrorNamesField(t *testing.T) {
	ts := newTestServer(t)

	payload := intakePayload("Sam Rivera")
	payload["phoneNumber"] = "12345"
	w := ts.do(t, http.MethodPost, "/api/v1/requests", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "phoneNumber", resp.Field)
}

func TestListRequests_TriagePaging(t *testing.T) {
	ts := newTestServer(t)

	urgencies := []string{
		models.UrgencyLow, models.UrgencyCritical, models.UrgencyMedium,
		models.UrgencyHigh, models.UrgencyLow, models.UrgencyCritical,
	}
	for i, urgency := range urgencies {
		payload := intakePayload(fmt.Sprintf("Contact %02d", i))
		payload["urgency"] = urgency
		w := ts.do(t, http.MethodPost, "/api/v1/requests", payload, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodGet, "/api/v1/requests?page=1", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Requests   []models.BloodRequest `json:"requests"`
		Count      int                   `json:"count"`
		TotalPages int                   `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Requests, 6)

	// Critical first, ties in insertion order.
	assert.Equal(t, "Contact 01", resp.Requests[0].ContactPerson)
	assert.Equal(t, "Contact 05", resp.Requests[1].ContactPerson)
	assert.Equal(t, models.UrgencyHigh, resp.Requests[2].Urgency)

	// Urgency filter narrows the view.
	w = ts.do(t, http.MethodGet, "/api/v1/requests?urgency=Critical", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	// A page past the end is empty, not an error.
	w = ts.do(t, http.MethodGet, "/api/v1/requests?page=9", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Requests)
	assert.Equal(t, 6, resp.Count)
}

func TestUpdateRequestStatusAndDelete(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/requests", intakePayload("Sam Rivera"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	var rec models.BloodRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))

	w = ts.do(t, http.MethodPatch, "/api/v1/requests/"+rec.ID+"/status", gin.H{"status": models.RequestCompleted}, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.BloodRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.RequestCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(rec.UpdatedAt))

	w = ts.do(t, http.MethodPatch, "/api/v1/requests/"+rec.ID+"/status", gin.H{"status": "Misplaced"}, ts.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/requests/"+rec.ID, nil, ts.token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Deleting a request leaves the ledger alone.
	inv, err := ts.ledger.ListAll(context.Background())
	require.NoError(t, err)
	for _, item := range inv {
		assert.Equal(t, 0, item.UnitsAvailable)
	}

	w = ts.do(t, http.MethodDelete, "/api/v1/requests/"+rec.ID, nil, ts.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardStatsAndRecentRequests(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 7; i++ {
		w := ts.do(t, http.MethodPost, "/api/v1/requests", intakePayload(fmt.Sprintf("Contact %02d", i)), "")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := ts.do(t, http.MethodPut, "/api/v1/inventory/B+", gin.H{"unitsAvailable": 4, "pricePerUnit": 3000}, ts.token)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/admin/stats", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		TotalRequests      int `json:"totalRequests"`
		PendingRequests    int `json:"pendingRequests"`
		TotalUnits         int `json:"totalUnits"`
		CriticalStockCount int `json:"criticalStockCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 7, stats.TotalRequests)
	assert.Equal(t, 7, stats.PendingRequests)
	assert.Equal(t, 4, stats.TotalUnits)
	assert.Equal(t, 1, stats.CriticalStockCount)

	w = ts.do(t, http.MethodGet, "/api/v1/admin/recent-requests", nil, ts.token)
	require.Equal(t, http.StatusOK, w.Code)

	var recent []models.BloodRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recent))
	require.Len(t, recent, 5)
	assert.Equal(t, "Contact 06", recent[0].ContactPerson, "newest request first")
}
