package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tipbot/internal/core/domain"
	"tipbot/internal/core/ports/mocks"
	"tipbot/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Lookup Handler Tests ---

func setupLookup(t *testing.T) (*gin.Engine, *mocks.MockLookupService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLookupService(ctrl)
	h := NewLookupHandler(svc)

	r := gin.New()
	r.GET("/api/v1/users/:platform", h.List)
	r.GET("/api/v1/users/:platform/:name", h.ByName)
	r.GET("/api/v1/addresses/:address", h.ByAddress)
	return r, svc
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLookup_ByName(t *testing.T) {
	r, svc := setupLookup(t)
	svc.EXPECT().ByName(gomock.Any(), domain.PlatformTwitter, "alice").Return(&domain.Account{
		Platform:      domain.PlatformTwitter,
		UserID:        "u1",
		UserName:      "alice",
		WalletAccount: "wallet-u1",
		Address:       "nano_1alice",
	}, nil)

	w := get(r, "/api/v1/users/twitter/alice")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "nano_1alice", data["address"])
	assert.Equal(t, "u1", data["user_id"])
	assert.NotContains(t, w.Body.String(), "wallet-u1")
}

func TestLookup_ByNameRejectsBadPath(t *testing.T) {
	r, _ := setupLookup(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/users/discord/alice").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/users/twitter/al%3Cice").Code)
}

func TestLookup_NotFound(t *testing.T) {
	r, svc := setupLookup(t)
	svc.EXPECT().ByAddress(gomock.Any(), "nano_1nobody").Return(nil, apperror.ErrNotFound("account"))

	w := get(r, "/api/v1/addresses/nano_1nobody")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NF_001", decodeBody(t, w)["error_code"])
}

func TestLookup_List(t *testing.T) {
	r, svc := setupLookup(t)
	svc.EXPECT().List(gomock.Any(), domain.PlatformTelegram).Return([]domain.Account{
		{Platform: domain.PlatformTelegram, UserID: "11", UserName: "alice", Address: "nano_1a"},
		{Platform: domain.PlatformTelegram, UserID: "12", UserName: "bob", Address: "nano_1b"},
	}, nil)

	w := get(r, "/api/v1/users/telegram")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.EqualValues(t, 2, resp["count"])
}

// --- Stats Handler Tests ---

func TestStats_Endpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockStatsService(ctrl)
	h := NewStatsHandler(svc)

	r := gin.New()
	r.GET("/tippers", h.TopTippers)
	r.GET("/tips", h.RecentTips)
	r.GET("/totals", h.Totals)

	svc.EXPECT().TopTippers(gomock.Any(), 5).Return([]domain.TipperStat{
		{UserName: "alice", Platform: domain.PlatformTwitter, TotalTips: decimal.RequireFromString("12.5"), TipCount: 3},
	}, nil)
	svc.EXPECT().RecentTips(gomock.Any(), 0).Return([]domain.Tip{
		{Platform: domain.PlatformTwitter, SenderID: "u1", ReceiverID: "u2", SenderAccount: "wallet-u1",
			Amount: decimal.RequireFromString("1"), CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}, nil)
	svc.EXPECT().Totals(gomock.Any()).Return(nil, nil)

	w := get(r, "/tippers?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_tips":"12.5"`)

	w = get(r, "/tips")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"created_at":"2024-01-02T03:04:05Z"`)
	assert.NotContains(t, w.Body.String(), "wallet-u1")

	w = get(r, "/totals")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"])

	assert.Equal(t, http.StatusBadRequest, get(r, "/tippers?limit=1000").Code)
}

// --- Admin Handler Tests ---

func setupAdmin(t *testing.T) (*gin.Engine, *mocks.MockAdminService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAdminService(ctrl)
	h := NewAdminHandler(svc)

	r := gin.New()
	r.POST("/login", h.Login)
	r.GET("/mode", h.GetMode)
	r.PUT("/mode", h.SetMode)
	r.GET("/tips", h.ListTips)
	return r, svc
}

func sendJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAdmin_Login(t *testing.T) {
	r, svc := setupAdmin(t)
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	svc.EXPECT().Login(gomock.Any(), "operator", "hunter22").Return("jwt-token", expiry, nil)

	w := sendJSON(r, http.MethodPost, "/login", map[string]string{"username": "operator", "password": "hunter22"})

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token", data["token"])
	assert.EqualValues(t, expiry.Unix(), data["expiry"])
}

func TestAdmin_LoginErrors(t *testing.T) {
	r, svc := setupAdmin(t)
	svc.EXPECT().Login(gomock.Any(), "operator", "wrong").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := sendJSON(r, http.MethodPost, "/login", map[string]string{"username": "operator", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = sendJSON(r, http.MethodPost, "/login", map[string]string{"username": "operator"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_Mode(t *testing.T) {
	r, svc := setupAdmin(t)
	gomock.InOrder(
		svc.EXPECT().Mode().Return(domain.ModeNormal),
		svc.EXPECT().SetMode(gomock.Any(), domain.ModeMaintenance).Return(nil),
		svc.EXPECT().Mode().Return(domain.ModeMaintenance),
	)

	w := get(r, "/mode")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"normal"`)

	w = sendJSON(r, http.MethodPut, "/mode", map[string]string{"status": "maintenance"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"maintenance"`)

	w = sendJSON(r, http.MethodPut, "/mode", map[string]string{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_ListTips(t *testing.T) {
	r, svc := setupAdmin(t)
	failed := domain.Tip{
		TipID:    "telegram--100-42-1",
		Platform: domain.PlatformTelegram,
		ChatID:   "-100",
		Amount:   decimal.RequireFromString("0.5"),
		Status:   domain.TipStatusTransferFailed,
	}
	svc.EXPECT().ListTips(gomock.Any(), domain.TipStatusTransferFailed, 0).Return([]domain.Tip{failed}, nil)
	svc.EXPECT().ListTips(gomock.Any(), domain.TipStatusNotified, 20).Return(nil, nil)

	w := get(r, "/tips")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tip_id":"telegram--100-42-1"`)
	assert.Contains(t, w.Body.String(), `"amount":"0.5"`)

	w = get(r, "/tips?status=NOTIFIED&limit=20")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/tips?status=LOST")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Health Check Tests ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	wallet := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()
	wallet.EXPECT().Name().Return("wallet").AnyTimes()

	pg.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)
	wallet.EXPECT().Ping(gomock.Any()).Return(nil)
	wallet.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	r := gin.New()
	r.GET("/health", HealthCheck(pg, wallet))

	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])

	w = get(r, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "unhealthy", deps["wallet"].(map[string]interface{})["status"])
}
