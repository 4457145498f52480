package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/garment"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestParseDateRange(t *testing.T) {
	c, _ := testContext("/?from=2026-03-01&to=2026-03-31")
	rng, err := parseDateRange(c)
	require.NoError(t, err)
	assert.Equal(t, 1, rng.From.Day())
	assert.Equal(t, 31, rng.To.Day())
	assert.Equal(t, 23, rng.To.Hour())

	c, _ = testContext("/")
	rng, err = parseDateRange(c)
	require.NoError(t, err)
	assert.True(t, rng.From.IsZero())
	assert.True(t, rng.To.IsZero())

	c, _ = testContext("/?from=03/01/2026")
	_, err = parseDateRange(c)
	assert.Error(t, err)

	c, _ = testContext("/?from=2026-03-10&to=2026-03-01")
	_, err = parseDateRange(c)
	assert.Error(t, err)
}

func TestQueryShopID(t *testing.T) {
	c, _ := testContext("/?shop_id=all")
	id, err := queryShopID(c)
	require.NoError(t, err)
	assert.Nil(t, id)

	c, _ = testContext("/?shop_id=nope")
	_, err = queryShopID(c)
	assert.Error(t, err)
}

func TestGetUserRole(t *testing.T) {
	c, _ := testContext("/")
	assert.False(t, IsOwner(c))
	assert.Nil(t, GetUserID(c))

	c.Set("user_role", enum.RoleOwner)
	assert.True(t, IsOwner(c))
}

func TestUpdateOrderInput(t *testing.T) {
	empty := ""
	lead := "not-a-uuid"

	input, err := updateOrderInput(&request.UpdateOrderRequest{DueDate: &empty, LeadWorkerID: &empty})
	require.NoError(t, err)
	assert.True(t, input.ClearDueDate)
	assert.Nil(t, input.DueDate)
	require.NotNil(t, input.LeadWorkerID)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", input.LeadWorkerID.String())

	_, err = updateOrderInput(&request.UpdateOrderRequest{LeadWorkerID: &lead})
	assert.Error(t, err)

	input, err = updateOrderInput(&request.UpdateOrderRequest{})
	require.NoError(t, err)
	assert.False(t, input.ClearDueDate)
	assert.Nil(t, input.LeadWorkerID)
	assert.Nil(t, input.Squad)
}

func TestSystemHandler(t *testing.T) {
	svc := service.NewSystemService(
		config.SystemConfig{Status: enum.SystemSuspended, Billing: config.BillingConfig{MpesaNumber: "0700111222"}},
		config.BrandingConfig{AppName: "Fashion House", CurrencySymbol: "Ksh"},
		garment.Default(),
	)
	h := NewSystemHandler(svc)

	c, w := testContext("/api/v1/system/status")
	h.Status(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0700111222")
	assert.Contains(t, w.Body.String(), "SUSPENDED")

	c, w = testContext("/api/v1/system/garments")
	h.Garments(c)
	body := decode(t, w)
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data)
}

func TestGoogleAuthNotConfigured(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour, time.Hour)
	h := NewAuthHandler(service.NewAuthService(nil, jwtManager, nil, zap.NewNop()), OAuthRedirects{})

	c, w := testContext("/api/v1/auth/google")
	h.GoogleAuth(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestGoogleCallbackRedirectsErrors(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour, time.Hour)
	h := NewAuthHandler(service.NewAuthService(nil, jwtManager, nil, zap.NewNop()), OAuthRedirects{
		SuccessURL: "http://localhost:3000/auth/success",
		ErrorURL:   "http://localhost:3000/login?from=google",
	})

	c, w := testContext("/api/v1/auth/google/callback?error=access_denied")
	h.GoogleCallback(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:3000/login?error=access_denied&from=google", w.Header().Get("Location"))
}

func TestMalformedAmountsAreRejected(t *testing.T) {
	r := gin.New()
	orders := NewOrderHandler(nil)
	payments := NewPaymentHandler(nil)
	r.POST("/orders", orders.Create)
	r.POST("/orders/:id/payments", payments.QuickPay)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"text price", "/orders", `{"customer_name":"Wanjiku","garment_type":"suit","price":"abc"}`, http.StatusUnprocessableEntity},
		{"negative price", "/orders", `{"customer_name":"Wanjiku","garment_type":"suit","price":-500}`, http.StatusUnprocessableEntity},
		{"negative deposit", "/orders", `{"customer_name":"Wanjiku","garment_type":"suit","price":500,"deposit":"-1"}`, http.StatusUnprocessableEntity},
		{"broken json", "/orders", `{"price":`, http.StatusBadRequest},
		{"text payment", "/orders/" + uuid.NewString() + "/payments", `{"amount":"five hundred"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.False(t, decode(t, w).Success)
		})
	}
}

func TestResetManagerPasswordValidation(t *testing.T) {
	r := gin.New()
	shops := NewShopHandler(nil)
	r.PUT("/shops/:id/manager/password", shops.ResetManagerPassword)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/shops/"+uuid.NewString()+"/manager/password", strings.NewReader(`{"new_password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/shops/not-a-uuid/manager/password", strings.NewReader(`{"new_password":"long-enough-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
