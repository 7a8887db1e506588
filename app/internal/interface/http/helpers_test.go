package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"example.com/shareeghor/app/internal/infra/catalog"
	"example.com/shareeghor/app/internal/infra/metrics"
	"example.com/shareeghor/app/internal/infra/persistence/memory"
	"example.com/shareeghor/app/internal/infra/security"
	cartuc "example.com/shareeghor/app/internal/usecase/cart"
	checkoutuc "example.com/shareeghor/app/internal/usecase/checkout"
	productuc "example.com/shareeghor/app/internal/usecase/product"
	sessionuc "example.com/shareeghor/app/internal/usecase/session"
)

type testServer struct {
	router http.Handler
	kv     *memory.KVStore
}

func setupAPI(t *testing.T) *testServer {
	t.Helper()

	products, err := catalog.NewStatic()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	kv := memory.NewKVStore()

	cartSvc := cartuc.NewService(kv, products, cartuc.WithMetrics(m))
	api := NewAPI(Dependencies{
		ProductService:  productuc.NewService(products),
		CartService:     cartSvc,
		CheckoutService: checkoutuc.NewService(cartSvc, kv, checkoutuc.WithMetrics(m)),
		SessionService:  sessionuc.NewService(security.NewJWTService("test-secret", time.Hour)),
		RequestMetrics:  m,
		MetricsHandler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return &testServer{router: api.Router(), kv: kv}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) startSession(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		SessionID string `json:"sessionId"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
