package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCart_RequiresSession(t *testing.T) {
	srv := setupAPI(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/cart", "forged.token.value", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCart_AddUpdateRemove(t *testing.T) {
	srv := setupAPI(t)
	token := srv.startSession(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"productId": 7, "size": "M", "color": "Indigo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"productId": 12})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	require.Equal(t, "Standard", items[1].(map[string]any)["selectedSize"])
	require.Equal(t, "Dusty Pink", items[1].(map[string]any)["selectedColor"])

	rec = srv.do(t, http.MethodPatch, "/api/v1/cart/items", token, map[string]any{"productId": 7, "size": "M", "color": "Indigo", "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeBody(t, rec)
	require.Equal(t, float64(2900), body["total"])
	require.Equal(t, "৳2,900", body["formattedTotal"])
	require.Equal(t, float64(4), body["itemCount"])

	rec = srv.do(t, http.MethodDelete, "/api/v1/cart/items", token, map[string]any{"productId": 12, "size": "Standard", "color": "Dusty Pink"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, decodeBody(t, rec)["items"], 1)

	rec = srv.do(t, http.MethodPatch, "/api/v1/cart/items", token, map[string]any{"productId": 7, "size": "M", "color": "Indigo", "quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Empty(t, decodeBody(t, rec)["items"])
}

func TestCart_PersistsUnderSessionKey(t *testing.T) {
	srv := setupAPI(t)
	token := srv.startSession(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"productId": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, srv.kv.Len())

	rec = srv.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1450), decodeBody(t, rec)["total"])
}

func TestCart_SessionsDoNotShareCarts(t *testing.T) {
	srv := setupAPI(t)
	alice := srv.startSession(t)
	bob := srv.startSession(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", alice, map[string]any{"productId": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/cart", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec)["items"])
}

func TestCart_AddItemErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{name: "unknown product", body: map[string]any{"productId": 999}, status: http.StatusNotFound},
		{name: "out of stock", body: map[string]any{"productId": 4}, status: http.StatusUnprocessableEntity},
		{name: "unknown size", body: map[string]any{"productId": 7, "size": "XXXL"}, status: http.StatusUnprocessableEntity},
		{name: "missing product", body: map[string]any{"size": "M"}, status: http.StatusBadRequest},
	}

	srv := setupAPI(t)
	token := srv.startSession(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", token, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			require.NotEmpty(t, decodeBody(t, rec)["error"])
		})
	}
}

func TestCart_UpdateQuantityValidation(t *testing.T) {
	srv := setupAPI(t)
	token := srv.startSession(t)

	rec := srv.do(t, http.MethodPatch, "/api/v1/cart/items", token, map[string]any{"productId": 7, "quantity": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/v1/cart/items", token, map[string]any{"productId": 7, "quantity": 1.5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/v1/cart/items", token, map[string]any{"productId": 7})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_ClearAndToggle(t *testing.T) {
	srv := setupAPI(t)
	token := srv.startSession(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{"productId": 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decodeBody(t, rec)["isOpen"])

	rec = srv.do(t, http.MethodDelete, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Empty(t, body["items"])
	require.Equal(t, float64(0), body["total"])
}
