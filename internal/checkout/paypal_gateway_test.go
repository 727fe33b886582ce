package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderRequest() OrderRequest {
	return OrderRequest{
		Items: []LineItem{
			{
				Name:       "Classic Tee",
				SKU:        "classic-tee",
				UnitAmount: UnitAmount{CurrencyCode: "USD", Value: "24.99"},
				Quantity:   "2",
			},
		},
		Total: "49.98",
	}
}

func newPayPalStub(t *testing.T, tokenCalls *int32, captureStatus string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			atomic.AddInt32(tokenCalls, 1)
			user, _, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "client-id", user)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "test-token",
				"expires_in":   3600,
			})

		case "/v2/checkout/orders":
			require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "CAPTURE", body["intent"])

			units := body["purchase_units"].([]interface{})
			amount := units[0].(map[string]interface{})["amount"].(map[string]interface{})
			require.Equal(t, "49.98", amount["value"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "ORDER-1", "status": "CREATED"})

		case "/v2/checkout/orders/ORDER-1/capture":
			require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "ORDER-1",
				"status": captureStatus,
				"purchase_units": []map[string]interface{}{
					{"payments": map[string]interface{}{
						"captures": []map[string]string{{"id": "CAP-1", "status": captureStatus}},
					}},
				},
			})

		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestPayPalGateway_CreateOrder(t *testing.T) {
	var tokenCalls int32
	server := newPayPalStub(t, &tokenCalls, "COMPLETED")
	defer server.Close()

	g := NewPayPalGateway(server.URL, "client-id", "client-secret")

	order, err := g.CreateOrder(context.Background(), testOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", order.ID)
	assert.Equal(t, "CREATED", order.Status)
}

func TestPayPalGateway_CaptureOrder(t *testing.T) {
	t.Run("Completed", func(t *testing.T) {
		var tokenCalls int32
		server := newPayPalStub(t, &tokenCalls, "COMPLETED")
		defer server.Close()

		g := NewPayPalGateway(server.URL, "client-id", "client-secret")

		result, err := g.CaptureOrder(context.Background(), "ORDER-1")
		require.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, "CAP-1", result.CaptureID)
		assert.Equal(t, "ORDER-1", result.OrderID)
	})

	t.Run("PendingIsNotCompleted", func(t *testing.T) {
		var tokenCalls int32
		server := newPayPalStub(t, &tokenCalls, "PENDING")
		defer server.Close()

		g := NewPayPalGateway(server.URL, "client-id", "client-secret")

		result, err := g.CaptureOrder(context.Background(), "ORDER-1")
		require.NoError(t, err)
		assert.False(t, result.Completed)
	})

	t.Run("MissingOrderID", func(t *testing.T) {
		g := NewPayPalGateway("http://unused", "client-id", "client-secret")
		_, err := g.CaptureOrder(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingOrderID)
	})
}

func TestPayPalGateway_TokenReusedAcrossCalls(t *testing.T) {
	var tokenCalls int32
	server := newPayPalStub(t, &tokenCalls, "COMPLETED")
	defer server.Close()

	g := NewPayPalGateway(server.URL, "client-id", "client-secret")

	_, err := g.CreateOrder(context.Background(), testOrderRequest())
	require.NoError(t, err)
	_, err = g.CaptureOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestPayPalGateway_ErrorResponsesSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "t", "expires_in": 3600})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	}))
	defer server.Close()

	g := NewPayPalGateway(server.URL, "client-id", "client-secret")

	_, err := g.CreateOrder(context.Background(), testOrderRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNPROCESSABLE_ENTITY")

	_, err = g.CaptureOrder(context.Background(), "ORDER-1")
	assert.Error(t, err)
}

func TestPayPalGateway_TokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	g := NewPayPalGateway(server.URL, "bad", "creds")

	_, err := g.CreateOrder(context.Background(), testOrderRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_client")
}
