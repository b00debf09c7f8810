package carrier_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/adapters/out/carrier"
	"shop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func carrierStub(t *testing.T, code int, message string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/shipping-order/update", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("Token"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(4), req["operation"])
		assert.NotEmpty(t, req["tracking_code"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": message})
	}))
}

func TestClient_CancelShipment_Cancelled(t *testing.T) {
	srv := carrierStub(t, 0, "ok")
	defer srv.Close()

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-1", "customer request")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeCancelled, outcome)
	assert.True(t, outcome.IsSuccess())
}

func TestClient_CancelShipment_AlreadyCancelled(t *testing.T) {
	srv := carrierStub(t, 1010, "order already cancelled")
	defer srv.Close()

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-2", "customer request")

	require.NoError(t, err)
	assert.Equal(t, ports.OutcomeAlreadyCancelled, outcome)
	assert.True(t, outcome.IsSuccess())
}

func TestClient_CancelShipment_CarrierErrorCode(t *testing.T) {
	srv := carrierStub(t, 2004, "order is delivering")
	defer srv.Close()

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-3", "customer request")

	require.Error(t, err)
	assert.Equal(t, ports.OutcomeError, outcome)
	assert.Contains(t, err.Error(), "code 2004")
	assert.Contains(t, err.Error(), "order is delivering")
}

func TestClient_CancelShipment_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-4", "customer request")

	require.Error(t, err)
	assert.Equal(t, ports.OutcomeError, outcome)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestClient_CancelShipment_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-5", "customer request")

	require.Error(t, err)
	assert.Equal(t, ports.OutcomeError, outcome)
}

func TestClient_CancelShipment_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := carrier.NewClient(srv.URL, "test-token", testLogger())
	outcome, err := client.CancelShipment(t.Context(), "TRACK-6", "customer request")

	require.Error(t, err)
	assert.Equal(t, ports.OutcomeError, outcome)
}
