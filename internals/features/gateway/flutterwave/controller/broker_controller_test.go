package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	service "akademiku_backend/internals/features/gateway/flutterwave/service"
)

// newBrokerApp mounts the controller on a bare fiber app against fake
// upstream handlers.
func newBrokerApp(t *testing.T, tokenStatus int, tokenBody string, gwStatus int, gwBody string) *fiber.App {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(tokenStatus)
		_, _ = io.WriteString(w, tokenBody)
	})
	mux.HandleFunc("/orchestration/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(gwStatus)
		_, _ = io.WriteString(w, gwBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	broker := service.NewTokenBroker(service.WithCredentials(srv.URL+"/token", "cid", "secret"))
	client := service.NewClient(broker, service.WithBaseURL(srv.URL))
	h := NewBrokerController(broker, client)

	app := fiber.New()
	app.Post("/api/ping", h.Ping)
	app.Post("/api/flutterwave/token", h.Token)
	app.Post("/api/flutterwave/direct-charges", h.DirectCharges)
	app.Get("/api/flutterwave/charges/:id", h.ChargeStatus)
	return app
}

func TestPing(t *testing.T) {
	app := newBrokerApp(t, 200, `{}`, 200, `{}`)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out["ok"])
}

func TestToken_RelaysBrokerResult(t *testing.T) {
	app := newBrokerApp(t, 200, `{"access_token":"tok-9","expires_in":600}`, 200, `{}`)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/flutterwave/token", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tok service.TokenResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	assert.Equal(t, "tok-9", tok.AccessToken)
	assert.Equal(t, int64(600), tok.ExpiresIn)
}

func TestToken_ProviderFailurePropagatesStatus(t *testing.T) {
	app := newBrokerApp(t, 401, `{"error_description":"Invalid client credentials"}`, 200, `{}`)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/flutterwave/token", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid client credentials")
}

func TestDirectCharges_RelaysUpstreamVerbatim(t *testing.T) {
	upstream := `{"status":"success","data":{"id":"chg_7","status":"pending"}}`
	app := newBrokerApp(t, 200, `{"access_token":"tok","expires_in":600}`, 201, upstream)

	req := httptest.NewRequest(http.MethodPost, "/api/flutterwave/direct-charges",
		strings.NewReader(`{"amount":2500,"currency":"RWF"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 201, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, upstream, string(body))
}

func TestDirectCharges_EmptyBodyRejected(t *testing.T) {
	app := newBrokerApp(t, 200, `{"access_token":"tok","expires_in":600}`, 200, `{}`)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/flutterwave/direct-charges", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChargeStatus_RelaysUpstreamVerbatim(t *testing.T) {
	upstream := `{"data":{"id":"chg_7","status":"succeeded"}}`
	app := newBrokerApp(t, 200, `{"access_token":"tok","expires_in":600}`, 200, upstream)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/flutterwave/charges/chg_7", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, upstream, string(body))
}
