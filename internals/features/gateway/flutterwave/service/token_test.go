package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"akademiku_backend/internals/helpers/errs"
)

func newTokenServer(t *testing.T, calls *int32, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))
		assert.Equal(t, "cid", r.PostFormValue("client_id"))
		assert.Equal(t, "secret", r.PostFormValue("client_secret"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   expiresIn,
		})
	}))
}

func TestGetToken_CachesUntilBufferedExpiry(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 300)
	defer srv.Close()

	clock := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	b := NewTokenBroker(
		WithCredentials(srv.URL, "cid", "secret"),
		WithClock(func() time.Time { return clock }),
	)

	first, err := b.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first.AccessToken)
	assert.Equal(t, int64(300), first.ExpiresIn)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// expires_in=300 with a 30s buffer: cached until +270s exclusive
	clock = clock.Add(269 * time.Second)
	cached, err := b.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", cached.AccessToken)
	assert.Equal(t, int64(1), cached.ExpiresIn)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "cache hit must not touch the network")

	// One more second and the slot is stale
	clock = clock.Add(time.Second)
	_, err = b.GetToken(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetToken_ShortLifetimeNeverCaches(t *testing.T) {
	var calls int32
	srv := newTokenServer(t, &calls, 20) // below the 30s buffer
	defer srv.Close()

	clock := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	b := NewTokenBroker(
		WithCredentials(srv.URL, "cid", "secret"),
		WithClock(func() time.Time { return clock }),
	)

	_, err := b.GetToken(context.Background())
	require.NoError(t, err)
	_, err = b.GetToken(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetToken_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_client",
			"error_description": "Invalid client credentials",
		})
	}))
	defer srv.Close()

	b := NewTokenBroker(WithCredentials(srv.URL, "cid", "wrong"))

	_, err := b.GetToken(context.Background())
	require.Error(t, err)

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "Invalid client credentials", authErr.Msg)
}

func TestGetToken_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"expires_in": 600})
	}))
	defer srv.Close()

	b := NewTokenBroker(WithCredentials(srv.URL, "cid", "secret"))

	_, err := b.GetToken(context.Background())
	require.Error(t, err)

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Msg, "no access token")
}

func TestProviderErrorMessage(t *testing.T) {
	assert.Equal(t, "bad creds",
		providerErrorMessage([]byte(`{"error":"x","error_description":"bad creds"}`), "401 Unauthorized"))
	assert.Equal(t, "invalid_client",
		providerErrorMessage([]byte(`{"error":"invalid_client"}`), "401 Unauthorized"))
	assert.Equal(t, "401 Unauthorized",
		providerErrorMessage([]byte(`not json`), "401 Unauthorized"))
}
