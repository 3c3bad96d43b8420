package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"akademiku_backend/internals/configs"
	"akademiku_backend/internals/helpers/errs"
)

/* =========================================================
   Gateway Token Broker

   Caches the OAuth2 client-credentials token from the gateway's
   identity provider. Single slot, last writer wins: the lock guards
   the slot only, never the network call, so two cold callers may
   both fetch. That costs one redundant token request, never a wrong
   token.
========================================================= */

// expiryBuffer shaves the advertised lifetime to absorb clock skew and
// request latency.
const expiryBuffer = 30 * time.Second

type TokenResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type TokenBroker struct {
	tokenURL     string
	clientID     string
	clientSecret string

	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenBroker builds a broker from process config. Tests inject a
// fake clock and transport through the variadic options.
func NewTokenBroker(opts ...BrokerOption) *TokenBroker {
	b := &TokenBroker{
		tokenURL:     configs.FlutterwaveTokenURL,
		clientID:     configs.FlutterwaveClientID,
		clientSecret: configs.FlutterwaveClientSecret,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type BrokerOption func(*TokenBroker)

func WithCredentials(tokenURL, clientID, clientSecret string) BrokerOption {
	return func(b *TokenBroker) {
		b.tokenURL = tokenURL
		b.clientID = clientID
		b.clientSecret = clientSecret
	}
}

func WithHTTPClient(c *http.Client) BrokerOption {
	return func(b *TokenBroker) { b.httpClient = c }
}

func WithClock(now func() time.Time) BrokerOption {
	return func(b *TokenBroker) { b.now = now }
}

// GetToken returns the cached token while it is inside the buffered
// expiry window, otherwise refreshes from the identity provider.
func (b *TokenBroker) GetToken(ctx context.Context) (TokenResult, error) {
	now := b.now()

	b.mu.Lock()
	if b.token != "" && now.Before(b.expiresAt) {
		res := TokenResult{
			AccessToken: b.token,
			ExpiresIn:   int64(b.expiresAt.Sub(now) / time.Second),
		}
		b.mu.Unlock()
		return res, nil
	}
	b.mu.Unlock()

	res, err := b.fetchToken(ctx)
	if err != nil {
		return TokenResult{}, err
	}

	ttl := time.Duration(res.ExpiresIn)*time.Second - expiryBuffer
	if ttl < 0 {
		ttl = 0
	}

	b.mu.Lock()
	b.token = res.AccessToken
	b.expiresAt = b.now().Add(ttl)
	b.mu.Unlock()

	return res, nil
}

func (b *TokenBroker) fetchToken(ctx context.Context) (TokenResult, error) {
	form := url.Values{}
	form.Set("client_id", b.clientID)
	form.Set("client_secret", b.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResult{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return TokenResult{}, errs.NewAuth(0, "token request failed: "+err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return TokenResult{}, errs.NewAuth(resp.StatusCode, "token response unreadable: "+err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TokenResult{}, errs.NewAuth(resp.StatusCode, providerErrorMessage(body, resp.Status))
	}

	var tok TokenResult
	if err := json.Unmarshal(body, &tok); err != nil {
		return TokenResult{}, errs.NewAuth(resp.StatusCode, "token response is not valid JSON")
	}
	if tok.AccessToken == "" {
		return TokenResult{}, errs.NewAuth(resp.StatusCode, "identity provider returned no access token")
	}
	return tok, nil
}

// providerErrorMessage prefers the provider's error_description, then
// error, then the HTTP status text.
func providerErrorMessage(body []byte, statusText string) string {
	var pe struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &pe); err == nil {
		if pe.ErrorDescription != "" {
			return pe.ErrorDescription
		}
		if pe.Error != "" {
			return pe.Error
		}
	}
	return statusText
}
