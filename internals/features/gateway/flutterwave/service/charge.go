package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"akademiku_backend/internals/configs"
	"akademiku_backend/internals/helpers/errs"
)

/* =========================================================
   Charge Initiator / Verifier

   Thin client over the gateway's direct-charge orchestration API.
   Every call fetches a bearer token through the broker first.
========================================================= */

type Client struct {
	baseURL    string
	broker     *TokenBroker
	httpClient *http.Client
}

func NewClient(broker *TokenBroker, opts ...ClientOption) *Client {
	cl := &Client{
		baseURL:    configs.FlutterwaveBaseURL,
		broker:     broker,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(cl *Client) { cl.baseURL = strings.TrimRight(u, "/") }
}

func WithChargeHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

/* ===================== Types ===================== */

type ChargeRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PhoneNumber   string  `json:"phone_number"`
	Network       string  `json:"network"`
	CountryCode   string  `json:"country_code,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	// Reference doubles as the idempotency key: callers retrying a
	// charge should pass the same reference (ideally derived from the
	// originating payment id). Generated randomly only when absent.
	Reference string `json:"reference,omitempty"`
}

// ChargeHandle is the parsed identity of a charge at the gateway.
type ChargeHandle struct {
	ChargeID  string `json:"charge_id"`
	Reference string `json:"reference"`
	Status    string `json:"status,omitempty"`
}

// ParseError: the gateway answered 2xx but the body carried no usable
// charge id. Schema drift fails loudly instead of returning nil ids.
type ParseError struct{ Msg string }

func (e *ParseError) Error() string { return e.Msg }

/* ===================== Parser ===================== */

// ParseChargeHandle resolves the charge id across the response shapes
// the gateway is known to emit: data.id, data.charge_id, then the same
// keys at top level.
func ParseChargeHandle(body []byte) (ChargeHandle, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return ChargeHandle{}, &ParseError{Msg: "charge response is not valid JSON"}
	}

	scope := raw
	if data, ok := raw["data"].(map[string]any); ok {
		scope = data
	}

	id := firstString(scope, "id", "charge_id")
	if id == "" {
		id = firstString(raw, "id", "charge_id")
	}
	if id == "" {
		return ChargeHandle{}, &ParseError{Msg: "charge response carries no charge id"}
	}

	return ChargeHandle{
		ChargeID:  id,
		Reference: firstString(scope, "reference"),
		Status:    firstString(scope, "status"),
	}, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

/* ===================== Initiate ===================== */

// InitiateCharge validates, acquires a token and posts the mobile-money
// direct charge. Returns the parsed handle plus the raw gateway body
// and status so the broker surface can relay them verbatim.
func (cl *Client) InitiateCharge(ctx context.Context, req ChargeRequest) (ChargeHandle, []byte, error) {
	if req.Amount <= 0 {
		return ChargeHandle{}, nil, errs.NewValidation("amount must be greater than zero")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return ChargeHandle{}, nil, errs.NewValidation("phone_number is required")
	}
	if strings.TrimSpace(req.Network) == "" {
		return ChargeHandle{}, nil, errs.NewValidation("network is required")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return ChargeHandle{}, nil, errs.NewValidation("currency is required")
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = newReference()
	}

	payload := map[string]any{
		"amount":    req.Amount,
		"currency":  req.Currency,
		"reference": reference,
		"customer": map[string]any{
			"email": req.CustomerEmail,
		},
		"payment_method": map[string]any{
			"type": "mobile_money",
			"mobile_money": map[string]any{
				"network":      req.Network,
				"country_code": req.CountryCode,
				"phone_number": req.PhoneNumber,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ChargeHandle{}, nil, err
	}

	status, respBody, err := cl.do(ctx, http.MethodPost, "/orchestration/direct-charges", body)
	if err != nil {
		return ChargeHandle{}, nil, err
	}
	if status < 200 || status > 299 {
		return ChargeHandle{}, respBody, errs.NewGateway(status, gatewayErrorMessage(respBody, status))
	}

	handle, err := ParseChargeHandle(respBody)
	if err != nil {
		return ChargeHandle{}, respBody, err
	}
	if handle.Reference == "" {
		handle.Reference = reference
	}
	return handle, respBody, nil
}

/* ===================== Verify ===================== */

// VerifyCharge polls the charge by id and returns the upstream status
// field as an opaque string.
func (cl *Client) VerifyCharge(ctx context.Context, chargeID string) (string, []byte, error) {
	if strings.TrimSpace(chargeID) == "" {
		return "", nil, errs.NewValidation("charge id is required")
	}

	status, respBody, err := cl.do(ctx, http.MethodGet, "/orchestration/direct-charges/"+chargeID, nil)
	if err != nil {
		return "", nil, err
	}
	if status == http.StatusNotFound {
		return "", respBody, errs.NewNotFound("charge not found: " + chargeID)
	}
	if status < 200 || status > 299 {
		return "", respBody, errs.NewGateway(status, gatewayErrorMessage(respBody, status))
	}

	handle, err := ParseChargeHandle(respBody)
	if err != nil {
		return "", respBody, err
	}
	return handle.Status, respBody, nil
}

/* ===================== Raw proxy ===================== */

// ProxyDirectCharge forwards a caller-built charge payload untouched
// and hands back the gateway's status and JSON verbatim.
func (cl *Client) ProxyDirectCharge(ctx context.Context, body []byte) (int, []byte, error) {
	return cl.do(ctx, http.MethodPost, "/orchestration/direct-charges", body)
}

// ProxyChargeStatus forwards a charge-status lookup verbatim.
func (cl *Client) ProxyChargeStatus(ctx context.Context, chargeID string) (int, []byte, error) {
	return cl.do(ctx, http.MethodGet, "/orchestration/direct-charges/"+chargeID, nil)
}

/* ===================== internal ===================== */

func (cl *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	tok, err := cl.broker.GetToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, cl.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return 0, nil, errs.NewGateway(0, "gateway request failed: "+err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, errs.NewGateway(resp.StatusCode, "gateway response unreadable")
	}
	return resp.StatusCode, respBody, nil
}

func gatewayErrorMessage(body []byte, status int) string {
	var ge struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &ge); err == nil {
		if ge.Message != "" {
			return ge.Message
		}
		if ge.Error != "" {
			return ge.Error
		}
	}
	return fmt.Sprintf("gateway returned status %d", status)
}

func newReference() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return "AKD-" + hex.EncodeToString(buf)
}
