package service

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"akademiku_backend/internals/configs"
)

type SMSSender interface {
	Send(to, message string) error
}

/* ===================== HTTP provider ===================== */

// HTTPSMSSender talks to the SMS provider's GET API: api key, destination,
// sender id and message travel as query parameters.
type HTTPSMSSender struct {
	apiURL   string
	apiKey   string
	senderID string
	client   *http.Client
}

func NewHTTPSMSSender() *HTTPSMSSender {
	return &HTTPSMSSender{
		apiURL:   configs.SMSAPIURL,
		apiKey:   configs.SMSAPIKey,
		senderID: configs.SMSSenderID,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPSMSSender) Send(to, message string) error {
	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("to", to)
	q.Set("sender", s.senderID)
	q.Set("message", message)

	resp, err := s.client.Get(s.apiURL + "?" + q.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

/* ===================== Console (dev / tests) ===================== */

type ConsoleSMSSender struct{}

func (ConsoleSMSSender) Send(to, message string) error {
	log.Printf("[SMS] to=%s message=%q", to, message)
	return nil
}
