// Package errs holds the service-level error taxonomy shared by the
// finance and gateway features. Controllers translate these into HTTP
// responses via helper.FromServiceError.
package errs

import "github.com/gofiber/fiber/v2"

/* ===================== Types ===================== */

// ValidationError: malformed caller input, rejected before any network
// or database call.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// BalanceError: a proposed partial amount exceeds the remaining balance.
type BalanceError struct{ Msg string }

func (e *BalanceError) Error() string { return e.Msg }

// AuthError: identity-provider credential/token failure. Status carries
// the upstream HTTP status when known.
type AuthError struct {
	Status int
	Msg    string
}

func (e *AuthError) Error() string { return e.Msg }

// GatewayError: non-2xx from the payment gateway. Status is relayed
// unchanged so callers can distinguish 4xx from 5xx.
type GatewayError struct {
	Status int
	Msg    string
}

func (e *GatewayError) Error() string { return e.Msg }

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

/* ===================== Constructors ===================== */

func NewValidation(msg string) error      { return &ValidationError{Msg: msg} }
func NewBalance(msg string) error         { return &BalanceError{Msg: msg} }
func NewAuth(status int, msg string) error { return &AuthError{Status: status, Msg: msg} }
func NewGateway(status int, msg string) error {
	return &GatewayError{Status: status, Msg: msg}
}
func NewNotFound(msg string) error { return &NotFoundError{Msg: msg} }

/* ===================== HTTP mapping ===================== */

func HTTPStatus(err error) int {
	switch e := err.(type) {
	case *ValidationError:
		return fiber.StatusBadRequest
	case *BalanceError:
		return fiber.StatusBadRequest
	case *NotFoundError:
		return fiber.StatusNotFound
	case *AuthError:
		if e.Status >= 400 {
			return e.Status
		}
		return fiber.StatusUnauthorized
	case *GatewayError:
		if e.Status >= 400 {
			return e.Status
		}
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
