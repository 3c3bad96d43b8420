package controller

import (
	"github.com/gofiber/fiber/v2"

	service "akademiku_backend/internals/features/gateway/flutterwave/service"
	helper "akademiku_backend/internals/helpers"
)

// BrokerController exposes the token broker and charge proxy to the
// rest of the application. Upstream status codes are relayed unchanged
// so callers can tell 4xx validation failures from 5xx gateway faults.
type BrokerController struct {
	Broker *service.TokenBroker
	Client *service.Client
}

func NewBrokerController(broker *service.TokenBroker, client *service.Client) *BrokerController {
	return &BrokerController{Broker: broker, Client: client}
}

/* ======================= PING ======================= */
// POST /api/ping
func (h *BrokerController) Ping(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

/* ======================= TOKEN ======================= */
// POST /api/flutterwave/token
func (h *BrokerController) Token(c *fiber.Ctx) error {
	tok, err := h.Broker.GetToken(c.UserContext())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tok)
}

/* ======================= DIRECT CHARGES ======================= */
// POST /api/flutterwave/direct-charges — proxies the payload and relays
// the gateway's JSON and status code verbatim.
func (h *BrokerController) DirectCharges(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is required")
	}

	status, respBody, err := h.Client.ProxyDirectCharge(c.UserContext(), body)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(respBody)
}

/* ======================= CHARGE STATUS ======================= */
// GET /api/flutterwave/charges/:id
func (h *BrokerController) ChargeStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Charge id is required")
	}

	status, respBody, err := h.Client.ProxyChargeStatus(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(respBody)
}
