package route

import (
	"github.com/gofiber/fiber/v2"

	controller "akademiku_backend/internals/features/gateway/flutterwave/controller"
	service "akademiku_backend/internals/features/gateway/flutterwave/service"
)

// BrokerRoutes mounts the gateway broker surface. The group is expected
// to carry the open-CORS middleware: any origin, OPTIONS short-circuit.
func BrokerRoutes(api fiber.Router) {
	broker := service.NewTokenBroker()
	client := service.NewClient(broker)
	h := controller.NewBrokerController(broker, client)

	api.Post("/ping", h.Ping)

	flw := api.Group("/flutterwave")
	flw.Post("/token", h.Token)
	flw.Post("/direct-charges", h.DirectCharges)
	flw.Get("/charges/:id", h.ChargeStatus)
}
