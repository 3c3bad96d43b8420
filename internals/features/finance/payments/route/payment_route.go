package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "akademiku_backend/internals/features/finance/payments/controller"
	notif "akademiku_backend/internals/features/notifications/service"
)

// PaymentAdminRoutes mounts the finance surface under the admin group.
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, notifier *notif.Notifier) {
	h := controller.NewPaymentController(db, notifier)

	payments := admin.Group("/payments")
	payments.Get("/", h.List)
	payments.Post("/generate-monthly", h.GenerateMonthly)
	payments.Post("/send-reminders", h.SendReminders)
	payments.Post("/bulk-verify", h.BulkVerify)
	payments.Get("/:id", h.GetByID)
	payments.Put("/:id/verify", h.Verify)
	payments.Post("/:id/send-reminders", h.SendReminders)
}
