package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentRoute "akademiku_backend/internals/features/academy/students/route"
	paymentRoute "akademiku_backend/internals/features/finance/payments/route"
	brokerRoute "akademiku_backend/internals/features/gateway/flutterwave/route"
	notif "akademiku_backend/internals/features/notifications/service"
	userRoute "akademiku_backend/internals/features/users/route"
	"akademiku_backend/internals/constants"
	"akademiku_backend/internals/middlewares"
	authmw "akademiku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	notifier := notif.NewNotifier()

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db)

	// ===================== GATEWAY BROKER (open CORS) =====================
	log.Println("[INFO] Setting up gateway broker surface...")
	api := app.Group("/api", middlewares.OpenCorsMiddleware())
	brokerRoute.BrokerRoutes(api)

	// ===================== ADMIN (per academy) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		middlewares.CorsMiddleware(),
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authmw.RequireRoles("finance administration", constants.FinanceRoles),
	)

	studentRoute.StudentAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db, notifier)

	// ===================== UPTIME =====================
	app.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uptime": time.Since(startTime).String(),
		})
	})
}
