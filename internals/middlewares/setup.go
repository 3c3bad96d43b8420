package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

func SetupMiddlewares(app *fiber.App) {
	// CORS is attached per route group: the broker surface is open to any
	// origin while the application surface allows credentialed origins only.
	app.Use(RecoveryMiddleware())
	app.Use(GlobalRateLimiter())
}
