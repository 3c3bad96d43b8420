package route

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "akademiku_backend/internals/features/users/controller"
	"akademiku_backend/internals/middlewares"
	authmw "akademiku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	h := controller.NewAuthController(db)

	auth := app.Group("/api/auth", middlewares.CorsMiddleware())
	auth.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	auth.Get("/me",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		h.Me,
	)
}
