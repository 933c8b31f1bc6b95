package routes

import (
	"github.com/gofiber/fiber/v2"

	"healthcare-backend/blacklist"
	"healthcare-backend/config"
	"healthcare-backend/controllers"
	"healthcare-backend/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, cfg *config.Config, store blacklist.Store) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register(cfg))
	auth.Post("/login", controllers.Login(cfg))
	auth.Post("/token/refresh", controllers.RefreshToken(cfg, store))

	// Protected routes
	auth.Post("/logout", middleware.Protected(cfg), controllers.Logout(cfg, store))
	auth.Get("/me", middleware.Protected(cfg), controllers.Me())
}
