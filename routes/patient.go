package routes

import (
	"github.com/gofiber/fiber/v2"

	"healthcare-backend/config"
	"healthcare-backend/controllers"
	"healthcare-backend/middleware"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App, cfg *config.Config) {
	patients := app.Group("/api/patients", middleware.Protected(cfg))

	patients.Post("/", controllers.CreatePatient)
	patients.Get("/", controllers.GetAllPatients)
	patients.Get("/:id", controllers.GetPatient)
	patients.Put("/:id", controllers.UpdatePatient(false))
	patients.Patch("/:id", controllers.UpdatePatient(true))
	patients.Delete("/:id", controllers.DeletePatient)
}
