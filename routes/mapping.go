package routes

import (
	"github.com/gofiber/fiber/v2"

	"healthcare-backend/config"
	"healthcare-backend/controllers"
	"healthcare-backend/middleware"
)

// SetupMappingRoutes configures all patient-doctor mapping routes.
// The detail routes are registered before /:patient_id so "detail" is not
// swallowed by the param.
func SetupMappingRoutes(app *fiber.App, cfg *config.Config) {
	mappings := app.Group("/api/mappings", middleware.Protected(cfg))

	mappings.Post("/", controllers.CreateMapping)
	mappings.Get("/", controllers.GetAllMappings)
	mappings.Get("/detail/:id", controllers.GetMapping)
	mappings.Delete("/detail/:id", controllers.DeleteMapping)
	mappings.Get("/:patient_id", controllers.GetPatientDoctors)
}
