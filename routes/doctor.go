package routes

import (
	"github.com/gofiber/fiber/v2"

	"healthcare-backend/config"
	"healthcare-backend/controllers"
	"healthcare-backend/middleware"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App, cfg *config.Config) {
	doctors := app.Group("/api/doctors", middleware.Protected(cfg))

	doctors.Post("/", controllers.CreateDoctor)
	doctors.Get("/", controllers.GetAllDoctors)
	doctors.Get("/:id", controllers.GetDoctor)
	doctors.Put("/:id", controllers.UpdateDoctor(false))
	doctors.Patch("/:id", controllers.UpdateDoctor(true))
	doctors.Delete("/:id", controllers.DeleteDoctor)
}
