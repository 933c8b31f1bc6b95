package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"healthcare-backend/blacklist"
	"healthcare-backend/config"
	"healthcare-backend/cron"
	"healthcare-backend/db"
	"healthcare-backend/routes"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate(cfg)
		return
	}

	db.Init(cfg)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	store := blacklist.NewGormStore(db.DB)

	routes.SetupAuthRoutes(app, cfg, store)
	routes.SetupPatientRoutes(app, cfg)
	routes.SetupDoctorRoutes(app, cfg)
	routes.SetupMappingRoutes(app, cfg)

	cron.StartCronJobs(store)

	log.Fatal(app.Listen(":" + cfg.Port))
}
