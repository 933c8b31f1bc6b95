package db

import (
	"fmt"
	"log"

	"healthcare-backend/config"
	"healthcare-backend/models"
)

// Migrate runs AutoMigrate for every model. Kept separate from Init so the
// server never migrates implicitly on boot.
func Migrate(cfg *config.Config) {
	Init(cfg)

	err := DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Doctor{},
		&models.PatientDoctorMapping{},
		&models.RevokedToken{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
