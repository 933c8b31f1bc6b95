package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"healthcare-backend/db"
	"healthcare-backend/models"
	"healthcare-backend/utils"
)

// PatientInput carries a create or update payload. Pointer fields tell a
// partial update apart from an explicit empty value.
type PatientInput struct {
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	DateOfBirth           *string `json:"date_of_birth"`
	Gender                *string `json:"gender"`
	BloodGroup            *string `json:"blood_group"`
	Allergies             *string `json:"allergies"`
	MedicalHistory        *string `json:"medical_history"`
	CurrentMedications    *string `json:"current_medications"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	Address               *string `json:"address"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	Country               *string `json:"country"`
	PostalCode            *string `json:"postal_code"`
}

// Validate checks enums, formats and (unless partial) required fields.
func (in *PatientInput) Validate(partial bool) utils.FieldErrors {
	errs := utils.FieldErrors{}

	if !partial {
		if in.FirstName == nil || strings.TrimSpace(*in.FirstName) == "" {
			errs.Add("first_name", "First name cannot be blank.")
		}
		if in.LastName == nil || strings.TrimSpace(*in.LastName) == "" {
			errs.Add("last_name", "Last name cannot be blank.")
		}
		if in.DateOfBirth == nil {
			errs.Add("date_of_birth", "Date of birth is required.")
		}
		if in.Gender == nil {
			errs.Add("gender", "Gender is required.")
		}
	} else {
		if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
			errs.Add("first_name", "First name cannot be blank.")
		}
		if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
			errs.Add("last_name", "Last name cannot be blank.")
		}
	}

	if in.DateOfBirth != nil {
		if _, ok := utils.ParseBirthDate(*in.DateOfBirth); !ok {
			errs.Add("date_of_birth", "Date of birth must be a valid past date (YYYY-MM-DD).")
		}
	}
	if in.Gender != nil && !models.Gender(*in.Gender).IsValid() {
		errs.Add("gender", "Gender must be one of: M, F, O, N.")
	}
	if in.BloodGroup != nil && *in.BloodGroup != "" && !models.BloodGroup(*in.BloodGroup).IsValid() {
		errs.Add("blood_group", "Invalid blood group.")
	}
	if in.Email != nil && *in.Email != "" && !utils.IsEmail(*in.Email) {
		errs.Add("email", "Enter a valid email address.")
	}
	if in.Phone != nil && *in.Phone != "" && !utils.IsPhone(*in.Phone) {
		errs.Add("phone", "Phone number must be between 7 and 15 digits.")
	}
	if in.EmergencyContactPhone != nil && *in.EmergencyContactPhone != "" && !utils.IsPhone(*in.EmergencyContactPhone) {
		errs.Add("emergency_contact_phone", "Phone number must be between 7 and 15 digits.")
	}

	return errs
}

// Apply copies the provided fields onto the record. Ownership is never
// touched here.
func (in *PatientInput) Apply(p *models.Patient) {
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		p.Email = strings.ToLower(*in.Email)
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.DateOfBirth != nil {
		if t, ok := utils.ParseBirthDate(*in.DateOfBirth); ok {
			p.DateOfBirth = models.Date{Time: t}
		}
	}
	if in.Gender != nil {
		p.Gender = models.Gender(*in.Gender)
	}
	if in.BloodGroup != nil {
		p.BloodGroup = models.BloodGroup(*in.BloodGroup)
	}
	if in.Allergies != nil {
		p.Allergies = *in.Allergies
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = *in.MedicalHistory
	}
	if in.CurrentMedications != nil {
		p.CurrentMedications = *in.CurrentMedications
	}
	if in.EmergencyContactName != nil {
		p.EmergencyContactName = *in.EmergencyContactName
	}
	if in.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = *in.EmergencyContactPhone
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.State != nil {
		p.State = *in.State
	}
	if in.Country != nil {
		p.Country = *in.Country
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
}

// findOwnedPatient resolves a patient id scoped to its owner. A patient
// owned by someone else is reported exactly like a missing one.
func findOwnedPatient(id string, ownerID uint) (*models.Patient, bool) {
	var patient models.Patient
	result := db.DB.Where("id = ? AND created_by = ?", id, ownerID).First(&patient)
	if result.RowsAffected == 0 {
		return nil, false
	}
	return &patient, true
}

// CreatePatient handles POST /api/patients/
func CreatePatient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(PatientInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
	}

	if errs := input.Validate(false); !errs.Empty() {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to create patient.", errs)
	}

	patient := models.Patient{CreatedBy: userID}
	input.Apply(&patient)

	if err := db.DB.Create(&patient).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create patient.", nil)
	}

	return utils.Success(c, fiber.StatusCreated, "Patient created successfully.", patient)
}

// GetAllPatients handles GET /api/patients/ with optional search/gender
// filters. Only the caller's own records are visible.
func GetAllPatients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := db.DB.Where("created_by = ?", userID)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like,
		)
	}
	if gender := c.Query("gender"); gender != "" {
		query = query.Where("gender = ?", gender)
	}

	var patients []models.Patient
	if err := query.Order("created_at DESC").Find(&patients).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch patients.", nil)
	}

	return utils.SuccessList(c, len(patients), patients)
}

// GetPatient handles GET /api/patients/:id/
func GetPatient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	patient, ok := findOwnedPatient(c.Params("id"), userID)
	if !ok {
		return utils.NotFound(c, "Patient not found.")
	}

	return utils.Success(c, fiber.StatusOK, "Patient retrieved successfully.", patient)
}

// UpdatePatient handles PUT (full) and PATCH (partial) /api/patients/:id/
func UpdatePatient(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		patient, ok := findOwnedPatient(c.Params("id"), userID)
		if !ok {
			return utils.NotFound(c, "Patient not found.")
		}

		input := new(PatientInput)
		if err := c.BodyParser(input); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
		}

		if errs := input.Validate(partial); !errs.Empty() {
			return utils.Fail(c, fiber.StatusBadRequest, "Failed to update patient.", errs)
		}

		input.Apply(patient)
		if err := db.DB.Save(patient).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update patient.", nil)
		}

		return utils.Success(c, fiber.StatusOK, "Patient updated successfully.", patient)
	}
}

// DeletePatient handles DELETE /api/patients/:id/. The patient's mappings
// go with it in the same transaction.
func DeletePatient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	patient, ok := findOwnedPatient(c.Params("id"), userID)
	if !ok {
		return utils.NotFound(c, "Patient not found.")
	}

	name := patient.FullName()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&models.PatientDoctorMapping{}).Error; err != nil {
			return err
		}
		return tx.Delete(patient).Error
	})
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete patient.", nil)
	}

	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Patient %q deleted successfully.", name), nil)
}
