package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"healthcare-backend/db"
	"healthcare-backend/models"
	"healthcare-backend/utils"
)

type MappingInput struct {
	PatientID uint   `json:"patient_id"`
	DoctorID  uint   `json:"doctor_id"`
	Notes     string `json:"notes"`
	IsPrimary bool   `json:"is_primary"`
}

func (in *MappingInput) Validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	if in.PatientID == 0 {
		errs.Add("patient_id", "Patient is required.")
	}
	if in.DoctorID == 0 {
		errs.Add("doctor_id", "Doctor is required.")
	}
	return errs
}

// CreateMapping handles POST /api/mappings/. The caller must own the
// referenced patient; a foreign patient id looks like a missing one, the
// same way the patient endpoints behave.
func CreateMapping(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(MappingInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
	}

	if errs := input.Validate(); !errs.Empty() {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to create mapping.", errs)
	}

	var patient models.Patient
	if db.DB.Where("id = ? AND created_by = ?", input.PatientID, userID).First(&patient).RowsAffected == 0 {
		return utils.NotFound(c, "Patient not found.")
	}

	var doctor models.Doctor
	if db.DB.First(&doctor, "id = ?", input.DoctorID).RowsAffected == 0 {
		return utils.NotFound(c, "Doctor not found.")
	}

	var count int64
	db.DB.Model(&models.PatientDoctorMapping{}).
		Where("patient_id = ? AND doctor_id = ?", input.PatientID, input.DoctorID).
		Count(&count)
	if count > 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to create mapping.", utils.FieldErrors{
			"doctor_id": {"This doctor is already assigned to the patient."},
		})
	}

	mapping := models.PatientDoctorMapping{
		PatientID:  input.PatientID,
		DoctorID:   input.DoctorID,
		AssignedBy: userID,
		Notes:      input.Notes,
		IsPrimary:  input.IsPrimary,
	}
	if err := db.DB.Create(&mapping).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create mapping.", nil)
	}

	mapping.Patient = &patient
	mapping.Doctor = &doctor

	return utils.Success(c, fiber.StatusCreated, "Doctor assigned to patient successfully.", mapping)
}

// GetAllMappings handles GET /api/mappings/ with optional patient_id,
// doctor_id and is_primary filters. Mappings are visible to any
// authenticated user.
func GetAllMappings(c *fiber.Ctx) error {
	query := db.DB.Preload("Patient").Preload("Doctor")

	if patientID := c.Query("patient_id"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if isPrimary := c.Query("is_primary"); isPrimary != "" {
		query = query.Where("is_primary = ?", strings.EqualFold(isPrimary, "true"))
	}

	var mappings []models.PatientDoctorMapping
	if err := query.Order("assigned_at DESC").Find(&mappings).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch mappings.", nil)
	}

	return utils.SuccessList(c, len(mappings), mappings)
}

// GetPatientDoctors handles GET /api/mappings/:patient_id/, listing every
// doctor assigned to the patient.
func GetPatientDoctors(c *fiber.Ctx) error {
	var patient models.Patient
	if db.DB.First(&patient, "id = ?", c.Params("patient_id")).RowsAffected == 0 {
		return utils.NotFound(c, "Patient not found.")
	}

	var mappings []models.PatientDoctorMapping
	if err := db.DB.Preload("Doctor").
		Where("patient_id = ?", patient.ID).
		Order("assigned_at DESC").
		Find(&mappings).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch mappings.", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"patient": fiber.Map{
			"id":        patient.ID,
			"full_name": patient.FullName(),
		},
		"count": len(mappings),
		"data":  mappings,
	})
}

// DeleteMapping handles DELETE /api/mappings/detail/:id/
func DeleteMapping(c *fiber.Ctx) error {
	var mapping models.PatientDoctorMapping
	if db.DB.First(&mapping, "id = ?", c.Params("id")).RowsAffected == 0 {
		return utils.NotFound(c, "Mapping not found.")
	}

	if err := db.DB.Delete(&mapping).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete mapping.", nil)
	}

	return utils.Success(c, fiber.StatusOK, "Mapping removed successfully.", nil)
}

// GetMapping handles GET /api/mappings/detail/:id/
func GetMapping(c *fiber.Ctx) error {
	var mapping models.PatientDoctorMapping
	if db.DB.Preload("Patient").Preload("Doctor").
		First(&mapping, "id = ?", c.Params("id")).RowsAffected == 0 {
		return utils.NotFound(c, "Mapping not found.")
	}

	return utils.Success(c, fiber.StatusOK, "Mapping retrieved successfully.", mapping)
}
