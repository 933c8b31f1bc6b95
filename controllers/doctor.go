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

// DoctorInput carries a create or update payload, pointer fields for the
// same partial-update reasons as PatientInput.
type DoctorInput struct {
	FirstName         *string  `json:"first_name"`
	LastName          *string  `json:"last_name"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"phone"`
	Specialization    *string  `json:"specialization"`
	LicenseNumber     *string  `json:"license_number"`
	YearsOfExperience *uint    `json:"years_of_experience"`
	Qualification     *string  `json:"qualification"`
	Bio               *string  `json:"bio"`
	ConsultationFee   *float64 `json:"consultation_fee"`
	IsAvailable       *bool    `json:"is_available"`
	HospitalName      *string  `json:"hospital_name"`
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	Country           *string  `json:"country"`
}

func (in *DoctorInput) Validate(partial bool) utils.FieldErrors {
	errs := utils.FieldErrors{}

	if !partial {
		if in.FirstName == nil || strings.TrimSpace(*in.FirstName) == "" {
			errs.Add("first_name", "First name cannot be blank.")
		}
		if in.LastName == nil || strings.TrimSpace(*in.LastName) == "" {
			errs.Add("last_name", "Last name cannot be blank.")
		}
		if in.Email == nil || *in.Email == "" {
			errs.Add("email", "Email is required.")
		}
		if in.Specialization == nil {
			errs.Add("specialization", "Specialization is required.")
		}
		if in.LicenseNumber == nil || strings.TrimSpace(*in.LicenseNumber) == "" {
			errs.Add("license_number", "License number is required.")
		}
	} else {
		if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
			errs.Add("first_name", "First name cannot be blank.")
		}
		if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
			errs.Add("last_name", "Last name cannot be blank.")
		}
		if in.LicenseNumber != nil && strings.TrimSpace(*in.LicenseNumber) == "" {
			errs.Add("license_number", "License number cannot be blank.")
		}
	}

	if in.Email != nil && *in.Email != "" && !utils.IsEmail(*in.Email) {
		errs.Add("email", "Enter a valid email address.")
	}
	if in.Phone != nil && *in.Phone != "" && !utils.IsPhone(*in.Phone) {
		errs.Add("phone", "Phone number must be between 7 and 15 digits.")
	}
	if in.Specialization != nil && !models.Specialization(*in.Specialization).IsValid() {
		errs.Add("specialization", "Invalid specialization.")
	}

	return errs
}

func (in *DoctorInput) Apply(d *models.Doctor) {
	if in.FirstName != nil {
		d.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		d.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		d.Email = strings.ToLower(*in.Email)
	}
	if in.Phone != nil {
		d.Phone = *in.Phone
	}
	if in.Specialization != nil {
		d.Specialization = models.Specialization(*in.Specialization)
	}
	if in.LicenseNumber != nil {
		d.LicenseNumber = strings.TrimSpace(*in.LicenseNumber)
	}
	if in.YearsOfExperience != nil {
		d.YearsOfExperience = *in.YearsOfExperience
	}
	if in.Qualification != nil {
		d.Qualification = *in.Qualification
	}
	if in.Bio != nil {
		d.Bio = *in.Bio
	}
	if in.ConsultationFee != nil {
		d.ConsultationFee = *in.ConsultationFee
	}
	if in.IsAvailable != nil {
		d.IsAvailable = *in.IsAvailable
	}
	if in.HospitalName != nil {
		d.HospitalName = *in.HospitalName
	}
	if in.Address != nil {
		d.Address = *in.Address
	}
	if in.City != nil {
		d.City = *in.City
	}
	if in.State != nil {
		d.State = *in.State
	}
	if in.Country != nil {
		d.Country = *in.Country
	}
}

// doctorConflicts reports unique-field collisions with other doctor rows.
// excludeID skips the record being updated.
func doctorConflicts(d *models.Doctor, excludeID uint) (utils.FieldErrors, error) {
	errs := utils.FieldErrors{}

	var count int64
	err := db.DB.Model(&models.Doctor{}).
		Where("license_number = ? AND id <> ?", d.LicenseNumber, excludeID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		errs.Add("license_number", "A doctor with this license number already exists.")
	}

	err = db.DB.Model(&models.Doctor{}).
		Where("email = ? AND id <> ?", d.Email, excludeID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		errs.Add("email", "A doctor with this email already exists.")
	}

	return errs, nil
}

// CreateDoctor handles POST /api/doctors/. No owner is recorded for access
// control purposes: doctors are shared institutional data.
func CreateDoctor(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := new(DoctorInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
	}

	if errs := input.Validate(false); !errs.Empty() {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to create doctor.", errs)
	}

	doctor := models.Doctor{IsAvailable: true, CreatedBy: userID}
	input.Apply(&doctor)

	errs, err := doctorConflicts(&doctor, 0)
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create doctor.", nil)
	}
	if !errs.Empty() {
		return utils.Fail(c, fiber.StatusConflict, "Failed to create doctor.", errs)
	}

	if err := db.DB.Create(&doctor).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create doctor.", nil)
	}

	return utils.Success(c, fiber.StatusCreated, "Doctor created successfully.", doctor)
}

// GetAllDoctors handles GET /api/doctors/ with composable filters.
func GetAllDoctors(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Doctor{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR hospital_name ILIKE ?",
			like, like, like,
		)
	}
	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization = ?", spec)
	}
	if avail := c.Query("is_available"); avail != "" {
		query = query.Where("is_available = ?", strings.EqualFold(avail, "true"))
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}

	var doctors []models.Doctor
	if err := query.Order("created_at DESC").Find(&doctors).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to fetch doctors.", nil)
	}

	return utils.SuccessList(c, len(doctors), doctors)
}

// GetDoctor handles GET /api/doctors/:id/
func GetDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if db.DB.First(&doctor, "id = ?", c.Params("id")).RowsAffected == 0 {
		return utils.NotFound(c, "Doctor not found.")
	}

	return utils.Success(c, fiber.StatusOK, "Doctor retrieved successfully.", doctor)
}

// UpdateDoctor handles PUT (full) and PATCH (partial) /api/doctors/:id/
func UpdateDoctor(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doctor models.Doctor
		if db.DB.First(&doctor, "id = ?", c.Params("id")).RowsAffected == 0 {
			return utils.NotFound(c, "Doctor not found.")
		}

		input := new(DoctorInput)
		if err := c.BodyParser(input); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON", nil)
		}

		if errs := input.Validate(partial); !errs.Empty() {
			return utils.Fail(c, fiber.StatusBadRequest, "Failed to update doctor.", errs)
		}

		input.Apply(&doctor)

		errs, err := doctorConflicts(&doctor, doctor.ID)
		if err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update doctor.", nil)
		}
		if !errs.Empty() {
			return utils.Fail(c, fiber.StatusConflict, "Failed to update doctor.", errs)
		}

		if err := db.DB.Save(&doctor).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to update doctor.", nil)
		}

		return utils.Success(c, fiber.StatusOK, "Doctor updated successfully.", doctor)
	}
}

// DeleteDoctor handles DELETE /api/doctors/:id/. Mappings referencing the
// doctor are removed in the same transaction.
func DeleteDoctor(c *fiber.Ctx) error {
	var doctor models.Doctor
	if db.DB.First(&doctor, "id = ?", c.Params("id")).RowsAffected == 0 {
		return utils.NotFound(c, "Doctor not found.")
	}

	name := doctor.DisplayName()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).Delete(&models.PatientDoctorMapping{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to delete doctor.", nil)
	}

	return utils.Success(c, fiber.StatusOK,
		fmt.Sprintf("Doctor %q deleted successfully.", name), nil)
}
