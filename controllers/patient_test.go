package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"healthcare-backend/models"
)

func strPtr(s string) *string { return &s }

func validPatientInput() PatientInput {
	return PatientInput{
		FirstName:   strPtr("John"),
		LastName:    strPtr("Doe"),
		Email:       strPtr("john.doe@example.com"),
		Phone:       strPtr("1234567890"),
		DateOfBirth: strPtr("1990-01-15"),
		Gender:      strPtr("M"),
		BloodGroup:  strPtr("O+"),
	}
}

func TestPatientInputValidateFull(t *testing.T) {
	in := validPatientInput()
	assert.True(t, in.Validate(false).Empty())

	in = validPatientInput()
	in.FirstName = nil
	assert.Contains(t, in.Validate(false), "first_name")

	in = validPatientInput()
	in.DateOfBirth = nil
	assert.Contains(t, in.Validate(false), "date_of_birth")

	in = validPatientInput()
	in.Gender = strPtr("male")
	assert.Contains(t, in.Validate(false), "gender")

	in = validPatientInput()
	in.BloodGroup = strPtr("C+")
	assert.Contains(t, in.Validate(false), "blood_group")

	in = validPatientInput()
	in.DateOfBirth = strPtr("2999-01-01")
	assert.Contains(t, in.Validate(false), "date_of_birth")

	in = validPatientInput()
	in.Phone = strPtr("123")
	assert.Contains(t, in.Validate(false), "phone")
}

func TestPatientInputValidatePartial(t *testing.T) {
	// A partial update may omit required fields entirely.
	in := PatientInput{Allergies: strPtr("penicillin")}
	assert.True(t, in.Validate(true).Empty())

	// But fields that are present are still validated.
	in = PatientInput{Gender: strPtr("X")}
	assert.Contains(t, in.Validate(true), "gender")

	in = PatientInput{FirstName: strPtr("  ")}
	assert.Contains(t, in.Validate(true), "first_name")
}

func TestPatientInputApply(t *testing.T) {
	patient := models.Patient{
		FirstName: "John",
		LastName:  "Doe",
		Gender:    models.GenderMale,
		Allergies: "none",
		CreatedBy: 7,
	}

	in := PatientInput{
		Allergies: strPtr("penicillin"),
		City:      strPtr("Mumbai"),
	}
	in.Apply(&patient)

	assert.Equal(t, "penicillin", patient.Allergies)
	assert.Equal(t, "Mumbai", patient.City)
	assert.Equal(t, "John", patient.FirstName, "untouched fields keep their value")
	assert.Equal(t, uint(7), patient.CreatedBy, "ownership is never reassigned")
}

func TestMappingInputValidate(t *testing.T) {
	in := MappingInput{PatientID: 1, DoctorID: 2}
	assert.True(t, in.Validate().Empty())

	in = MappingInput{DoctorID: 2}
	assert.Contains(t, in.Validate(), "patient_id")

	in = MappingInput{PatientID: 1}
	assert.Contains(t, in.Validate(), "doctor_id")
}
