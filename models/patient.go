package models

import (
	"time"
)

type Gender string

const (
	GenderMale         Gender = "M"
	GenderFemale       Gender = "F"
	GenderOther        Gender = "O"
	GenderNotSpecified Gender = "N"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderNotSpecified:
		return true
	}
	return false
}

type BloodGroup string

const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
)

func (b BloodGroup) IsValid() bool {
	switch b {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg,
		BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	}
	return false
}

// Patient is a demographic/medical record owned by the user who created it.
// CreatedBy is set once at creation and never reassigned.
type Patient struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Email                 string     `json:"email" gorm:"index"`
	Phone                 string     `json:"phone"`
	DateOfBirth           Date       `json:"date_of_birth"`
	Gender                Gender     `json:"gender"`
	BloodGroup            BloodGroup `json:"blood_group"`
	Allergies             string     `json:"allergies"`
	MedicalHistory        string     `json:"medical_history"`
	CurrentMedications    string     `json:"current_medications"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	Address               string     `json:"address"`
	City                  string     `json:"city"`
	State                 string     `json:"state"`
	Country               string     `json:"country"`
	PostalCode            string     `json:"postal_code"`
	CreatedBy             uint       `json:"created_by" gorm:"index"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
