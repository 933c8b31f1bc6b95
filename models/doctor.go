package models

import (
	"time"
)

type Specialization string

const (
	SpecGeneral         Specialization = "general"
	SpecCardiology      Specialization = "cardiology"
	SpecDermatology     Specialization = "dermatology"
	SpecEndocrinology   Specialization = "endocrinology"
	SpecGastro          Specialization = "gastroenterology"
	SpecHematology      Specialization = "hematology"
	SpecInfectious      Specialization = "infectious_disease"
	SpecInternal        Specialization = "internal_medicine"
	SpecNephrology      Specialization = "nephrology"
	SpecNeurology       Specialization = "neurology"
	SpecObGyn           Specialization = "obstetrics_gynecology"
	SpecOncology        Specialization = "oncology"
	SpecOphthalmology   Specialization = "ophthalmology"
	SpecOrthopedics     Specialization = "orthopedics"
	SpecPediatrics      Specialization = "pediatrics"
	SpecPsychiatry      Specialization = "psychiatry"
	SpecPulmonology     Specialization = "pulmonology"
	SpecRadiology       Specialization = "radiology"
	SpecRheumatology    Specialization = "rheumatology"
	SpecSurgery         Specialization = "surgery"
	SpecUrology         Specialization = "urology"
	SpecOther           Specialization = "other"
)

var specializations = map[Specialization]bool{
	SpecGeneral: true, SpecCardiology: true, SpecDermatology: true,
	SpecEndocrinology: true, SpecGastro: true, SpecHematology: true,
	SpecInfectious: true, SpecInternal: true, SpecNephrology: true,
	SpecNeurology: true, SpecObGyn: true, SpecOncology: true,
	SpecOphthalmology: true, SpecOrthopedics: true, SpecPediatrics: true,
	SpecPsychiatry: true, SpecPulmonology: true, SpecRadiology: true,
	SpecRheumatology: true, SpecSurgery: true, SpecUrology: true,
	SpecOther: true,
}

func (s Specialization) IsValid() bool {
	return specializations[s]
}

// Doctor is shared institutional data: any authenticated user may read or
// mutate any doctor record. CreatedBy is informational only.
type Doctor struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Email             string         `json:"email" gorm:"uniqueIndex"`
	Phone             string         `json:"phone"`
	Specialization    Specialization `json:"specialization" gorm:"index"`
	LicenseNumber     string         `json:"license_number" gorm:"uniqueIndex"`
	YearsOfExperience uint           `json:"years_of_experience"`
	Qualification     string         `json:"qualification"`
	Bio               string         `json:"bio"`
	ConsultationFee   float64        `json:"consultation_fee"`
	IsAvailable       bool           `json:"is_available" gorm:"default:true;index"`
	HospitalName      string         `json:"hospital_name"`
	Address           string         `json:"address"`
	City              string         `json:"city"`
	State             string         `json:"state"`
	Country           string         `json:"country"`
	CreatedBy         uint           `json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

func (d *Doctor) DisplayName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}
