package models

import (
	"time"
)

// PatientDoctorMapping joins one patient with one doctor. A given
// (patient, doctor) pair may only be assigned once.
type PatientDoctorMapping struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PatientID  uint      `json:"patient_id" gorm:"uniqueIndex:idx_patient_doctor"`
	Patient    *Patient  `json:"patient_detail,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID   uint      `json:"doctor_id" gorm:"uniqueIndex:idx_patient_doctor"`
	Doctor     *Doctor   `json:"doctor_detail,omitempty" gorm:"foreignKey:DoctorID"`
	AssignedBy uint      `json:"assigned_by"`
	Notes      string    `json:"notes"`
	IsPrimary  bool      `json:"is_primary" gorm:"default:false"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PatientDoctorMapping) TableName() string {
	return "patient_doctor_mappings"
}
