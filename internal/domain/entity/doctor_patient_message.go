package entity

import (
	"time"

	"github.com/google/uuid"
)

// SenderType identifies who authored a doctor-patient message
type SenderType string

const (
	SenderDoctor  SenderType = "doctor"
	SenderPatient SenderType = "patient"
	SenderSystem  SenderType = "system"
)

// DoctorPatientMessage is a row in the doctor-patient channel. The core only
// writes system-authored entries (booking confirmation, completion follow-up)
// on a best-effort basis; the messaging product itself is an external
// collaborator.
type DoctorPatientMessage struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	SenderType    SenderType `gorm:"type:varchar(10);not null" json:"sender_type"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	MessageType   string     `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	IsRead        bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorPatientMessage) TableName() string {
	return "doctor_patient_messages"
}
