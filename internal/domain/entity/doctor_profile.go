package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile is the slice of the doctor record the allocation core needs:
// identity and the consultation fee snapshotted onto new appointments. Profile
// management itself lives in an external service.
type DoctorProfile struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName        string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments      []Appointment      `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
	AvailabilitySlots []AvailabilitySlot `gorm:"foreignKey:DoctorID" json:"availability_slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
