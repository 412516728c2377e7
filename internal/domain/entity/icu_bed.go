package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BedStatus represents the state of a physical ICU bed
type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusReserved    BedStatus = "reserved"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusMaintenance BedStatus = "maintenance"
)

var (
	// ErrBedInvalidTransition is returned when a bed state change is not
	// permitted from the current status.
	ErrBedInvalidTransition = errors.New("invalid bed state transition")
	// ErrBedReservationWindow is returned when a reservation window ends
	// before it starts.
	ErrBedReservationWindow = errors.New("reservation start cannot be after end")
)

// ICUBed tracks a single physical bed through
// available -> reserved/occupied -> available. A bed holds at most one active
// reservation window at a time; that is an invariant of the model, not an
// interval set.
type ICUBed struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BedNumber            string          `gorm:"type:varchar(50);not null" json:"bed_number"`
	Hospital             string          `gorm:"type:varchar(255);not null;index" json:"hospital"`
	HospitalAddress      string          `gorm:"type:text" json:"hospital_address,omitempty"`
	ICUType              string          `gorm:"type:varchar(50);not null;index" json:"icu_type"`
	Status               BedStatus       `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	DailyRate            decimal.Decimal `gorm:"type:decimal(10,2)" json:"daily_rate"`
	Equipment            string          `gorm:"type:text" json:"equipment,omitempty"`
	AssignedPatientID    *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_patient_id,omitempty"`
	ReservationStartTime *time.Time      `json:"reservation_start_time,omitempty"`
	ReservationEndTime   *time.Time      `json:"reservation_end_time,omitempty"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ICUBed) TableName() string {
	return "icu_beds"
}

// IsAvailable checks if the bed can accept a new reservation or walk-in
func (b *ICUBed) IsAvailable() bool {
	return b.Status == BedStatusAvailable
}

// IsReserved checks if the bed holds an active reservation
func (b *ICUBed) IsReserved() bool {
	return b.Status == BedStatusReserved
}

// IsOccupied checks if a patient currently occupies the bed
func (b *ICUBed) IsOccupied() bool {
	return b.Status == BedStatusOccupied
}

// Reserve stores a reservation window for a patient. Legal only from
// available; a reserved or occupied bed cannot take a second reservation.
func (b *ICUBed) Reserve(patientID uuid.UUID, start, end time.Time) error {
	if b.Status != BedStatusAvailable {
		return ErrBedInvalidTransition
	}
	if start.After(end) {
		return ErrBedReservationWindow
	}
	b.Status = BedStatusReserved
	b.AssignedPatientID = &patientID
	b.ReservationStartTime = &start
	b.ReservationEndTime = &end
	return nil
}

// Occupy moves the bed to occupied. Legal from available (walk-in) or from
// reserved; a reservation held by another patient does not block occupancy,
// the incoming patient takes the bed.
func (b *ICUBed) Occupy(patientID uuid.UUID) error {
	if b.Status != BedStatusAvailable && b.Status != BedStatusReserved {
		return ErrBedInvalidTransition
	}
	b.Status = BedStatusOccupied
	b.AssignedPatientID = &patientID
	return nil
}

// Release returns the bed to available from any state, clearing the assigned
// patient and reservation window. Releasing an already-available bed is a
// no-op.
func (b *ICUBed) Release() {
	b.Status = BedStatusAvailable
	b.AssignedPatientID = nil
	b.ReservationStartTime = nil
	b.ReservationEndTime = nil
}

// SetMaintenance takes the bed out of service. Operator-only, legal from
// available only.
func (b *ICUBed) SetMaintenance() error {
	if b.Status != BedStatusAvailable {
		return ErrBedInvalidTransition
	}
	b.Status = BedStatusMaintenance
	return nil
}
