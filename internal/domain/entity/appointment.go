package entity

import (
	"time"

	"medimitra-backend/pkg/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// AppointmentType represents how the consultation is held
type AppointmentType string

const (
	AppointmentTypeOnline    AppointmentType = "online"
	AppointmentTypeInPerson  AppointmentType = "in-person"
	AppointmentTypeEmergency AppointmentType = "emergency"
)

// appointmentTransitions is the enforced status graph. Only a scheduled
// appointment may move; completed, cancelled and no-show are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
}

// Appointment represents a single doctor-patient consultation booking
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AvailabilitySlotID *uuid.UUID        `gorm:"type:uuid;index" json:"availability_slot_id,omitempty"`
	DateTime           time.Time         `gorm:"not null;index" json:"date_time"`
	DurationMinutes    int               `gorm:"not null;default:30" json:"duration_minutes"`
	Type               AppointmentType   `gorm:"type:varchar(20);not null;default:'in-person'" json:"type"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	Symptoms           string            `gorm:"type:text" json:"symptoms,omitempty"`
	Fee                decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"fee"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndTime returns the exclusive end of the appointment interval.
func (a *Appointment) EndTime() time.Time {
	return a.DateTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsScheduled checks if the appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// CanTransitionTo reports whether the status change is permitted by the
// appointment lifecycle graph.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether the [DateTime, EndTime) interval of this
// appointment intersects another's.
func (a *Appointment) ConflictsWith(other *Appointment) bool {
	return schedule.Overlaps(a.DateTime, a.EndTime(), other.DateTime, other.EndTime())
}

// FindConflict returns the first appointment in existing whose interval
// overlaps [start, start+duration), skipping excludeID (used when
// rescheduling) and anything not scheduled. Returns nil when the window is
// free.
func FindConflict(existing []Appointment, start time.Time, durationMinutes int, excludeID *uuid.UUID) *Appointment {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for i := range existing {
		appt := &existing[i]
		if !appt.IsScheduled() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if schedule.Overlaps(start, end, appt.DateTime, appt.EndTime()) {
			return appt
		}
	}
	return nil
}

// ValidAppointmentType reports whether t is one of the accepted consultation types.
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentTypeOnline, AppointmentTypeInPerson, AppointmentTypeEmergency:
		return true
	}
	return false
}
