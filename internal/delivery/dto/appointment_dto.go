package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	PatientID          uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID           uuid.UUID  `json:"doctor_id" validate:"required"`
	Date               string     `json:"date" validate:"required"`
	Time               string     `json:"time" validate:"required"`
	DurationMinutes    int        `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Type               string     `json:"type" validate:"required,oneof=online in-person emergency"`
	AvailabilitySlotID *uuid.UUID `json:"availability_slot_id,omitempty"`
	Symptoms           string     `json:"symptoms"`
	Notes              string     `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled no-show"`
	Notes  string `json:"notes"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	PatientID          uuid.UUID       `json:"patient_id"`
	DoctorID           uuid.UUID       `json:"doctor_id"`
	DoctorName         string          `json:"doctor_name,omitempty"`
	AvailabilitySlotID *uuid.UUID      `json:"availability_slot_id,omitempty"`
	DateTime           time.Time       `json:"date_time"`
	EndTime            time.Time       `json:"end_time"`
	DurationMinutes    int             `json:"duration_minutes"`
	Type               string          `json:"type"`
	Status             string          `json:"status"`
	Symptoms           string          `json:"symptoms,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Fee                decimal.Decimal `json:"fee"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailableTimesResponse struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	DayOfWeek string    `json:"day_of_week"`
	Times     []string  `json:"times"`
}
