package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAvailabilitySlotRequest struct {
	DoctorID            uuid.UUID `json:"doctor_id" validate:"required"`
	DayOfWeek           string    `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime           string    `json:"start_time" validate:"required"`
	EndTime             string    `json:"end_time" validate:"required"`
	SlotDurationMinutes int       `json:"slot_duration_minutes" validate:"omitempty,min=5,max=480"`
	MaxPatientsPerSlot  int       `json:"max_patients_per_slot" validate:"omitempty,min=1,max=100"`
}

type UpdateAvailabilitySlotRequest struct {
	StartTime           string `json:"start_time" validate:"omitempty"`
	EndTime             string `json:"end_time" validate:"omitempty"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"omitempty,min=5,max=480"`
	MaxPatientsPerSlot  int    `json:"max_patients_per_slot" validate:"omitempty,min=1,max=100"`
	IsAvailable         *bool  `json:"is_available,omitempty"`
}

// Response DTOs

type AvailabilitySlotResponse struct {
	ID                  uuid.UUID `json:"id"`
	DoctorID            uuid.UUID `json:"doctor_id"`
	DayOfWeek           string    `json:"day_of_week"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	MaxPatientsPerSlot  int       `json:"max_patients_per_slot"`
	IsAvailable         bool      `json:"is_available"`
	UpcomingCount       int       `json:"upcoming_count,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// OpenSlotResponse is a slot occurrence on a concrete date with its remaining
// patient capacity after booked appointments are subtracted.
type OpenSlotResponse struct {
	AvailabilitySlotResponse
	Date              string `json:"date"`
	BookedCount       int    `json:"booked_count"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

type AvailabilitySlotListResponse struct {
	Slots []AvailabilitySlotResponse `json:"slots"`
	Total int                        `json:"total"`
}

type OpenSlotListResponse struct {
	Slots []OpenSlotResponse `json:"slots"`
	Total int                `json:"total"`
}
