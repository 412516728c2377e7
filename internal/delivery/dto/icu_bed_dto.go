package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ReserveBedRequest struct {
	BedID     uuid.UUID `json:"bed_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
}

type OccupyBedRequest struct {
	BedID     uuid.UUID `json:"bed_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
}

// Response DTOs

type ICUBedResponse struct {
	ID                   uuid.UUID       `json:"id"`
	BedNumber            string          `json:"bed_number"`
	Hospital             string          `json:"hospital"`
	HospitalAddress      string          `json:"hospital_address,omitempty"`
	ICUType              string          `json:"icu_type"`
	Status               string          `json:"status"`
	DailyRate            decimal.Decimal `json:"daily_rate"`
	Equipment            string          `json:"equipment,omitempty"`
	AssignedPatientID    *uuid.UUID      `json:"assigned_patient_id,omitempty"`
	ReservationStartTime *time.Time      `json:"reservation_start_time,omitempty"`
	ReservationEndTime   *time.Time      `json:"reservation_end_time,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type ICUBedListResponse struct {
	Beds  []ICUBedResponse `json:"beds"`
	Total int              `json:"total"`
}
