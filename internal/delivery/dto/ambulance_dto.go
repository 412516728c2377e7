package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type RequestAmbulanceRequest struct {
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	EmergencyType  string    `json:"emergency_type" validate:"required"`
	Priority       string    `json:"priority" validate:"required,oneof=critical high medium low"`
	PickupAddress  string    `json:"pickup_address" validate:"required"`
	Destination    string    `json:"destination" validate:"required"`
	ContactPhone   string    `json:"contact_phone" validate:"omitempty,min=7,max=20"`
	Symptoms       string    `json:"symptoms"`
	AdditionalInfo string    `json:"additional_info"`
}

type DispatchAmbulanceRequest struct {
	AmbulanceID      string `json:"ambulance_id" validate:"required"`
	DriverID         string `json:"driver_id" validate:"required"`
	EstimatedMinutes int    `json:"estimated_minutes" validate:"omitempty,min=1,max=240"`
	ParamedicsIDs    string `json:"paramedics_ids"`
}

type CompleteAmbulanceRequest struct {
	FinalCost *decimal.Decimal `json:"final_cost,omitempty"`
}

type CancelAmbulanceRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required"`
}

// Response DTOs

type AmbulanceBookingResponse struct {
	ID                      uuid.UUID        `json:"id"`
	PatientID               uuid.UUID        `json:"patient_id"`
	EmergencyType           string           `json:"emergency_type"`
	Priority                string           `json:"priority"`
	PickupAddress           string           `json:"pickup_address"`
	Destination             string           `json:"destination"`
	ContactPhone            string           `json:"contact_phone,omitempty"`
	Symptoms                string           `json:"symptoms,omitempty"`
	AdditionalInfo          string           `json:"additional_info,omitempty"`
	Status                  string           `json:"status"`
	AmbulanceID             *string          `json:"ambulance_id,omitempty"`
	DriverID                *string          `json:"driver_id,omitempty"`
	ParamedicsIDs           string           `json:"paramedics_ids,omitempty"`
	EstimatedCost           decimal.Decimal  `json:"estimated_cost"`
	FinalCost               *decimal.Decimal `json:"final_cost,omitempty"`
	EstimatedArrivalMinutes int              `json:"estimated_arrival_minutes"`
	CancellationReason      string           `json:"cancellation_reason,omitempty"`
	RequestTime             time.Time        `json:"request_time"`
	DispatchTime            *time.Time       `json:"dispatch_time,omitempty"`
	ArrivalTime             *time.Time       `json:"arrival_time,omitempty"`
	CompletionTime          *time.Time       `json:"completion_time,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

type AmbulanceBookingListResponse struct {
	Bookings []AmbulanceBookingResponse `json:"bookings"`
	Total    int                        `json:"total"`
}
