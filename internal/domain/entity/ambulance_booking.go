package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmbulanceStatus represents the dispatch lifecycle of an emergency transport
// request
type AmbulanceStatus string

const (
	AmbulanceStatusRequested  AmbulanceStatus = "requested"
	AmbulanceStatusDispatched AmbulanceStatus = "dispatched"
	AmbulanceStatusEnRoute    AmbulanceStatus = "en_route"
	AmbulanceStatusArrived    AmbulanceStatus = "arrived"
	AmbulanceStatusCompleted  AmbulanceStatus = "completed"
	AmbulanceStatusCancelled  AmbulanceStatus = "cancelled"
)

// Priority classifies the medical urgency of a transport request
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ErrAmbulanceInvalidTransition is returned when a booking status change
// skips the dispatch lifecycle.
var ErrAmbulanceInvalidTransition = errors.New("invalid ambulance booking status transition")

// baseCost is the flat charge every transport starts from, before the
// priority and emergency-type multipliers compose on top of it.
var baseCost = decimal.NewFromInt(500)

// priorityMultipliers and emergencyTypeMultipliers are loaded once at process
// start and never mutated.
var priorityMultipliers = map[Priority]decimal.Decimal{
	PriorityCritical: decimal.RequireFromString("2.0"),
	PriorityHigh:     decimal.RequireFromString("1.5"),
	PriorityMedium:   decimal.RequireFromString("1.2"),
	PriorityLow:      decimal.RequireFromString("1.0"),
}

var emergencyTypeMultipliers = map[string]decimal.Decimal{
	"cardiac": decimal.RequireFromString("1.3"),
	"stroke":  decimal.RequireFromString("1.3"),
	"trauma":  decimal.RequireFromString("1.2"),
}

// arrivalEstimates is a static lookup, not a live routing calculation.
var arrivalEstimates = map[Priority]int{
	PriorityCritical: 5,
	PriorityHigh:     8,
	PriorityMedium:   12,
	PriorityLow:      15,
}

const defaultArrivalMinutes = 10

// priorityRanks orders bookings for the active queue: critical < high <
// medium < low.
var priorityRanks = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// AmbulanceBooking represents an emergency transport request moving strictly
// forward through requested -> dispatched -> en_route -> arrived -> completed,
// or terminating at cancelled from any non-terminal state.
type AmbulanceBooking struct {
	ID                      uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	EmergencyType           string              `gorm:"type:varchar(50);not null" json:"emergency_type"`
	Priority                Priority            `gorm:"type:varchar(10);not null;index" json:"priority"`
	PickupAddress           string              `gorm:"type:text;not null" json:"pickup_address"`
	Destination             string              `gorm:"type:text;not null" json:"destination"`
	ContactPhone            string              `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	Symptoms                string              `gorm:"type:text" json:"symptoms,omitempty"`
	AdditionalInfo          string              `gorm:"type:text" json:"additional_info,omitempty"`
	Status                  AmbulanceStatus     `gorm:"type:varchar(20);not null;default:'requested';index" json:"status"`
	AmbulanceID             *string             `gorm:"type:varchar(50)" json:"ambulance_id,omitempty"`
	DriverID                *string             `gorm:"type:varchar(50)" json:"driver_id,omitempty"`
	ParamedicsIDs           string              `gorm:"type:text" json:"paramedics_ids,omitempty"`
	EstimatedCost           decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"estimated_cost"`
	FinalCost               decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"final_cost,omitempty"`
	EstimatedArrivalMinutes int                 `gorm:"not null" json:"estimated_arrival_minutes"`
	CancellationReason      string              `gorm:"type:text" json:"cancellation_reason,omitempty"`
	RequestTime             time.Time           `gorm:"not null;index" json:"request_time"`
	DispatchTime            *time.Time          `json:"dispatch_time,omitempty"`
	ArrivalTime             *time.Time          `json:"arrival_time,omitempty"`
	CompletionTime          *time.Time          `json:"completion_time,omitempty"`
	CreatedAt               time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AmbulanceBooking) TableName() string {
	return "ambulance_bookings"
}

// EstimateCost computes baseCost x priority multiplier x emergency-type
// multiplier, rounded to currency precision.
func EstimateCost(priority Priority, emergencyType string) decimal.Decimal {
	cost := baseCost
	if m, ok := priorityMultipliers[priority]; ok {
		cost = cost.Mul(m)
	}
	if m, ok := emergencyTypeMultipliers[emergencyType]; ok {
		cost = cost.Mul(m)
	}
	return cost.Round(2)
}

// EstimateArrivalMinutes returns the static ETA for a priority class.
func EstimateArrivalMinutes(priority Priority) int {
	if minutes, ok := arrivalEstimates[priority]; ok {
		return minutes
	}
	return defaultArrivalMinutes
}

// PriorityRank returns the sort ordinal of the booking's priority; unknown
// priorities sink below low.
func (b *AmbulanceBooking) PriorityRank() int {
	if rank, ok := priorityRanks[b.Priority]; ok {
		return rank
	}
	return len(priorityRanks)
}

// IsTerminal checks if the booking has reached completed or cancelled
func (b *AmbulanceBooking) IsTerminal() bool {
	return b.Status == AmbulanceStatusCompleted || b.Status == AmbulanceStatusCancelled
}

// Dispatch assigns the ambulance and driver. Legal only from requested.
func (b *AmbulanceBooking) Dispatch(ambulanceID, driverID string, estimatedMinutes int, now time.Time) error {
	if b.Status != AmbulanceStatusRequested {
		return ErrAmbulanceInvalidTransition
	}
	b.Status = AmbulanceStatusDispatched
	b.AmbulanceID = &ambulanceID
	b.DriverID = &driverID
	if estimatedMinutes > 0 {
		b.EstimatedArrivalMinutes = estimatedMinutes
	}
	b.DispatchTime = &now
	return nil
}

// MarkEnRoute is legal only from dispatched.
func (b *AmbulanceBooking) MarkEnRoute() error {
	if b.Status != AmbulanceStatusDispatched {
		return ErrAmbulanceInvalidTransition
	}
	b.Status = AmbulanceStatusEnRoute
	return nil
}

// MarkArrived is legal only from en_route.
func (b *AmbulanceBooking) MarkArrived(now time.Time) error {
	if b.Status != AmbulanceStatusEnRoute {
		return ErrAmbulanceInvalidTransition
	}
	b.Status = AmbulanceStatusArrived
	b.ArrivalTime = &now
	return nil
}

// Complete closes the booking from arrived, recording the final cost.
func (b *AmbulanceBooking) Complete(finalCost decimal.Decimal, now time.Time) error {
	if b.Status != AmbulanceStatusArrived {
		return ErrAmbulanceInvalidTransition
	}
	b.Status = AmbulanceStatusCompleted
	b.FinalCost = decimal.NewNullDecimal(finalCost)
	b.CompletionTime = &now
	return nil
}

// Cancel terminates the booking from any non-terminal state.
func (b *AmbulanceBooking) Cancel(reason string) error {
	if b.IsTerminal() {
		return ErrAmbulanceInvalidTransition
	}
	b.Status = AmbulanceStatusCancelled
	b.CancellationReason = reason
	return nil
}

// ValidPriority reports whether p is a recognized priority class.
func ValidPriority(p Priority) bool {
	_, ok := priorityRanks[p]
	return ok
}
