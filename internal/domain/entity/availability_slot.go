package entity

import (
	"time"

	"medimitra-backend/pkg/schedule"

	"github.com/google/uuid"
)

// DayOfWeek is the lowercase weekday name a recurring slot is bound to
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "monday"
	DayTuesday   DayOfWeek = "tuesday"
	DayWednesday DayOfWeek = "wednesday"
	DayThursday  DayOfWeek = "thursday"
	DayFriday    DayOfWeek = "friday"
	DaySaturday  DayOfWeek = "saturday"
	DaySunday    DayOfWeek = "sunday"
)

// weekdayNames maps time.Weekday onto the stored lowercase form
var weekdayNames = map[time.Weekday]DayOfWeek{
	time.Monday:    DayMonday,
	time.Tuesday:   DayTuesday,
	time.Wednesday: DayWednesday,
	time.Thursday:  DayThursday,
	time.Friday:    DayFriday,
	time.Saturday:  DaySaturday,
	time.Sunday:    DaySunday,
}

// DayOfWeekFromDate returns the stored weekday name for a concrete date.
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return weekdayNames[date.Weekday()]
}

// ValidDayOfWeek reports whether d is a recognized weekday name.
func ValidDayOfWeek(d DayOfWeek) bool {
	for _, name := range weekdayNames {
		if name == d {
			return true
		}
	}
	return false
}

// AvailabilitySlot is a recurring weekly time window on a doctor with a
// per-occurrence patient capacity. StartTime/EndTime are HH:MM time-of-day
// strings; the window is half-open.
type AvailabilitySlot struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID            uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek           DayOfWeek `gorm:"type:varchar(10);not null;index" json:"day_of_week"`
	StartTime           string    `gorm:"type:time;not null" json:"start_time"`
	EndTime             string    `gorm:"type:time;not null" json:"end_time"`
	SlotDurationMinutes int       `gorm:"not null;default:30" json:"slot_duration_minutes"`
	MaxPatientsPerSlot  int       `gorm:"not null;default:1" json:"max_patients_per_slot"`
	IsAvailable         bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "doctor_availability_slots"
}

// MinuteRange returns the slot window as minutes since midnight.
func (s *AvailabilitySlot) MinuteRange() (start, end int, err error) {
	start, err = schedule.ParseClockMinutes(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = schedule.ParseClockMinutes(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// OverlapsWindow reports whether the slot window intersects the half-open
// [start, end) minute range on the same weekday.
func (s *AvailabilitySlot) OverlapsWindow(start, end int) (bool, error) {
	ownStart, ownEnd, err := s.MinuteRange()
	if err != nil {
		return false, err
	}
	return schedule.MinuteRangesOverlap(ownStart, ownEnd, start, end), nil
}

// RemainingCapacity applies the capacity conservation rule:
// remaining = maxPatientsPerSlot - booked.
func (s *AvailabilitySlot) RemainingCapacity(booked int) int {
	return s.MaxPatientsPerSlot - booked
}
