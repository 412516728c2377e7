package entity

import (
	"testing"
	"time"
)

func TestSlotOverlapsWindow(t *testing.T) {
	slot := AvailabilitySlot{StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"contained window", "10:00", "11:00", true},
		{"partial overlap", "11:00", "13:00", true},
		{"touching end does not overlap", "12:00", "14:00", false},
		{"touching start does not overlap", "08:00", "09:00", false},
		{"disjoint", "14:00", "16:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := parseMinutes(t, tt.start)
			if err != nil {
				t.Fatal(err)
			}
			end, err := parseMinutes(t, tt.end)
			if err != nil {
				t.Fatal(err)
			}
			got, err := slot.OverlapsWindow(start, end)
			if err != nil {
				t.Fatalf("OverlapsWindow() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("OverlapsWindow(%s-%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func parseMinutes(t *testing.T, clock string) (int, error) {
	t.Helper()
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func TestRemainingCapacityConservation(t *testing.T) {
	slot := AvailabilitySlot{MaxPatientsPerSlot: 4}

	// remaining + booked must always equal the slot capacity
	for booked := 0; booked <= 4; booked++ {
		if got := slot.RemainingCapacity(booked); got+booked != slot.MaxPatientsPerSlot {
			t.Errorf("RemainingCapacity(%d) = %d, breaks capacity conservation", booked, got)
		}
	}
}

func TestDayOfWeekFromDate(t *testing.T) {
	// 2024-12-30 is a Monday
	if got := DayOfWeekFromDate(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)); got != DayMonday {
		t.Errorf("DayOfWeekFromDate() = %s, want monday", got)
	}
	// 2025-01-05 is a Sunday
	if got := DayOfWeekFromDate(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)); got != DaySunday {
		t.Errorf("DayOfWeekFromDate() = %s, want sunday", got)
	}
}

func TestValidDayOfWeek(t *testing.T) {
	if !ValidDayOfWeek("wednesday") {
		t.Error("wednesday should be valid")
	}
	if ValidDayOfWeek("Wednesday") || ValidDayOfWeek("someday") {
		t.Error("unrecognized weekday names must be rejected")
	}
}
