package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func apptAt(doctorID uuid.UUID, hour, min, duration int, status AppointmentStatus) Appointment {
	return Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		PatientID:       uuid.New(),
		DateTime:        time.Date(2024, 12, 30, hour, min, 0, 0, time.UTC),
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFindConflict(t *testing.T) {
	doctorID := uuid.New()
	existing := []Appointment{
		apptAt(doctorID, 9, 0, 30, AppointmentStatusScheduled),
		apptAt(doctorID, 11, 0, 30, AppointmentStatusCancelled),
	}

	tests := []struct {
		name         string
		hour, min    int
		duration     int
		wantConflict bool
	}{
		{"overlapping window rejected", 9, 15, 30, true},
		{"identical window rejected", 9, 0, 30, true},
		{"touching endpoint allowed", 9, 30, 30, false},
		{"ending exactly at start allowed", 8, 30, 30, false},
		{"cancelled appointments ignored", 11, 0, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2024, 12, 30, tt.hour, tt.min, 0, 0, time.UTC)
			got := FindConflict(existing, start, tt.duration, nil)
			if (got != nil) != tt.wantConflict {
				t.Errorf("FindConflict() = %v, wantConflict %v", got, tt.wantConflict)
			}
		})
	}
}

func TestFindConflictExcludesRescheduledAppointment(t *testing.T) {
	doctorID := uuid.New()
	existing := []Appointment{apptAt(doctorID, 9, 0, 30, AppointmentStatusScheduled)}
	excludeID := existing[0].ID

	start := time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC)
	if got := FindConflict(existing, start, 30, &excludeID); got != nil {
		t.Errorf("FindConflict() with exclusion = %v, want nil", got)
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, false},
		{AppointmentStatusNoShow, AppointmentStatusCancelled, false},
		{AppointmentStatusScheduled, AppointmentStatusScheduled, false},
	}

	for _, tt := range tests {
		appt := Appointment{Status: tt.from}
		if got := appt.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAppointmentEndTime(t *testing.T) {
	appt := apptAt(uuid.New(), 9, 0, 45, AppointmentStatusScheduled)
	want := time.Date(2024, 12, 30, 9, 45, 0, 0, time.UTC)
	if !appt.EndTime().Equal(want) {
		t.Errorf("EndTime() = %v, want %v", appt.EndTime(), want)
	}
}
