package usecase

import (
	"testing"
	"time"

	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 12, 30, 14, 45, 12, 0, time.UTC)
	start, end := dayBounds(at)

	if !start.Equal(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dayBounds() start = %v", start)
	}
	if !end.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dayBounds() end = %v", end)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("dayBounds() window = %v, want 24h", end.Sub(start))
	}
}

func TestFallbackGridTimes(t *testing.T) {
	u := &appointmentUsecase{}
	day := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)

	t.Run("empty day offers full grid", func(t *testing.T) {
		times := u.fallbackGridTimes(day, nil)
		if len(times) != 8 {
			t.Fatalf("fallbackGridTimes() returned %d times, want 8", len(times))
		}
		if times[0] != "09:00" || times[len(times)-1] != "16:00" {
			t.Errorf("fallbackGridTimes() range = %s..%s, want 09:00..16:00", times[0], times[len(times)-1])
		}
	})

	t.Run("booked hour is excluded", func(t *testing.T) {
		booked := []entity.Appointment{{
			ID:              uuid.New(),
			DateTime:        day.Add(10 * time.Hour),
			DurationMinutes: 30,
			Status:          entity.AppointmentStatusScheduled,
		}}

		times := u.fallbackGridTimes(day, booked)
		for _, tm := range times {
			if tm == "10:00" {
				t.Error("fallbackGridTimes() offered a booked hour")
			}
		}
		if len(times) != 7 {
			t.Errorf("fallbackGridTimes() returned %d times, want 7", len(times))
		}
	})

	t.Run("cancelled appointment does not block", func(t *testing.T) {
		booked := []entity.Appointment{{
			ID:              uuid.New(),
			DateTime:        day.Add(10 * time.Hour),
			DurationMinutes: 30,
			Status:          entity.AppointmentStatusCancelled,
		}}

		times := u.fallbackGridTimes(day, booked)
		if len(times) != 8 {
			t.Errorf("fallbackGridTimes() returned %d times, want 8", len(times))
		}
	})
}
