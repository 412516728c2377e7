package usecase

import (
	"errors"
	"testing"

	"medimitra-backend/pkg/schedule"
)

func TestParseWindow(t *testing.T) {
	start, end, err := parseWindow("09:00", "12:30")
	if err != nil {
		t.Fatalf("parseWindow() error = %v", err)
	}
	if start != 540 || end != 750 {
		t.Errorf("parseWindow() = %d, %d, want 540, 750", start, end)
	}

	if _, _, err := parseWindow("12:00", "12:00"); !errors.Is(err, ErrInvalidTimeWindow) {
		t.Errorf("parseWindow() zero-length error = %v, want ErrInvalidTimeWindow", err)
	}
	if _, _, err := parseWindow("14:00", "09:00"); !errors.Is(err, ErrInvalidTimeWindow) {
		t.Errorf("parseWindow() inverted error = %v, want ErrInvalidTimeWindow", err)
	}
	if _, _, err := parseWindow("9am", "12:00"); !errors.Is(err, schedule.ErrInvalidTimeFormat) {
		t.Errorf("parseWindow() malformed error = %v, want ErrInvalidTimeFormat", err)
	}
}
