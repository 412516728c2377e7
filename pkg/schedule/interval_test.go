package schedule

import (
	"errors"
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 12, 30, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical intervals", ts(9, 0), ts(9, 30), ts(9, 0), ts(9, 30), true},
		{"partial overlap", ts(9, 0), ts(9, 30), ts(9, 15), ts(9, 45), true},
		{"b contains a", ts(9, 15), ts(9, 30), ts(9, 0), ts(10, 0), true},
		{"a contains b", ts(9, 0), ts(10, 0), ts(9, 15), ts(9, 30), true},
		{"touching endpoints do not overlap", ts(9, 0), ts(9, 30), ts(9, 30), ts(10, 0), false},
		{"disjoint", ts(9, 0), ts(9, 30), ts(11, 0), ts(11, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinuteRangesOverlap(t *testing.T) {
	// 09:00-12:00 vs 12:00-15:00: touching, no overlap
	if MinuteRangesOverlap(540, 720, 720, 900) {
		t.Error("touching minute ranges should not overlap")
	}
	// 09:00-12:00 vs 11:00-13:00
	if !MinuteRangesOverlap(540, 720, 660, 780) {
		t.Error("intersecting minute ranges should overlap")
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  time.Time
	}{
		{"12-hour with AM", "2024-12-30", "9:00 AM", ts(9, 0)},
		{"12-hour with PM", "2024-12-30", "2:30 PM", ts(14, 30)},
		{"24-hour", "2024-12-30", "09:00", ts(9, 0)},
		{"iso with seconds", "2024-12-30", "09:00:00", ts(9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.date, tt.clock)
			if err != nil {
				t.Fatalf("ParseDateTime() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDateTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDateTimeInvalid(t *testing.T) {
	for _, clock := range []string{"25:00", "9am", "half past nine", ""} {
		if _, err := ParseDateTime("2024-12-30", clock); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseDateTime(%q) error = %v, want ErrInvalidTimeFormat", clock, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"24-hour", "2024-12-30T09:00", ts(9, 0)},
		{"with seconds", "2024-12-30T09:00:00", ts(9, 0)},
		{"12-hour", "2024-12-30T9:00 AM", ts(9, 0)},
		{"rfc3339", "2024-12-30T09:00:00Z", ts(9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseTimestamp("next tuesday"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("ParseTimestamp() error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestParseClockMinutes(t *testing.T) {
	got, err := ParseClockMinutes("14:30")
	if err != nil {
		t.Fatalf("ParseClockMinutes() error = %v", err)
	}
	if got != 870 {
		t.Errorf("ParseClockMinutes() = %d, want 870", got)
	}

	if _, err := ParseClockMinutes("2:30 PM"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("ParseClockMinutes() error = %v, want ErrInvalidTimeFormat", err)
	}
}
