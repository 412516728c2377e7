package entity

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		priority      Priority
		emergencyType string
		want          string
	}{
		{PriorityCritical, "cardiac", "1300.00"},
		{PriorityCritical, "stroke", "1300.00"},
		{PriorityHigh, "trauma", "900.00"},
		{PriorityMedium, "other", "600.00"},
		{PriorityLow, "other", "500.00"},
		{PriorityLow, "cardiac", "650.00"},
	}

	for _, tt := range tests {
		got := EstimateCost(tt.priority, tt.emergencyType)
		if got.StringFixed(2) != tt.want {
			t.Errorf("EstimateCost(%s, %s) = %s, want %s", tt.priority, tt.emergencyType, got, tt.want)
		}
	}
}

func TestEstimateArrivalMinutes(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityCritical, 5},
		{PriorityHigh, 8},
		{PriorityMedium, 12},
		{PriorityLow, 15},
		{Priority("unknown"), 10},
	}

	for _, tt := range tests {
		if got := EstimateArrivalMinutes(tt.priority); got != tt.want {
			t.Errorf("EstimateArrivalMinutes(%s) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	bookings := []AmbulanceBooking{
		{Priority: PriorityLow},
		{Priority: PriorityCritical},
		{Priority: PriorityMedium},
		{Priority: PriorityHigh},
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].PriorityRank() < bookings[j].PriorityRank()
	})

	want := []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
	for i, b := range bookings {
		if b.Priority != want[i] {
			t.Fatalf("position %d = %s, want %s", i, b.Priority, want[i])
		}
	}
}

func TestAmbulanceLifecycleStrictForward(t *testing.T) {
	now := time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC)
	b := AmbulanceBooking{Status: AmbulanceStatusRequested, EstimatedCost: decimal.NewFromInt(600)}

	// Skipping dispatched is rejected.
	if err := b.MarkEnRoute(); !errors.Is(err, ErrAmbulanceInvalidTransition) {
		t.Errorf("MarkEnRoute() from requested error = %v, want ErrAmbulanceInvalidTransition", err)
	}

	if err := b.Dispatch("AMB-12", "DRV-7", 6, now); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if b.DispatchTime == nil || b.AmbulanceID == nil || *b.AmbulanceID != "AMB-12" {
		t.Fatal("Dispatch() must set dispatch time and assignment")
	}

	// Double dispatch is rejected.
	if err := b.Dispatch("AMB-13", "DRV-8", 6, now); !errors.Is(err, ErrAmbulanceInvalidTransition) {
		t.Errorf("second Dispatch() error = %v, want ErrAmbulanceInvalidTransition", err)
	}

	// Arriving before en_route is rejected.
	if err := b.MarkArrived(now); !errors.Is(err, ErrAmbulanceInvalidTransition) {
		t.Errorf("MarkArrived() from dispatched error = %v, want ErrAmbulanceInvalidTransition", err)
	}

	if err := b.MarkEnRoute(); err != nil {
		t.Fatalf("MarkEnRoute() error = %v", err)
	}
	if err := b.MarkArrived(now); err != nil {
		t.Fatalf("MarkArrived() error = %v", err)
	}
	if err := b.Complete(decimal.NewFromInt(650), now); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !b.FinalCost.Valid || !b.FinalCost.Decimal.Equal(decimal.NewFromInt(650)) {
		t.Errorf("FinalCost = %v, want 650", b.FinalCost)
	}
}

func TestAmbulanceCancelFromNonTerminalOnly(t *testing.T) {
	for _, status := range []AmbulanceStatus{
		AmbulanceStatusRequested,
		AmbulanceStatusDispatched,
		AmbulanceStatusEnRoute,
		AmbulanceStatusArrived,
	} {
		b := AmbulanceBooking{Status: status}
		if err := b.Cancel("patient recovered"); err != nil {
			t.Errorf("Cancel() from %s error = %v", status, err)
		}
		if b.CancellationReason != "patient recovered" {
			t.Errorf("CancellationReason not recorded from %s", status)
		}
	}

	for _, status := range []AmbulanceStatus{AmbulanceStatusCompleted, AmbulanceStatusCancelled} {
		b := AmbulanceBooking{Status: status}
		if err := b.Cancel("too late"); !errors.Is(err, ErrAmbulanceInvalidTransition) {
			t.Errorf("Cancel() from %s error = %v, want ErrAmbulanceInvalidTransition", status, err)
		}
	}
}
