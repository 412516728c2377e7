package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBedReserveOnlyFromAvailable(t *testing.T) {
	patient1 := uuid.New()
	patient2 := uuid.New()
	start := time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	bed := ICUBed{Status: BedStatusAvailable}
	if err := bed.Reserve(patient1, start, end); err != nil {
		t.Fatalf("Reserve() from available error = %v", err)
	}
	if bed.Status != BedStatusReserved {
		t.Errorf("Status = %s, want reserved", bed.Status)
	}
	if bed.AssignedPatientID == nil || *bed.AssignedPatientID != patient1 {
		t.Errorf("AssignedPatientID = %v, want %v", bed.AssignedPatientID, patient1)
	}

	// A second reservation cannot overwrite the active window.
	if err := bed.Reserve(patient2, start, end); !errors.Is(err, ErrBedInvalidTransition) {
		t.Errorf("Reserve() from reserved error = %v, want ErrBedInvalidTransition", err)
	}
	if *bed.AssignedPatientID != patient1 {
		t.Error("rejected reservation must not mutate the bed")
	}
}

func TestBedReserveRejectsInvertedWindow(t *testing.T) {
	bed := ICUBed{Status: BedStatusAvailable}
	start := time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC)
	if err := bed.Reserve(uuid.New(), start, start.Add(-time.Hour)); !errors.Is(err, ErrBedReservationWindow) {
		t.Errorf("Reserve() error = %v, want ErrBedReservationWindow", err)
	}
}

func TestBedOccupyFromReservedByAnotherPatient(t *testing.T) {
	patient1 := uuid.New()
	patient2 := uuid.New()
	start := time.Date(2024, 12, 30, 8, 0, 0, 0, time.UTC)

	bed := ICUBed{Status: BedStatusAvailable}
	if err := bed.Reserve(patient1, start, start.Add(24*time.Hour)); err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}

	// Occupancy from reserved succeeds even for a different patient; the
	// incoming patient takes the bed.
	if err := bed.Occupy(patient2); err != nil {
		t.Fatalf("Occupy() from reserved error = %v", err)
	}
	if *bed.AssignedPatientID != patient2 {
		t.Errorf("AssignedPatientID = %v, want %v", bed.AssignedPatientID, patient2)
	}
}

func TestBedOccupyWalkIn(t *testing.T) {
	bed := ICUBed{Status: BedStatusAvailable}
	if err := bed.Occupy(uuid.New()); err != nil {
		t.Fatalf("Occupy() walk-in error = %v", err)
	}
	if bed.Status != BedStatusOccupied {
		t.Errorf("Status = %s, want occupied", bed.Status)
	}
}

func TestBedOccupyRejectedFromOccupiedAndMaintenance(t *testing.T) {
	for _, status := range []BedStatus{BedStatusOccupied, BedStatusMaintenance} {
		bed := ICUBed{Status: status}
		if err := bed.Occupy(uuid.New()); !errors.Is(err, ErrBedInvalidTransition) {
			t.Errorf("Occupy() from %s error = %v, want ErrBedInvalidTransition", status, err)
		}
	}
}

func TestBedReleaseIsIdempotent(t *testing.T) {
	patient := uuid.New()
	bed := ICUBed{Status: BedStatusOccupied, AssignedPatientID: &patient}

	bed.Release()
	if bed.Status != BedStatusAvailable || bed.AssignedPatientID != nil {
		t.Fatalf("Release() left bed in %s with patient %v", bed.Status, bed.AssignedPatientID)
	}

	// Releasing an already-available bed is a no-op returning the same state.
	before := bed
	bed.Release()
	if bed != before {
		t.Error("Release() on available bed must be a no-op")
	}
}

func TestBedMaintenanceOnlyFromAvailable(t *testing.T) {
	bed := ICUBed{Status: BedStatusAvailable}
	if err := bed.SetMaintenance(); err != nil {
		t.Fatalf("SetMaintenance() from available error = %v", err)
	}

	occupied := ICUBed{Status: BedStatusOccupied}
	if err := occupied.SetMaintenance(); !errors.Is(err, ErrBedInvalidTransition) {
		t.Errorf("SetMaintenance() from occupied error = %v, want ErrBedInvalidTransition", err)
	}
}
