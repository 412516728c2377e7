package usecase

import (
	"context"
	"errors"
	"time"

	"medimitra-backend/internal/converter"
	"medimitra-backend/internal/delivery/dto"
	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/domain/repository"
	"medimitra-backend/internal/service"
	"medimitra-backend/pkg/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound      = errors.New("availability slot not found")
	ErrSlotOverlap       = errors.New("slot overlaps an existing slot for this doctor and day")
	ErrSlotInUse         = errors.New("slot has future scheduled appointments")
	ErrInvalidDayOfWeek  = errors.New("invalid day of week")
	ErrInvalidTimeWindow = errors.New("slot start time must be before end time")
)

const (
	defaultSlotDurationMinutes = 30
	defaultMaxPatientsPerSlot  = 1
)

type AvailabilitySlotUsecase interface {
	AddSlot(ctx context.Context, req *dto.CreateAvailabilitySlotRequest) (*dto.AvailabilitySlotResponse, error)
	UpdateSlot(ctx context.Context, slotID uuid.UUID, req *dto.UpdateAvailabilitySlotRequest) (*dto.AvailabilitySlotResponse, error)
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error
	GetDoctorSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilitySlotListResponse, error)
	ListOpenSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.OpenSlotListResponse, error)
}

type availabilitySlotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	locker          service.ResourceLocker
	slotRepo        repository.AvailabilitySlotRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAvailabilitySlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locker service.ResourceLocker,
	slotRepo repository.AvailabilitySlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AvailabilitySlotUsecase {
	return &availabilitySlotUsecase{
		db:              db,
		log:             log,
		locker:          locker,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// AddSlot creates a recurring weekly window for a doctor. The overlap check
// and insert run under the doctor lock so two concurrent additions cannot both
// pass the check.
func (u *availabilitySlotUsecase) AddSlot(ctx context.Context, req *dto.CreateAvailabilitySlotRequest) (*dto.AvailabilitySlotResponse, error) {
	day := entity.DayOfWeek(req.DayOfWeek)
	if !entity.ValidDayOfWeek(day) {
		return nil, ErrInvalidDayOfWeek
	}

	startMin, endMin, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slot := &entity.AvailabilitySlot{
		DoctorID:            req.DoctorID,
		DayOfWeek:           day,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxPatientsPerSlot:  req.MaxPatientsPerSlot,
		IsAvailable:         true,
	}
	if slot.SlotDurationMinutes <= 0 {
		slot.SlotDurationMinutes = defaultSlotDurationMinutes
	}
	if slot.MaxPatientsPerSlot <= 0 {
		slot.MaxPatientsPerSlot = defaultMaxPatientsPerSlot
	}

	err = u.locker.WithLock(ctx, "doctor", req.DoctorID, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			doctor, err := u.doctorRepo.FindByIDForUpdate(tx, req.DoctorID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return ErrDoctorNotFound
			}

			if err := u.checkOverlap(tx, req.DoctorID, day, startMin, endMin, nil); err != nil {
				return err
			}

			if err := u.slotRepo.Create(tx, slot); err != nil {
				return err
			}

			return u.auditService.LogAllocation(tx, nil, entity.AuditActionSlotCreate,
				"availability_slot", slot.ID.String(), entity.JSON{
					"doctor_id":   req.DoctorID.String(),
					"day_of_week": string(day),
					"window":      req.StartTime + "-" + req.EndTime,
				})
		})
	})
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) || errors.Is(err, ErrSlotOverlap) || errors.Is(err, service.ErrLockNotAcquired) {
			return nil, err
		}
		u.log.Warnf("Failed to add slot for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	u.log.Infof("Availability slot created: id=%s, doctor=%s, %s %s-%s",
		slot.ID, req.DoctorID, day, req.StartTime, req.EndTime)
	return converter.AvailabilitySlotToResponse(slot), nil
}

// UpdateSlot edits a slot's window, duration, capacity or availability flag.
// A changed window is re-checked for overlap against the doctor's other slots
// on the same day.
func (u *availabilitySlotUsecase) UpdateSlot(ctx context.Context, slotID uuid.UUID, req *dto.UpdateAvailabilitySlotRequest) (*dto.AvailabilitySlotResponse, error) {
	var slot *entity.AvailabilitySlot
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		slot, err = u.slotRepo.FindByID(tx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		windowChanged := false
		if req.StartTime != "" && req.StartTime != slot.StartTime {
			slot.StartTime = req.StartTime
			windowChanged = true
		}
		if req.EndTime != "" && req.EndTime != slot.EndTime {
			slot.EndTime = req.EndTime
			windowChanged = true
		}
		if req.SlotDurationMinutes > 0 {
			slot.SlotDurationMinutes = req.SlotDurationMinutes
		}
		if req.MaxPatientsPerSlot > 0 {
			slot.MaxPatientsPerSlot = req.MaxPatientsPerSlot
		}
		if req.IsAvailable != nil {
			slot.IsAvailable = *req.IsAvailable
		}

		if windowChanged {
			startMin, endMin, err := parseWindow(slot.StartTime, slot.EndTime)
			if err != nil {
				return err
			}
			if err := u.checkOverlap(tx, slot.DoctorID, slot.DayOfWeek, startMin, endMin, &slot.ID); err != nil {
				return err
			}
		}

		if err := u.slotRepo.Save(tx, slot); err != nil {
			return err
		}

		return u.auditService.LogAllocation(tx, nil, entity.AuditActionSlotUpdate,
			"availability_slot", slot.ID.String(), entity.JSON{
				"window": slot.StartTime + "-" + slot.EndTime,
			})
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotOverlap) ||
			errors.Is(err, ErrInvalidTimeWindow) || errors.Is(err, schedule.ErrInvalidTimeFormat) {
			return nil, err
		}
		u.log.Warnf("Failed to update slot %s: %+v", slotID, err)
		return nil, err
	}

	return converter.AvailabilitySlotToResponse(slot), nil
}

// DeleteSlot removes a slot unless future scheduled appointments still
// reference it. Cancelled and completed appointments do not block deletion.
func (u *availabilitySlotUsecase) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot, err := u.slotRepo.FindByID(tx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		inUse, err := u.appointmentRepo.CountFutureScheduledBySlot(tx, slotID, time.Now())
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrSlotInUse
		}

		if err := u.slotRepo.Delete(tx, slotID); err != nil {
			return err
		}

		return u.auditService.LogAllocation(tx, nil, entity.AuditActionSlotDelete,
			"availability_slot", slotID.String(), entity.JSON{
				"doctor_id": slot.DoctorID.String(),
			})
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrSlotInUse) {
			return err
		}
		u.log.Warnf("Failed to delete slot %s: %+v", slotID, err)
		return err
	}

	u.log.Infof("Availability slot deleted: id=%s", slotID)
	return nil
}

// GetDoctorSlots lists a doctor's recurring slots with the number of future
// scheduled appointments bound to each one.
func (u *availabilitySlotUsecase) GetDoctorSlots(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilitySlotListResponse, error) {
	db := u.db.WithContext(ctx)

	slots, err := u.slotRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	responses := converter.AvailabilitySlotsToResponses(slots)
	now := time.Now()
	for i := range slots {
		upcoming, err := u.appointmentRepo.CountFutureScheduledBySlot(db, slots[i].ID, now)
		if err != nil {
			return nil, err
		}
		responses[i].UpcomingCount = int(upcoming)
	}

	return &dto.AvailabilitySlotListResponse{
		Slots: responses,
		Total: len(slots),
	}, nil
}

// ListOpenSlots returns the doctor's slots for the weekday of date that still
// have remaining capacity once booked appointments are subtracted.
func (u *availabilitySlotUsecase) ListOpenSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.OpenSlotListResponse, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	dayOfWeek := entity.DayOfWeekFromDate(day)
	dayStart, dayEnd := dayBounds(day)

	slots, err := u.slotRepo.FindAvailableByDoctorAndDay(db, doctorID, dayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to find open slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	open := []dto.OpenSlotResponse{}
	for i := range slots {
		slot := &slots[i]
		booked, err := u.appointmentRepo.CountBySlotAndDate(db, slot.ID, dayStart, dayEnd,
			[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted})
		if err != nil {
			return nil, err
		}
		if slot.RemainingCapacity(int(booked)) <= 0 {
			continue
		}
		open = append(open, *converter.AvailabilitySlotToOpenSlot(slot, date, int(booked)))
	}

	return &dto.OpenSlotListResponse{
		Slots: open,
		Total: len(open),
	}, nil
}

// checkOverlap rejects a window intersecting any other slot for the same
// doctor and weekday. Half-open semantics: back-to-back windows are legal.
func (u *availabilitySlotUsecase) checkOverlap(tx *gorm.DB, doctorID uuid.UUID, day entity.DayOfWeek, startMin, endMin int, excludeID *uuid.UUID) error {
	existing, err := u.slotRepo.FindByDoctorAndDay(tx, doctorID, day)
	if err != nil {
		return err
	}

	for i := range existing {
		other := &existing[i]
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		overlaps, err := other.OverlapsWindow(startMin, endMin)
		if err != nil {
			u.log.Warnf("Skipping slot %s with malformed time window: %+v", other.ID, err)
			continue
		}
		if overlaps {
			return ErrSlotOverlap
		}
	}
	return nil
}

func parseWindow(startTime, endTime string) (int, int, error) {
	startMin, err := schedule.ParseClockMinutes(startTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := schedule.ParseClockMinutes(endTime)
	if err != nil {
		return 0, 0, err
	}
	if startMin >= endMin {
		return 0, 0, ErrInvalidTimeWindow
	}
	return startMin, endMin, nil
}
