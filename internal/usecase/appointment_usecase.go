package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotUnavailable         = errors.New("requested time conflicts with an existing appointment")
	ErrInvalidStatusTransition = errors.New("appointment status transition not permitted")
	ErrInvalidAppointmentType  = errors.New("invalid appointment type")
)

const defaultAppointmentMinutes = 30

// Fallback grid used when a doctor has no availability slots defined for the
// requested day: hourly times from 09:00 up to (not including) 17:00.
const (
	fallbackGridStartHour = 9
	fallbackGridEndHour   = 17
	fallbackGridStepMin   = 60
)

type AppointmentUsecase interface {
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetUpcomingAppointments(ctx context.Context, userID uuid.UUID, role string) (*dto.AppointmentListResponse, error)
	ListAvailableTimes(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableTimesResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	locker          service.ResourceLocker
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	slotRepo        repository.AvailabilitySlotRepository
	auditService    service.AuditService
	messageService  service.MessageService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locker service.ResourceLocker,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotRepo repository.AvailabilitySlotRepository,
	auditService service.AuditService,
	messageService service.MessageService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		locker:          locker,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		slotRepo:        slotRepo,
		auditService:    auditService,
		messageService:  messageService,
	}
}

// BookAppointment validates and persists a new appointment.
//
// Flow:
// 1. Parse the requested date+time (12-hour, 24-hour, then ISO format)
// 2. Acquire the per-doctor lock, then open a transaction
// 3. Lock the doctor row (SELECT ... FOR UPDATE) so the conflict check and
//    insert serialize against concurrent bookings for the same doctor
// 4. Reject on interval overlap with any scheduled appointment
// 5. If bound to an availability slot, reject when its capacity is exhausted
// 6. Insert with the doctor's current consultation fee snapshotted
// 7. After commit: best-effort welcome message into the doctor-patient channel
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	startTime, err := schedule.ParseDateTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultAppointmentMinutes
	}

	apptType := entity.AppointmentType(req.Type)
	if !entity.ValidAppointmentType(apptType) {
		return nil, ErrInvalidAppointmentType
	}

	appointment := &entity.Appointment{
		PatientID:          req.PatientID,
		DoctorID:           req.DoctorID,
		AvailabilitySlotID: req.AvailabilitySlotID,
		DateTime:           startTime,
		DurationMinutes:    duration,
		Type:               apptType,
		Status:             entity.AppointmentStatusScheduled,
		Symptoms:           req.Symptoms,
		Notes:              req.Notes,
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

			existing, err := u.appointmentRepo.FindScheduledByDoctor(tx, req.DoctorID)
			if err != nil {
				return err
			}
			if conflict := entity.FindConflict(existing, startTime, duration, nil); conflict != nil {
				u.log.Infof("Booking rejected for doctor %s: conflicts with appointment %s at %s",
					req.DoctorID, conflict.ID, conflict.DateTime.Format(time.RFC3339))
				return ErrSlotUnavailable
			}

			if req.AvailabilitySlotID != nil {
				if err := u.checkSlotCapacity(tx, *req.AvailabilitySlotID, startTime); err != nil {
					return err
				}
			}

			appointment.Fee = doctor.ConsultationFee

			if err := u.appointmentRepo.Create(tx, appointment); err != nil {
				return err
			}

			return u.auditService.LogAllocation(tx, &req.PatientID, entity.AuditActionAppointmentBook,
				"appointment", appointment.ID.String(), entity.JSON{
					"doctor_id": req.DoctorID.String(),
					"date_time": startTime.Format(time.RFC3339),
					"duration":  duration,
				})
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// The unique index caught what the overlap check could not see.
			return nil, ErrSlotUnavailable
		}
		if isExpectedBookingError(err) {
			return nil, err
		}
		u.log.Warnf("Failed to book appointment for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	// Best-effort side effect; a failure here never rolls back the booking.
	msgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.messageService.SendWelcomeMessage(msgCtx, req.DoctorID, req.PatientID, appointment.ID)

	u.log.Infof("Appointment booked: id=%s, doctor=%s, patient=%s, start=%s",
		appointment.ID, req.DoctorID, req.PatientID, startTime.Format(time.RFC3339))

	return converter.AppointmentToResponse(appointment), nil
}

// checkSlotCapacity enforces the per-occurrence capacity of an availability
// slot: remaining = maxPatientsPerSlot - count(scheduled/completed bound to the
// slot on that date).
func (u *appointmentUsecase) checkSlotCapacity(tx *gorm.DB, slotID uuid.UUID, startTime time.Time) error {
	slot, err := u.slotRepo.FindByID(tx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if !slot.IsAvailable {
		return ErrSlotUnavailable
	}

	dayStart, dayEnd := dayBounds(startTime)
	booked, err := u.appointmentRepo.CountBySlotAndDate(tx, slotID, dayStart, dayEnd,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted})
	if err != nil {
		return err
	}
	if slot.RemainingCapacity(int(booked)) <= 0 {
		return ErrSlotUnavailable
	}

	return nil
}

// UpdateStatus applies a lifecycle transition. Only scheduled appointments may
// move, to completed, cancelled or no-show.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	newStatus := entity.AppointmentStatus(req.Status)

	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		appointment, err = u.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if !appointment.CanTransitionTo(newStatus) {
			return ErrInvalidStatusTransition
		}

		previous := appointment.Status
		appointment.Status = newStatus
		if req.Notes != "" {
			appointment.Notes = req.Notes
		}

		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogAllocation(tx, nil, entity.AuditActionAppointmentStatus,
			"appointment", appointment.ID.String(), entity.JSON{
				"from": string(previous),
				"to":   string(newStatus),
			})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidStatusTransition) {
			return nil, err
		}
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}

	if newStatus == entity.AppointmentStatusCompleted {
		msgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		u.messageService.SendFollowUpMessage(msgCtx, appointment.DoctorID, appointment.PatientID, appointment.ID)
	}

	u.log.Infof("Appointment %s status updated to %s", appointmentID, newStatus)
	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment is the explicit cancellation endpoint; it goes through the
// same transition check as any other status change.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.UpdateStatus(ctx, appointmentID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCancelled),
	})
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetUpcomingAppointments(ctx context.Context, userID uuid.UUID, role string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindUpcoming(u.db.WithContext(ctx), userID, role, time.Now())
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for %s %s: %+v", role, userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListAvailableTimes derives the bookable start times for a doctor on a
// concrete date. Each availability slot for that weekday is cut into
// slot-duration steps; a step is offered when the slot still has per-occurrence
// capacity and the step does not overlap any scheduled appointment. Doctors
// with no slots defined for the day fall back to an hourly 09:00-17:00 grid.
func (u *appointmentUsecase) ListAvailableTimes(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableTimesResponse, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dayOfWeek := entity.DayOfWeekFromDate(day)
	dayStart, dayEnd := dayBounds(day)

	booked, err := u.appointmentRepo.FindScheduledByDoctorAndDay(db, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots, err := u.slotRepo.FindAvailableByDoctorAndDay(db, doctorID, dayOfWeek)
	if err != nil {
		return nil, err
	}

	var times []string
	if len(slots) == 0 {
		times = u.fallbackGridTimes(day, booked)
	} else {
		for i := range slots {
			slotTimes, err := u.slotOpenTimes(db, &slots[i], day, dayStart, dayEnd, booked)
			if err != nil {
				return nil, err
			}
			times = append(times, slotTimes...)
		}
	}
	if times == nil {
		times = []string{}
	}

	return &dto.AvailableTimesResponse{
		DoctorID:  doctorID,
		Date:      date,
		DayOfWeek: string(dayOfWeek),
		Times:     times,
	}, nil
}

func (u *appointmentUsecase) slotOpenTimes(db *gorm.DB, slot *entity.AvailabilitySlot, day time.Time, dayStart, dayEnd time.Time, booked []entity.Appointment) ([]string, error) {
	startMin, endMin, err := slot.MinuteRange()
	if err != nil {
		u.log.Warnf("Skipping slot %s with malformed time window: %+v", slot.ID, err)
		return nil, nil
	}

	bookedCount, err := u.appointmentRepo.CountBySlotAndDate(db, slot.ID, dayStart, dayEnd,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted})
	if err != nil {
		return nil, err
	}
	if slot.RemainingCapacity(int(bookedCount)) <= 0 {
		return nil, nil
	}

	step := slot.SlotDurationMinutes
	if step <= 0 {
		step = defaultAppointmentMinutes
	}

	var times []string
	for minute := startMin; minute+step <= endMin; minute += step {
		start := day.Add(time.Duration(minute) * time.Minute)
		if entity.FindConflict(booked, start, step, nil) == nil {
			times = append(times, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
		}
	}
	return times, nil
}

func (u *appointmentUsecase) fallbackGridTimes(day time.Time, booked []entity.Appointment) []string {
	var times []string
	for hour := fallbackGridStartHour; hour < fallbackGridEndHour; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		if entity.FindConflict(booked, start, fallbackGridStepMin, nil) == nil {
			times = append(times, fmt.Sprintf("%02d:00", hour))
		}
	}
	return times
}

// dayBounds returns the half-open [midnight, next midnight) window containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}

func isExpectedBookingError(err error) bool {
	return errors.Is(err, ErrDoctorNotFound) ||
		errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, service.ErrLockNotAcquired)
}
