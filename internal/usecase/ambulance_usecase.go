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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAmbulanceBookingNotFound = errors.New("ambulance booking not found")
	ErrInvalidPriority          = errors.New("invalid priority")
)

type AmbulanceUsecase interface {
	RequestBooking(ctx context.Context, req *dto.RequestAmbulanceRequest) (*dto.AmbulanceBookingResponse, error)
	Dispatch(ctx context.Context, bookingID uuid.UUID, req *dto.DispatchAmbulanceRequest) (*dto.AmbulanceBookingResponse, error)
	MarkEnRoute(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error)
	MarkArrived(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error)
	Complete(ctx context.Context, bookingID uuid.UUID, req *dto.CompleteAmbulanceRequest) (*dto.AmbulanceBookingResponse, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, req *dto.CancelAmbulanceRequest) (*dto.AmbulanceBookingResponse, error)
	ListActive(ctx context.Context) (*dto.AmbulanceBookingListResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error)
	GetPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.AmbulanceBookingListResponse, error)
	GetStats(ctx context.Context) (*service.AmbulanceStats, error)
}

type ambulanceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locker       service.ResourceLocker
	bookingRepo  repository.AmbulanceBookingRepository
	auditService service.AuditService
	statsService *service.StatsService
}

func NewAmbulanceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locker service.ResourceLocker,
	bookingRepo repository.AmbulanceBookingRepository,
	auditService service.AuditService,
	statsService *service.StatsService,
) AmbulanceUsecase {
	return &ambulanceUsecase{
		db:           db,
		log:          log,
		locker:       locker,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		statsService: statsService,
	}
}

// RequestBooking performs emergency transport intake: the cost estimate
// composes the base charge with the priority and emergency-type multipliers,
// and the ETA comes from the static per-priority table.
func (u *ambulanceUsecase) RequestBooking(ctx context.Context, req *dto.RequestAmbulanceRequest) (*dto.AmbulanceBookingResponse, error) {
	priority := entity.Priority(req.Priority)
	if !entity.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	booking := &entity.AmbulanceBooking{
		PatientID:               req.PatientID,
		EmergencyType:           req.EmergencyType,
		Priority:                priority,
		PickupAddress:           req.PickupAddress,
		Destination:             req.Destination,
		ContactPhone:            req.ContactPhone,
		Symptoms:                req.Symptoms,
		AdditionalInfo:          req.AdditionalInfo,
		Status:                  entity.AmbulanceStatusRequested,
		EstimatedCost:           entity.EstimateCost(priority, req.EmergencyType),
		EstimatedArrivalMinutes: entity.EstimateArrivalMinutes(priority),
		RequestTime:             time.Now(),
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Create(tx, booking); err != nil {
			return err
		}

		return u.auditService.LogAllocation(tx, &req.PatientID, entity.AuditActionAmbulanceRequest,
			"ambulance_booking", booking.ID.String(), entity.JSON{
				"priority":       string(priority),
				"emergency_type": req.EmergencyType,
				"estimated_cost": booking.EstimatedCost.String(),
			})
	})
	if err != nil {
		u.log.Warnf("Failed to create ambulance booking for patient %s: %+v", req.PatientID, err)
		return nil, err
	}

	u.invalidateStats()

	u.log.Infof("Ambulance booking requested: id=%s, priority=%s, eta=%dmin, cost=%s",
		booking.ID, priority, booking.EstimatedArrivalMinutes, booking.EstimatedCost)
	return converter.AmbulanceBookingToResponse(booking), nil
}

// Dispatch assigns an ambulance and driver to a requested booking.
func (u *ambulanceUsecase) Dispatch(ctx context.Context, bookingID uuid.UUID, req *dto.DispatchAmbulanceRequest) (*dto.AmbulanceBookingResponse, error) {
	return u.transition(ctx, bookingID, entity.AuditActionAmbulanceDispatch, func(booking *entity.AmbulanceBooking) error {
		if err := booking.Dispatch(req.AmbulanceID, req.DriverID, req.EstimatedMinutes, time.Now()); err != nil {
			return err
		}
		booking.ParamedicsIDs = req.ParamedicsIDs
		return nil
	})
}

func (u *ambulanceUsecase) MarkEnRoute(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error) {
	return u.transition(ctx, bookingID, entity.AuditActionAmbulanceTransition, func(booking *entity.AmbulanceBooking) error {
		return booking.MarkEnRoute()
	})
}

func (u *ambulanceUsecase) MarkArrived(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error) {
	return u.transition(ctx, bookingID, entity.AuditActionAmbulanceTransition, func(booking *entity.AmbulanceBooking) error {
		return booking.MarkArrived(time.Now())
	})
}

// Complete closes the booking; final cost defaults to the estimate when the
// operator supplies none.
func (u *ambulanceUsecase) Complete(ctx context.Context, bookingID uuid.UUID, req *dto.CompleteAmbulanceRequest) (*dto.AmbulanceBookingResponse, error) {
	return u.transition(ctx, bookingID, entity.AuditActionAmbulanceComplete, func(booking *entity.AmbulanceBooking) error {
		finalCost := booking.EstimatedCost
		if req.FinalCost != nil {
			finalCost = *req.FinalCost
		}
		return booking.Complete(finalCost, time.Now())
	})
}

func (u *ambulanceUsecase) Cancel(ctx context.Context, bookingID uuid.UUID, req *dto.CancelAmbulanceRequest) (*dto.AmbulanceBookingResponse, error) {
	return u.transition(ctx, bookingID, entity.AuditActionAmbulanceCancel, func(booking *entity.AmbulanceBooking) error {
		return booking.Cancel(req.CancellationReason)
	})
}

// transition runs a dispatch lifecycle change: per-booking lock, transaction,
// row lock, entity state check, save, audit.
func (u *ambulanceUsecase) transition(ctx context.Context, bookingID uuid.UUID, action string, apply func(*entity.AmbulanceBooking) error) (*dto.AmbulanceBookingResponse, error) {
	var booking *entity.AmbulanceBooking

	err := u.locker.WithLock(ctx, "ambulance_booking", bookingID, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			booking, err = u.bookingRepo.FindByIDForUpdate(tx, bookingID)
			if err != nil {
				return err
			}
			if booking == nil {
				return ErrAmbulanceBookingNotFound
			}

			previous := booking.Status
			if err := apply(booking); err != nil {
				return err
			}

			if err := u.bookingRepo.Save(tx, booking); err != nil {
				return err
			}

			return u.auditService.LogAllocation(tx, nil, action,
				"ambulance_booking", booking.ID.String(), entity.JSON{
					"from": string(previous),
					"to":   string(booking.Status),
				})
		})
	})
	if err != nil {
		if errors.Is(err, ErrAmbulanceBookingNotFound) || errors.Is(err, entity.ErrAmbulanceInvalidTransition) ||
			errors.Is(err, service.ErrLockNotAcquired) {
			return nil, err
		}
		u.log.Warnf("Failed %s for ambulance booking %s: %+v", action, bookingID, err)
		return nil, err
	}

	u.invalidateStats()

	u.log.Infof("Ambulance booking %s: %s -> %s", bookingID, action, booking.Status)
	return converter.AmbulanceBookingToResponse(booking), nil
}

// ListActive returns the dispatch queue view: non-terminal bookings ordered by
// priority rank (critical first) then request time.
func (u *ambulanceUsecase) ListActive(ctx context.Context) (*dto.AmbulanceBookingListResponse, error) {
	bookings, err := u.bookingRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active ambulance bookings: %+v", err)
		return nil, err
	}

	return &dto.AmbulanceBookingListResponse{
		Bookings: converter.AmbulanceBookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *ambulanceUsecase) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.AmbulanceBookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find ambulance booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrAmbulanceBookingNotFound
	}

	return converter.AmbulanceBookingToResponse(booking), nil
}

func (u *ambulanceUsecase) GetPatientBookings(ctx context.Context, patientID uuid.UUID) (*dto.AmbulanceBookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find ambulance bookings for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AmbulanceBookingListResponse{
		Bookings: converter.AmbulanceBookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *ambulanceUsecase) GetStats(ctx context.Context) (*service.AmbulanceStats, error) {
	return u.statsService.GetAmbulanceStats(ctx)
}

func (u *ambulanceUsecase) invalidateStats() {
	invalidateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.statsService.InvalidateAmbulanceStats(invalidateCtx)
}
