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

var ErrBedNotFound = errors.New("icu bed not found")

type ICUBedUsecase interface {
	ReserveBed(ctx context.Context, req *dto.ReserveBedRequest) (*dto.ICUBedResponse, error)
	OccupyBed(ctx context.Context, req *dto.OccupyBedRequest) (*dto.ICUBedResponse, error)
	ReleaseBed(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error)
	SetMaintenance(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error)
	GetBed(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error)
	ListAvailableBeds(ctx context.Context, icuType, hospital string) (*dto.ICUBedListResponse, error)
	GetPatientBeds(ctx context.Context, patientID uuid.UUID) (*dto.ICUBedListResponse, error)
	ListHospitals(ctx context.Context) ([]string, error)
	ListICUTypes(ctx context.Context) ([]string, error)
	GetStats(ctx context.Context) (*service.ICUBedStats, error)
}

type icuBedUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locker       service.ResourceLocker
	bedRepo      repository.ICUBedRepository
	auditService service.AuditService
	statsService *service.StatsService
}

func NewICUBedUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locker service.ResourceLocker,
	bedRepo repository.ICUBedRepository,
	auditService service.AuditService,
	statsService *service.StatsService,
) ICUBedUsecase {
	return &icuBedUsecase{
		db:           db,
		log:          log,
		locker:       locker,
		bedRepo:      bedRepo,
		auditService: auditService,
		statsService: statsService,
	}
}

// ReserveBed places a reservation window on an available bed. The state check
// and write run inside one transaction holding the bed row lock, under the
// per-bed distributed lock.
func (u *icuBedUsecase) ReserveBed(ctx context.Context, req *dto.ReserveBedRequest) (*dto.ICUBedResponse, error) {
	start, err := schedule.ParseTimestamp(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTimestamp(req.EndTime)
	if err != nil {
		return nil, err
	}

	return u.transition(ctx, req.BedID, entity.AuditActionBedReserve, &req.PatientID, func(bed *entity.ICUBed) error {
		return bed.Reserve(req.PatientID, start, end)
	})
}

// OccupyBed admits a patient to the bed, from available (walk-in) or reserved.
// A reservation held by a different patient does not block admission.
func (u *icuBedUsecase) OccupyBed(ctx context.Context, req *dto.OccupyBedRequest) (*dto.ICUBedResponse, error) {
	return u.transition(ctx, req.BedID, entity.AuditActionBedOccupy, &req.PatientID, func(bed *entity.ICUBed) error {
		return bed.Occupy(req.PatientID)
	})
}

// ReleaseBed returns the bed to available. Releasing an already-available bed
// is a no-op, not an error.
func (u *icuBedUsecase) ReleaseBed(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error) {
	return u.transition(ctx, bedID, entity.AuditActionBedRelease, nil, func(bed *entity.ICUBed) error {
		bed.Release()
		return nil
	})
}

// SetMaintenance takes an available bed out of service.
func (u *icuBedUsecase) SetMaintenance(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error) {
	return u.transition(ctx, bedID, entity.AuditActionBedMaintenance, nil, func(bed *entity.ICUBed) error {
		return bed.SetMaintenance()
	})
}

// transition runs a single bed state change: per-bed lock, transaction, row
// lock, entity state check, save, audit. All four public transitions funnel
// through here.
func (u *icuBedUsecase) transition(ctx context.Context, bedID uuid.UUID, action string, actorID *uuid.UUID, apply func(*entity.ICUBed) error) (*dto.ICUBedResponse, error) {
	var bed *entity.ICUBed

	err := u.locker.WithLock(ctx, "icu_bed", bedID, func(ctx context.Context) error {
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			bed, err = u.bedRepo.FindByIDForUpdate(tx, bedID)
			if err != nil {
				return err
			}
			if bed == nil {
				return ErrBedNotFound
			}

			previous := bed.Status
			if err := apply(bed); err != nil {
				return err
			}

			if err := u.bedRepo.Save(tx, bed); err != nil {
				return err
			}

			return u.auditService.LogAllocation(tx, actorID, action,
				"icu_bed", bed.ID.String(), entity.JSON{
					"from": string(previous),
					"to":   string(bed.Status),
				})
		})
	})
	if err != nil {
		if errors.Is(err, ErrBedNotFound) || errors.Is(err, entity.ErrBedInvalidTransition) ||
			errors.Is(err, entity.ErrBedReservationWindow) || errors.Is(err, service.ErrLockNotAcquired) {
			return nil, err
		}
		u.log.Warnf("Failed %s for bed %s: %+v", action, bedID, err)
		return nil, err
	}

	invalidateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.statsService.InvalidateICUBedStats(invalidateCtx)

	u.log.Infof("ICU bed %s: %s -> %s", bedID, action, bed.Status)
	return converter.ICUBedToResponse(bed), nil
}

func (u *icuBedUsecase) GetBed(ctx context.Context, bedID uuid.UUID) (*dto.ICUBedResponse, error) {
	bed, err := u.bedRepo.FindByID(u.db.WithContext(ctx), bedID)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", bedID, err)
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}

	return converter.ICUBedToResponse(bed), nil
}

func (u *icuBedUsecase) ListAvailableBeds(ctx context.Context, icuType, hospital string) (*dto.ICUBedListResponse, error) {
	beds, err := u.bedRepo.FindAvailable(u.db.WithContext(ctx), icuType, hospital)
	if err != nil {
		u.log.Warnf("Failed to find available beds: %+v", err)
		return nil, err
	}

	return &dto.ICUBedListResponse{
		Beds:  converter.ICUBedsToResponses(beds),
		Total: len(beds),
	}, nil
}

func (u *icuBedUsecase) GetPatientBeds(ctx context.Context, patientID uuid.UUID) (*dto.ICUBedListResponse, error) {
	beds, err := u.bedRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find beds for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.ICUBedListResponse{
		Beds:  converter.ICUBedsToResponses(beds),
		Total: len(beds),
	}, nil
}

func (u *icuBedUsecase) ListHospitals(ctx context.Context) ([]string, error) {
	hospitals, err := u.bedRepo.DistinctHospitals(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	return hospitals, nil
}

func (u *icuBedUsecase) ListICUTypes(ctx context.Context) ([]string, error) {
	types, err := u.bedRepo.DistinctICUTypes(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list ICU types: %+v", err)
		return nil, err
	}
	return types, nil
}

func (u *icuBedUsecase) GetStats(ctx context.Context) (*service.ICUBedStats, error) {
	return u.statsService.GetICUBedStats(ctx)
}
