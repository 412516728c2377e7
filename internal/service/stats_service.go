package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

const (
	icuBedStatsKey    = "stats:icu_beds"
	ambulanceStatsKey = "stats:ambulance_bookings"
)

// ICUBedStats is a point-in-time census of the bed fleet.
type ICUBedStats struct {
	TotalBeds       int64   `json:"total_beds"`
	AvailableBeds   int64   `json:"available_beds"`
	OccupiedBeds    int64   `json:"occupied_beds"`
	ReservedBeds    int64   `json:"reserved_beds"`
	MaintenanceBeds int64   `json:"maintenance_beds"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// AmbulanceStats summarizes the dispatch workload by lifecycle stage and
// priority.
type AmbulanceStats struct {
	TotalBookings    int64 `json:"total_bookings"`
	ActiveBookings   int64 `json:"active_bookings"`
	RequestedCount   int64 `json:"requested_count"`
	DispatchedCount  int64 `json:"dispatched_count"`
	EnRouteCount     int64 `json:"en_route_count"`
	ArrivedCount     int64 `json:"arrived_count"`
	CompletedCount   int64 `json:"completed_count"`
	CancelledCount   int64 `json:"cancelled_count"`
	CriticalPriority int64 `json:"critical_priority"`
	HighPriority     int64 `json:"high_priority"`
	MediumPriority   int64 `json:"medium_priority"`
	LowPriority      int64 `json:"low_priority"`
}

// StatsService serves fleet statistics through a Redis read-through cache.
// Stats are dashboard data, so a short staleness window is acceptable and
// keeps the count queries off the hot allocation path.
type StatsService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration

	bedRepo       repository.ICUBedRepository
	ambulanceRepo repository.AmbulanceBookingRepository
}

func NewStatsService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	ttl time.Duration,
	bedRepo repository.ICUBedRepository,
	ambulanceRepo repository.AmbulanceBookingRepository,
) *StatsService {
	return &StatsService{
		db:            db,
		redisClient:   redisClient,
		log:           log,
		ttl:           ttl,
		bedRepo:       bedRepo,
		ambulanceRepo: ambulanceRepo,
	}
}

// WarmUp primes both stats caches in parallel so the first dashboard request
// after startup does not pay for the full set of count queries. Failures are
// non-fatal: the read-through path recomputes on demand.
func (s *StatsService) WarmUp(ctx context.Context) {
	startTime := time.Now()

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		_, err := s.GetICUBedStats(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		_, err := s.GetAmbulanceStats(ctx)
		return err
	})

	if err := p.Wait(); err != nil {
		s.log.Warnf("Stats cache warmup failed (non-fatal): %+v", err)
		return
	}

	s.log.Infof("Stats cache warmed up in %v", time.Since(startTime))
}

// InvalidateICUBedStats drops the cached bed census. Called after a bed
// allocation commits so the dashboard converges quickly.
func (s *StatsService) InvalidateICUBedStats(ctx context.Context) {
	if err := s.redisClient.Del(ctx, icuBedStatsKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate ICU bed stats cache (non-fatal): %+v", err)
	}
}

// InvalidateAmbulanceStats drops the cached dispatch summary.
func (s *StatsService) InvalidateAmbulanceStats(ctx context.Context) {
	if err := s.redisClient.Del(ctx, ambulanceStatsKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate ambulance stats cache (non-fatal): %+v", err)
	}
}

// GetICUBedStats returns the bed census, from cache when fresh.
func (s *StatsService) GetICUBedStats(ctx context.Context) (*ICUBedStats, error) {
	var cached ICUBedStats
	if ok := s.readCache(ctx, icuBedStatsKey, &cached); ok {
		return &cached, nil
	}

	stats, err := s.computeICUBedStats(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, icuBedStatsKey, stats)
	return stats, nil
}

// GetAmbulanceStats returns the dispatch summary, from cache when fresh.
func (s *StatsService) GetAmbulanceStats(ctx context.Context) (*AmbulanceStats, error) {
	var cached AmbulanceStats
	if ok := s.readCache(ctx, ambulanceStatsKey, &cached); ok {
		return &cached, nil
	}

	stats, err := s.computeAmbulanceStats(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, ambulanceStatsKey, stats)
	return stats, nil
}

func (s *StatsService) computeICUBedStats(ctx context.Context) (*ICUBedStats, error) {
	db := s.db.WithContext(ctx)
	stats := &ICUBedStats{}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		stats.TotalBeds, err = s.bedRepo.Count(db)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.AvailableBeds, err = s.bedRepo.CountByStatus(db, entity.BedStatusAvailable)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.OccupiedBeds, err = s.bedRepo.CountByStatus(db, entity.BedStatusOccupied)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.ReservedBeds, err = s.bedRepo.CountByStatus(db, entity.BedStatusReserved)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		stats.MaintenanceBeds, err = s.bedRepo.CountByStatus(db, entity.BedStatusMaintenance)
		return err
	})

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("compute icu bed stats: %w", err)
	}

	if stats.TotalBeds > 0 {
		stats.OccupancyRate = float64(stats.OccupiedBeds) / float64(stats.TotalBeds) * 100
	}

	return stats, nil
}

func (s *StatsService) computeAmbulanceStats(ctx context.Context) (*AmbulanceStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AmbulanceStats{}

	statusTargets := map[entity.AmbulanceStatus]*int64{
		entity.AmbulanceStatusRequested:  &stats.RequestedCount,
		entity.AmbulanceStatusDispatched: &stats.DispatchedCount,
		entity.AmbulanceStatusEnRoute:    &stats.EnRouteCount,
		entity.AmbulanceStatusArrived:    &stats.ArrivedCount,
		entity.AmbulanceStatusCompleted:  &stats.CompletedCount,
		entity.AmbulanceStatusCancelled:  &stats.CancelledCount,
	}
	priorityTargets := map[entity.Priority]*int64{
		entity.PriorityCritical: &stats.CriticalPriority,
		entity.PriorityHigh:     &stats.HighPriority,
		entity.PriorityMedium:   &stats.MediumPriority,
		entity.PriorityLow:      &stats.LowPriority,
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		stats.TotalBookings, err = s.ambulanceRepo.Count(db)
		return err
	})
	for status, target := range statusTargets {
		p.Go(func(ctx context.Context) error {
			count, err := s.ambulanceRepo.CountByStatus(db, status)
			if err != nil {
				return err
			}
			*target = count
			return nil
		})
	}
	for priority, target := range priorityTargets {
		p.Go(func(ctx context.Context) error {
			count, err := s.ambulanceRepo.CountByPriority(db, priority)
			if err != nil {
				return err
			}
			*target = count
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("compute ambulance stats: %w", err)
	}

	stats.ActiveBookings = stats.RequestedCount + stats.DispatchedCount + stats.EnRouteCount + stats.ArrivedCount

	return stats, nil
}

// readCache reports whether a fresh cached value was loaded into dest. Cache
// errors degrade to a recompute, never to a request failure.
func (s *StatsService) readCache(ctx context.Context, key string, dest any) bool {
	payload, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read stats cache %s (non-fatal): %+v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		s.log.Warnf("Failed to decode stats cache %s (non-fatal): %+v", key, err)
		return false
	}

	return true
}

func (s *StatsService) writeCache(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("Failed to encode stats cache %s (non-fatal): %+v", key, err)
		return
	}

	if err := s.redisClient.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to write stats cache %s (non-fatal): %+v", key, err)
	}
}
