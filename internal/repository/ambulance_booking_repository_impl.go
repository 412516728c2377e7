package repository

import (
	"errors"

	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activePriorityOrder ranks the active queue in SQL: critical first, then by
// request time within each class.
const activePriorityOrder = `CASE priority
	WHEN 'critical' THEN 0
	WHEN 'high' THEN 1
	WHEN 'medium' THEN 2
	ELSE 3
END ASC, request_time ASC`

type ambulanceBookingRepository struct{}

func NewAmbulanceBookingRepository() domainRepo.AmbulanceBookingRepository {
	return &ambulanceBookingRepository{}
}

func (r *ambulanceBookingRepository) Create(db *gorm.DB, booking *entity.AmbulanceBooking) error {
	return db.Create(booking).Error
}

func (r *ambulanceBookingRepository) Save(db *gorm.DB, booking *entity.AmbulanceBooking) error {
	return db.Save(booking).Error
}

func (r *ambulanceBookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AmbulanceBooking, error) {
	var booking entity.AmbulanceBooking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE on the booking row. Must run
// inside a transaction.
func (r *ambulanceBookingRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.AmbulanceBooking, error) {
	var booking entity.AmbulanceBooking
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *ambulanceBookingRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.AmbulanceBooking, error) {
	var bookings []entity.AmbulanceBooking
	err := db.Where("patient_id = ?", patientID).
		Order("request_time DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ambulanceBookingRepository) FindActive(db *gorm.DB) ([]entity.AmbulanceBooking, error) {
	var bookings []entity.AmbulanceBooking
	err := db.Where("status IN ?", []entity.AmbulanceStatus{
		entity.AmbulanceStatusRequested,
		entity.AmbulanceStatusDispatched,
		entity.AmbulanceStatusEnRoute,
		entity.AmbulanceStatusArrived,
	}).
		Order(activePriorityOrder).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ambulanceBookingRepository) CountByStatus(db *gorm.DB, status entity.AmbulanceStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.AmbulanceBooking{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ambulanceBookingRepository) CountByPriority(db *gorm.DB, priority entity.Priority) (int64, error) {
	var count int64
	err := db.Model(&entity.AmbulanceBooking{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}

func (r *ambulanceBookingRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.AmbulanceBooking{}).Count(&count).Error
	return count, err
}
