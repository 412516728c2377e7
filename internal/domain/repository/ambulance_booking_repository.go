package repository

import (
	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AmbulanceBookingRepository interface {
	Create(db *gorm.DB, booking *entity.AmbulanceBooking) error
	Save(db *gorm.DB, booking *entity.AmbulanceBooking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AmbulanceBooking, error)
	// FindByIDForUpdate locks the booking row for the duration of a dispatch
	// lifecycle transition.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.AmbulanceBooking, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.AmbulanceBooking, error)
	// FindActive returns non-terminal bookings ordered by priority rank then
	// request time ascending.
	FindActive(db *gorm.DB) ([]entity.AmbulanceBooking, error)
	CountByStatus(db *gorm.DB, status entity.AmbulanceStatus) (int64, error)
	CountByPriority(db *gorm.DB, priority entity.Priority) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
