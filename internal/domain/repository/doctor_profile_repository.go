package repository

import (
	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
	// FindByIDForUpdate locks the doctor row; the lock serializes concurrent
	// bookings for the same doctor across the conflict check and insert.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
}
