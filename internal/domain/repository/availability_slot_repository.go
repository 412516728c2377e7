package repository

import (
	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlotRepository interface {
	Create(db *gorm.DB, slot *entity.AvailabilitySlot) error
	Save(db *gorm.DB, slot *entity.AvailabilitySlot) error
	Delete(db *gorm.DB, id uuid.UUID) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilitySlot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error)
	FindAvailableByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error)
}
