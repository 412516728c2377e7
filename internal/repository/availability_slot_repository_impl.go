package repository

import (
	"errors"

	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilitySlotRepository struct{}

func NewAvailabilitySlotRepository() domainRepo.AvailabilitySlotRepository {
	return &availabilitySlotRepository{}
}

func (r *availabilitySlotRepository) Create(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Create(slot).Error
}

func (r *availabilitySlotRepository) Save(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Save(slot).Error
}

func (r *availabilitySlotRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.AvailabilitySlot{}, "id = ?", id).Error
}

func (r *availabilitySlotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) FindAvailableByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, day entity.DayOfWeek) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND day_of_week = ? AND is_available = true", doctorID, day).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
