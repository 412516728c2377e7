package repository

import (
	"errors"

	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	var doctor entity.DoctorProfile
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE on the doctor row. Must run
// inside a transaction; the lock is held until commit or rollback.
func (r *doctorProfileRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	var doctor entity.DoctorProfile
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}
