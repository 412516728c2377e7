package repository

import (
	"errors"

	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type icuBedRepository struct{}

func NewICUBedRepository() domainRepo.ICUBedRepository {
	return &icuBedRepository{}
}

func (r *icuBedRepository) Save(db *gorm.DB, bed *entity.ICUBed) error {
	return db.Save(bed).Error
}

func (r *icuBedRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ICUBed, error) {
	var bed entity.ICUBed
	err := db.Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE on the bed row. Must run
// inside a transaction.
func (r *icuBedRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.ICUBed, error) {
	var bed entity.ICUBed
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *icuBedRepository) FindAvailable(db *gorm.DB, icuType, hospital string) ([]entity.ICUBed, error) {
	query := db.Where("status = ?", entity.BedStatusAvailable)
	if icuType != "" {
		query = query.Where("icu_type = ?", icuType)
	}
	if hospital != "" {
		query = query.Where("hospital = ?", hospital)
	}

	var beds []entity.ICUBed
	err := query.Order("hospital ASC, bed_number ASC").Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *icuBedRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ICUBed, error) {
	var beds []entity.ICUBed
	err := db.Where("assigned_patient_id = ?", patientID).Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *icuBedRepository) DistinctHospitals(db *gorm.DB) ([]string, error) {
	var hospitals []string
	err := db.Model(&entity.ICUBed{}).
		Distinct("hospital").
		Order("hospital ASC").
		Pluck("hospital", &hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *icuBedRepository) DistinctICUTypes(db *gorm.DB) ([]string, error) {
	var icuTypes []string
	err := db.Model(&entity.ICUBed{}).
		Distinct("icu_type").
		Order("icu_type ASC").
		Pluck("icu_type", &icuTypes).Error
	if err != nil {
		return nil, err
	}
	return icuTypes, nil
}

func (r *icuBedRepository) CountByStatus(db *gorm.DB, status entity.BedStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.ICUBed{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *icuBedRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.ICUBed{}).Count(&count).Error
	return count, err
}
