package repository

import (
	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICUBedRepository interface {
	Save(db *gorm.DB, bed *entity.ICUBed) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ICUBed, error)
	// FindByIDForUpdate takes a row lock on the bed so the state check and
	// write serialize against concurrent writers.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.ICUBed, error)
	FindAvailable(db *gorm.DB, icuType, hospital string) ([]entity.ICUBed, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ICUBed, error)
	DistinctHospitals(db *gorm.DB) ([]string, error)
	DistinctICUTypes(db *gorm.DB) ([]string, error)
	CountByStatus(db *gorm.DB, status entity.BedStatus) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
