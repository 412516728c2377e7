package repository

import (
	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorPatientMessageRepository struct{}

func NewDoctorPatientMessageRepository() domainRepo.DoctorPatientMessageRepository {
	return &doctorPatientMessageRepository{}
}

func (r *doctorPatientMessageRepository) Create(db *gorm.DB, message *entity.DoctorPatientMessage) error {
	return db.Create(message).Error
}
