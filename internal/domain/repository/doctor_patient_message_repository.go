package repository

import (
	"medimitra-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorPatientMessageRepository interface {
	Create(db *gorm.DB, message *entity.DoctorPatientMessage) error
}
