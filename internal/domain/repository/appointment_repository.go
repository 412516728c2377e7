package repository

import (
	"time"

	"medimitra-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Save(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	// FindScheduledByDoctor returns every scheduled appointment for a doctor;
	// callers run it inside the transaction that holds the doctor row lock.
	FindScheduledByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindScheduledByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Appointment, error)
	FindUpcoming(db *gorm.DB, userID uuid.UUID, role string, now time.Time) ([]entity.Appointment, error)
	CountBySlotAndDate(db *gorm.DB, slotID uuid.UUID, dayStart, dayEnd time.Time, statuses []entity.AppointmentStatus) (int64, error)
	CountFutureScheduledBySlot(db *gorm.DB, slotID uuid.UUID, now time.Time) (int64, error)
}
