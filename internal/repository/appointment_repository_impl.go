package repository

import (
	"errors"
	"time"

	"medimitra-backend/internal/domain/entity"
	domainRepo "medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for unique_violation.
const uniqueViolationCode = "23505"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	err := db.Create(appointment).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domainRepo.ErrDuplicateKey
	}
	return err
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ?", doctorID).
		Order("date_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindScheduledByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND status = ?", doctorID, entity.AppointmentStatusScheduled).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindScheduledByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND status = ? AND date_time >= ? AND date_time < ?",
		doctorID, entity.AppointmentStatusScheduled, dayStart, dayEnd).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcoming(db *gorm.DB, userID uuid.UUID, role string, now time.Time) ([]entity.Appointment, error) {
	column := "patient_id"
	if role == "doctor" {
		column = "doctor_id"
	}

	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where(column+" = ? AND status = ? AND date_time > ?", userID, entity.AppointmentStatusScheduled, now).
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountBySlotAndDate(db *gorm.DB, slotID uuid.UUID, dayStart, dayEnd time.Time, statuses []entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("availability_slot_id = ? AND status IN ? AND date_time >= ? AND date_time < ?",
			slotID, statuses, dayStart, dayEnd).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountFutureScheduledBySlot(db *gorm.DB, slotID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("availability_slot_id = ? AND status = ? AND date_time > ?",
			slotID, entity.AppointmentStatusScheduled, now).
		Count(&count).Error
	return count, err
}
