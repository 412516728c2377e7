package service

import (
	"context"

	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	welcomeMessageText  = "Appointment confirmed! You can now communicate with your doctor through this chat."
	followUpMessageText = "Appointment completed! You can now communicate with your doctor through this chat for follow-up questions or concerns."
)

// MessageService emits system-authored messages into the doctor-patient
// channel. All sends are best-effort: failures are logged and swallowed, and
// must never fail the allocation that triggered them.
type MessageService interface {
	SendWelcomeMessage(ctx context.Context, doctorID, patientID, appointmentID uuid.UUID)
	SendFollowUpMessage(ctx context.Context, doctorID, patientID, appointmentID uuid.UUID)
}

type messageService struct {
	db          *gorm.DB
	log         *logrus.Logger
	messageRepo repository.DoctorPatientMessageRepository
}

func NewMessageService(db *gorm.DB, log *logrus.Logger, messageRepo repository.DoctorPatientMessageRepository) MessageService {
	return &messageService{
		db:          db,
		log:         log,
		messageRepo: messageRepo,
	}
}

func (s *messageService) SendWelcomeMessage(ctx context.Context, doctorID, patientID, appointmentID uuid.UUID) {
	s.send(ctx, doctorID, patientID, appointmentID, welcomeMessageText)
}

func (s *messageService) SendFollowUpMessage(ctx context.Context, doctorID, patientID, appointmentID uuid.UUID) {
	s.send(ctx, doctorID, patientID, appointmentID, followUpMessageText)
}

func (s *messageService) send(ctx context.Context, doctorID, patientID, appointmentID uuid.UUID, text string) {
	message := &entity.DoctorPatientMessage{
		DoctorID:      doctorID,
		PatientID:     patientID,
		AppointmentID: &appointmentID,
		SenderType:    entity.SenderSystem,
		Message:       text,
		MessageType:   "text",
	}

	if err := s.messageRepo.Create(s.db.WithContext(ctx), message); err != nil {
		s.log.Warnf("Failed to create system message for appointment %s (non-fatal): %+v", appointmentID, err)
	}
}
