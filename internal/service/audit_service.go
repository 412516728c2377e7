package service

import (
	"medimitra-backend/internal/domain/entity"
	"medimitra-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records allocation lifecycle events inside the transaction
// that performs them, so a rolled-back allocation leaves no trail.
type AuditService interface {
	LogAllocation(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogAllocation(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) error {
	if metadata == nil {
		metadata = entity.JSON{}
	}
	metadata["entity"] = entityName
	metadata["entity_id"] = entityID

	auditLog := &entity.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
