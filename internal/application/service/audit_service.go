package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"go.uber.org/zap"
)

// AuditService records mutations for the audit trail. Recording is
// best-effort: a failed insert is logged as a warning and never propagated
// to the caller, so business operations cannot fail because of auditing.
type AuditService struct {
	auditRepo repository.AuditLogRepository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record writes one audit log row and a structured log line
func (s *AuditService) Record(ctx context.Context, userID *uuid.UUID, action, entityName string, entityID *uuid.UUID, details map[string]any) {
	log := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Details:  details,
	}

	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Warn("audit log write failed",
			zap.String("action", action),
			zap.String("entity", entityName),
			zap.Error(err),
		)
		return
	}

	fields := []zap.Field{
		zap.String("action", action),
		zap.String("entity", entityName),
	}
	if userID != nil {
		fields = append(fields, zap.String("user_id", userID.String()))
	}
	if entityID != nil {
		fields = append(fields, zap.String("entity_id", entityID.String()))
	}
	s.logger.Info("audit", fields...)
}

// SecurityStats aggregates audit activity over the last seven days
func (s *AuditService) SecurityStats(ctx context.Context) (*repository.SecurityStats, error) {
	since := time.Now().AddDate(0, 0, -7)
	return s.auditRepo.Stats(ctx, since)
}
