package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"go.uber.org/zap"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Notify creates a notification for a user. Best-effort: a failed insert is
// logged, not propagated.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, notifType string) {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("user_id", userID.String()),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// ListNotifications lists a user's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, unreadOnly bool) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, params, unreadOnly)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one notification read; users can only touch their own
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.NewNotFoundError("Notification")
	}
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification of a user read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// DeleteNotification removes a notification; users can only delete their own
func (s *NotificationService) DeleteNotification(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.NewNotFoundError("Notification")
	}
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.notificationRepo.Delete(ctx, id)
}
