package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// UserService handles admin-side account management
type UserService struct {
	userRepo     repository.UserRepository
	auditService *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, auditService *AuditService) *UserService {
	return &UserService{
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists users with optional search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// SetRole assigns a workflow role to a user
func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, role enum.Role, updatedBy uuid.UUID) (*entity.User, error) {
	if !role.IsValid() {
		return nil, apperror.NewBadRequestError("unknown role")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	user.Role = role
	user.Shop = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &updatedBy, "SET_ROLE", "User", &user.ID, map[string]any{
		"role": role.String(),
	})
	return user, nil
}

// ApproveUser marks a pending account approved
func (s *UserService) ApproveUser(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if user.IsApproved {
		return nil, apperror.NewConflictError("User is already approved")
	}

	user.IsApproved = true
	user.Shop = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &approvedBy, "APPROVE", "User", &user.ID, nil)
	return user, nil
}

// DeleteUser soft-deletes an account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "User", &id, nil)
	return nil
}
