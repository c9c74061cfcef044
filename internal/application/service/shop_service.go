package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/primeurdirect/primeur-api/pkg/utils"
)

// ShopService handles client shops
type ShopService struct {
	shopRepo     repository.ShopRepository
	userRepo     repository.UserRepository
	auditService *AuditService
}

// NewShopService creates a new shop service
func NewShopService(
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	auditService *AuditService,
) *ShopService {
	return &ShopService{
		shopRepo:     shopRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// CreateShopInput represents the input for creating a shop with its client
// account
type CreateShopInput struct {
	Name       string
	SIRET      *string
	Address    *string
	City       *string
	PostalCode *string
	Phone      *string

	FirstName string
	LastName  string
	Email     string
	Password  string

	CreatedBy uuid.UUID
}

// CreateShop creates the client account and its shop in one transaction.
// Admin-created accounts are pre-verified and pre-approved.
func (s *ShopService) CreateShop(ctx context.Context, input *CreateShopInput) (*entity.Shop, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("shop name is required")
	}
	if input.Email == "" || input.Password == "" {
		return nil, apperror.NewBadRequestError("email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         email,
		Password:      hashed,
		Role:          enum.RoleClient,
		EmailVerified: true,
		IsApproved:    true,
	}
	shop := &entity.Shop{
		Name:       input.Name,
		SIRET:      input.SIRET,
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		Phone:      input.Phone,
		IsActive:   true,
	}

	if err := s.shopRepo.CreateWithUser(ctx, user, shop); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Shop", &shop.ID, map[string]any{
		"name": shop.Name,
	})
	return s.shopRepo.GetByID(ctx, shop.ID)
}

// GetShop retrieves a shop by ID
func (s *ShopService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// GetShopByUser retrieves the shop attached to a client account
func (s *ShopService) GetShopByUser(ctx context.Context, userID uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}
	return shop, nil
}

// ListShops lists shops with optional search
func (s *ShopService) ListShops(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Shop], error) {
	shops, total, err := s.shopRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(shops, pag), nil
}

// UpdateShopInput represents the input for updating a shop
type UpdateShopInput struct {
	ID         uuid.UUID
	Name       *string
	SIRET      *string
	Address    *string
	City       *string
	PostalCode *string
	Phone      *string
	IsActive   *bool
	UpdatedBy  uuid.UUID
}

// UpdateShop updates an existing shop
func (s *ShopService) UpdateShop(ctx context.Context, input *UpdateShopInput) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.SIRET != nil {
		shop.SIRET = input.SIRET
	}
	if input.Address != nil {
		shop.Address = input.Address
	}
	if input.City != nil {
		shop.City = input.City
	}
	if input.PostalCode != nil {
		shop.PostalCode = input.PostalCode
	}
	if input.Phone != nil {
		shop.Phone = input.Phone
	}
	if input.IsActive != nil {
		shop.IsActive = *input.IsActive
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Shop", &shop.ID, nil)
	return shop, nil
}

// DeleteShop soft-deletes a shop
func (s *ShopService) DeleteShop(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shop == nil {
		return apperror.NewNotFoundError("Shop")
	}
	if err := s.shopRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "Shop", &id, nil)
	return nil
}
