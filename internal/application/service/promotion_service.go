package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PromotionService handles promotion codes and their redemption
type PromotionService struct {
	promotionRepo repository.PromotionRepository
	auditService  *AuditService
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo repository.PromotionRepository, auditService *AuditService) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		auditService:  auditService,
	}
}

// CreatePromotionInput represents the input for creating a promotion
type CreatePromotionInput struct {
	Code        string
	Description *string
	Type        enum.PromotionType
	Value       decimal.Decimal
	MinAmount   *decimal.Decimal
	MaxDiscount *decimal.Decimal
	ValidFrom   time.Time
	ValidTo     time.Time
	UsageLimit  *int
	AppliesTo   enum.PromotionScope
	ProductIDs  []uuid.UUID
	CategoryID  *uuid.UUID
	CreatedBy   uuid.UUID
}

// CreatePromotion creates a new promotion code
func (s *PromotionService) CreatePromotion(ctx context.Context, input *CreatePromotionInput) (*entity.Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, apperror.NewBadRequestError("code is required")
	}
	if input.ValidTo.Before(input.ValidFrom) {
		return nil, apperror.NewBadRequestError("validTo must be after validFrom")
	}
	if input.Type == enum.PromotionTypePercentage && input.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.NewBadRequestError("percentage value cannot exceed 100")
	}

	existing, err := s.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Promotion code already exists")
	}

	promotion := &entity.Promotion{
		Code:        code,
		Description: input.Description,
		Type:        input.Type,
		Value:       input.Value,
		ValidFrom:   input.ValidFrom,
		ValidTo:     input.ValidTo,
		UsageLimit:  input.UsageLimit,
		AppliesTo:   input.AppliesTo,
		ProductIDs:  input.ProductIDs,
		CategoryID:  input.CategoryID,
		IsActive:    true,
	}
	if input.AppliesTo == "" {
		promotion.AppliesTo = enum.PromotionScopeEntireOrder
	}
	if input.MinAmount != nil {
		promotion.MinAmount = decimal.NewNullDecimal(*input.MinAmount)
	}
	if input.MaxDiscount != nil {
		promotion.MaxDiscount = decimal.NewNullDecimal(*input.MaxDiscount)
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Promotion", &promotion.ID, map[string]any{
		"code": promotion.Code,
	})
	return promotion, nil
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	return promotion, nil
}

// ListPromotionsInput represents the input for listing promotions
type ListPromotionsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}

// ListPromotions lists promotions with filtering
func (s *PromotionService) ListPromotions(ctx context.Context, input *ListPromotionsInput) (*pagination.PaginatedResult[entity.Promotion], error) {
	promotions, total, err := s.promotionRepo.List(ctx, &repository.PromotionFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		ActiveOnly: input.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(promotions, pag), nil
}

// UpdatePromotionInput represents the input for updating a promotion
type UpdatePromotionInput struct {
	ID          uuid.UUID
	Description *string
	Value       *decimal.Decimal
	MinAmount   *decimal.Decimal
	MaxDiscount *decimal.Decimal
	ValidFrom   *time.Time
	ValidTo     *time.Time
	UsageLimit  *int
	IsActive    *bool
	UpdatedBy   uuid.UUID
}

// UpdatePromotion updates an existing promotion
func (s *PromotionService) UpdatePromotion(ctx context.Context, input *UpdatePromotionInput) (*entity.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}

	if input.Description != nil {
		promotion.Description = input.Description
	}
	if input.Value != nil {
		promotion.Value = *input.Value
	}
	if input.MinAmount != nil {
		promotion.MinAmount = decimal.NewNullDecimal(*input.MinAmount)
	}
	if input.MaxDiscount != nil {
		promotion.MaxDiscount = decimal.NewNullDecimal(*input.MaxDiscount)
	}
	if input.ValidFrom != nil {
		promotion.ValidFrom = *input.ValidFrom
	}
	if input.ValidTo != nil {
		promotion.ValidTo = *input.ValidTo
	}
	if input.UsageLimit != nil {
		promotion.UsageLimit = input.UsageLimit
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}
	if promotion.ValidTo.Before(promotion.ValidFrom) {
		return nil, apperror.NewBadRequestError("validTo must be after validFrom")
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Promotion", &promotion.ID, nil)
	return promotion, nil
}

// DeletePromotion soft-deletes a promotion
func (s *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return apperror.NewNotFoundError("Promotion")
	}
	if err := s.promotionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "Promotion", &id, nil)
	return nil
}

// ValidationResult is the outcome of validating a promotion against an order
type ValidationResult struct {
	Promotion      *entity.Promotion `json:"promotion"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	FreeShipping   bool              `json:"free_shipping"`
}

// Validate checks a code against an order amount and computes the discount.
// Checks run in a fixed order: existence, active flag, validity window,
// usage limit, minimum amount. FIXED_AMOUNT discounts are clamped to the
// order amount so totals never go negative.
func (s *PromotionService) Validate(ctx context.Context, code string, orderAmount decimal.Decimal, now time.Time) (*ValidationResult, error) {
	// Codes are stored trimmed and upper-cased, normalize the lookup the same way
	promotion, err := s.promotionRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	if !promotion.IsActive {
		return nil, apperror.NewBadRequestError("Promotion is not active")
	}
	if !promotion.InWindow(now) {
		return nil, apperror.NewBadRequestError("Promotion is outside its validity window")
	}
	if promotion.UsageExhausted() {
		return nil, apperror.NewBadRequestError("Promotion usage limit reached")
	}
	if promotion.MinAmount.Valid && orderAmount.LessThan(promotion.MinAmount.Decimal) {
		return nil, apperror.NewBadRequestError("Order amount is below the promotion minimum")
	}

	result := &ValidationResult{Promotion: promotion, DiscountAmount: decimal.Zero}

	switch promotion.Type {
	case enum.PromotionTypePercentage:
		discount := orderAmount.Mul(promotion.Value).Div(decimal.NewFromInt(100))
		if promotion.MaxDiscount.Valid && discount.GreaterThan(promotion.MaxDiscount.Decimal) {
			discount = promotion.MaxDiscount.Decimal
		}
		result.DiscountAmount = discount.Round(2)
	case enum.PromotionTypeFixedAmount:
		discount := promotion.Value
		if discount.GreaterThan(orderAmount) {
			discount = orderAmount
		}
		result.DiscountAmount = discount.Round(2)
	case enum.PromotionTypeFreeShipping:
		result.FreeShipping = true
	}

	return result, nil
}

// Redeem marks one use of the promotion. The underlying conditional UPDATE
// guarantees the usage limit is never exceeded under concurrency.
func (s *PromotionService) Redeem(ctx context.Context, id uuid.UUID) error {
	ok, err := s.promotionRepo.IncrementUsage(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewConflictError("Promotion usage limit reached")
	}
	return nil
}
