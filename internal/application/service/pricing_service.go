package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PricingService resolves unit prices and manages pricing overrides
type PricingService struct {
	productRepo       repository.ProductRepository
	volumePricingRepo repository.VolumePricingRepository
	clientPricingRepo repository.ClientPricingRepository
	priceHistoryRepo  repository.PriceHistoryRepository
	auditService      *AuditService
}

// NewPricingService creates a new pricing service
func NewPricingService(
	productRepo repository.ProductRepository,
	volumePricingRepo repository.VolumePricingRepository,
	clientPricingRepo repository.ClientPricingRepository,
	priceHistoryRepo repository.PriceHistoryRepository,
	auditService *AuditService,
) *PricingService {
	return &PricingService{
		productRepo:       productRepo,
		volumePricingRepo: volumePricingRepo,
		clientPricingRepo: clientPricingRepo,
		priceHistoryRepo:  priceHistoryRepo,
		auditService:      auditService,
	}
}

// ResolvePriceInput represents the input for price resolution
type ResolvePriceInput struct {
	ProductID uuid.UUID
	UserID    *uuid.UUID
	Quantity  int
	Tier      enum.TariffTier
}

// ResolvedPrice is the outcome of price resolution for one product line
type ResolvedPrice struct {
	ProductID uuid.UUID       `json:"product_id"`
	PriceHT   decimal.Decimal `json:"price_ht"`
	TVARate   decimal.Decimal `json:"tva_rate"`
	Source    string          `json:"source"`
}

// Price resolution sources
const (
	PriceSourceClient = "CLIENT_PRICING"
	PriceSourceVolume = "VOLUME_PRICING"
	PriceSourceBase   = "BASE_TARIFF"
)

// ResolvePrice returns the effective unit price for a product, quantity and
// optional client. Precedence: client pricing, then volume pricing, then the
// base tariff (T1 or T2 per the selector). Promotion discounts are never
// applied here; they only apply to order totals.
func (s *PricingService) ResolvePrice(ctx context.Context, input *ResolvePriceInput) (*ResolvedPrice, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	tierT2 := input.Tier == enum.TariffTierT2
	resolved := &ResolvedPrice{
		ProductID: product.ID,
		PriceHT:   product.BasePrice(tierT2),
		TVARate:   product.TVARate,
		Source:    PriceSourceBase,
	}

	if input.UserID != nil {
		cp, err := s.clientPricingRepo.FindActive(ctx, input.ProductID, *input.UserID, time.Now())
		if err != nil {
			return nil, err
		}
		if cp != nil {
			if tierT2 {
				resolved.PriceHT = cp.PriceHTT2
			} else {
				resolved.PriceHT = cp.PriceHT
			}
			resolved.Source = PriceSourceClient
			return resolved, nil
		}
	}

	brackets, err := s.volumePricingRepo.ListByProduct(ctx, input.ProductID, true)
	if err != nil {
		return nil, err
	}
	for _, bracket := range brackets {
		if bracket.Matches(input.Quantity) {
			resolved.PriceHT = bracket.PriceHT
			resolved.Source = PriceSourceVolume
			return resolved, nil
		}
	}

	return resolved, nil
}

// CreateVolumePricingInput represents the input for creating a volume bracket
type CreateVolumePricingInput struct {
	ProductID       uuid.UUID
	MinQuantity     int
	MaxQuantity     *int
	PriceHT         decimal.Decimal
	DiscountPercent decimal.Decimal
}

// CreateVolumePricing creates a volume pricing bracket for a product
func (s *PricingService) CreateVolumePricing(ctx context.Context, input *CreateVolumePricingInput) (*entity.VolumePricing, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.MinQuantity < 1 {
		return nil, apperror.NewBadRequestError("minQuantity must be at least 1")
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return nil, apperror.NewBadRequestError("maxQuantity must be greater than or equal to minQuantity")
	}
	if input.PriceHT.IsNegative() {
		return nil, apperror.NewBadRequestError("priceHT cannot be negative")
	}

	vp := &entity.VolumePricing{
		ProductID:       input.ProductID,
		MinQuantity:     input.MinQuantity,
		MaxQuantity:     input.MaxQuantity,
		PriceHT:         input.PriceHT,
		DiscountPercent: input.DiscountPercent,
		IsActive:        true,
	}
	if err := s.volumePricingRepo.Create(ctx, vp); err != nil {
		return nil, err
	}
	return vp, nil
}

// UpdateVolumePricingInput represents the input for updating a volume bracket
type UpdateVolumePricingInput struct {
	ID              uuid.UUID
	MinQuantity     *int
	MaxQuantity     *int
	PriceHT         *decimal.Decimal
	DiscountPercent *decimal.Decimal
	IsActive        *bool
}

// UpdateVolumePricing updates a volume pricing bracket
func (s *PricingService) UpdateVolumePricing(ctx context.Context, input *UpdateVolumePricingInput) (*entity.VolumePricing, error) {
	vp, err := s.volumePricingRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if vp == nil {
		return nil, apperror.NewNotFoundError("Volume pricing")
	}

	if input.MinQuantity != nil {
		vp.MinQuantity = *input.MinQuantity
	}
	if input.MaxQuantity != nil {
		vp.MaxQuantity = input.MaxQuantity
	}
	if input.PriceHT != nil {
		vp.PriceHT = *input.PriceHT
	}
	if input.DiscountPercent != nil {
		vp.DiscountPercent = *input.DiscountPercent
	}
	if input.IsActive != nil {
		vp.IsActive = *input.IsActive
	}

	if err := s.volumePricingRepo.Update(ctx, vp); err != nil {
		return nil, err
	}
	return vp, nil
}

// DeleteVolumePricing removes a volume pricing bracket
func (s *PricingService) DeleteVolumePricing(ctx context.Context, id uuid.UUID) error {
	vp, err := s.volumePricingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vp == nil {
		return apperror.NewNotFoundError("Volume pricing")
	}
	return s.volumePricingRepo.Delete(ctx, id)
}

// ListVolumePricing lists the brackets of a product ordered by minQuantity
func (s *PricingService) ListVolumePricing(ctx context.Context, productID uuid.UUID) ([]entity.VolumePricing, error) {
	return s.volumePricingRepo.ListByProduct(ctx, productID, false)
}

// CreateClientPricingInput represents the input for a negotiated client price
type CreateClientPricingInput struct {
	ProductID  uuid.UUID
	UserID     uuid.UUID
	PriceHT    decimal.Decimal
	PriceHTT2  decimal.Decimal
	ValidFrom  time.Time
	ValidUntil *time.Time
}

// CreateClientPricing creates a negotiated price for a (product, client) pair
func (s *PricingService) CreateClientPricing(ctx context.Context, input *CreateClientPricingInput) (*entity.ClientPricing, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.PriceHT.IsNegative() || input.PriceHTT2.IsNegative() {
		return nil, apperror.NewBadRequestError("negotiated price cannot be negative")
	}
	if input.ValidUntil != nil && input.ValidUntil.Before(input.ValidFrom) {
		return nil, apperror.NewBadRequestError("validUntil must be after validFrom")
	}

	cp := &entity.ClientPricing{
		ProductID:  input.ProductID,
		UserID:     input.UserID,
		PriceHT:    input.PriceHT,
		PriceHTT2:  input.PriceHTT2,
		ValidFrom:  input.ValidFrom,
		ValidUntil: input.ValidUntil,
		IsActive:   true,
	}
	if err := s.clientPricingRepo.Create(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// UpdateClientPricingInput represents the input for updating a client price
type UpdateClientPricingInput struct {
	ID         uuid.UUID
	PriceHT    *decimal.Decimal
	PriceHTT2  *decimal.Decimal
	ValidFrom  *time.Time
	ValidUntil *time.Time
	IsActive   *bool
}

// UpdateClientPricing updates a negotiated client price
func (s *PricingService) UpdateClientPricing(ctx context.Context, input *UpdateClientPricingInput) (*entity.ClientPricing, error) {
	cp, err := s.clientPricingRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, apperror.NewNotFoundError("Client pricing")
	}

	if input.PriceHT != nil {
		cp.PriceHT = *input.PriceHT
	}
	if input.PriceHTT2 != nil {
		cp.PriceHTT2 = *input.PriceHTT2
	}
	if input.ValidFrom != nil {
		cp.ValidFrom = *input.ValidFrom
	}
	if input.ValidUntil != nil {
		cp.ValidUntil = input.ValidUntil
	}
	if input.IsActive != nil {
		cp.IsActive = *input.IsActive
	}

	if err := s.clientPricingRepo.Update(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// DeleteClientPricing removes a negotiated client price
func (s *PricingService) DeleteClientPricing(ctx context.Context, id uuid.UUID) error {
	cp, err := s.clientPricingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cp == nil {
		return apperror.NewNotFoundError("Client pricing")
	}
	return s.clientPricingRepo.Delete(ctx, id)
}

// ListClientPricingByProduct lists negotiated prices for a product
func (s *PricingService) ListClientPricingByProduct(ctx context.Context, productID uuid.UUID) ([]entity.ClientPricing, error) {
	return s.clientPricingRepo.ListByProduct(ctx, productID)
}

// ListClientPricingByUser lists negotiated prices for a client
func (s *PricingService) ListClientPricingByUser(ctx context.Context, userID uuid.UUID) ([]entity.ClientPricing, error) {
	return s.clientPricingRepo.ListByUser(ctx, userID)
}

// GetPriceHistory lists the price change log of a product, newest first
func (s *PricingService) GetPriceHistory(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PriceHistory], error) {
	history, total, err := s.priceHistoryRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(history, pag), nil
}

// BulkPriceUpdateInput represents the input for a bulk price update
type BulkPriceUpdateInput struct {
	ProductIDs []uuid.UUID
	Action     enum.BulkPriceAction
	Value      decimal.Decimal
	ValueType  enum.BulkValueType
	Reason     string
	ChangedBy  uuid.UUID
}

// BulkPriceUpdateResult summarises a completed bulk update
type BulkPriceUpdateResult struct {
	UpdatedCount int             `json:"updated_count"`
	Products     []entity.Product `json:"products"`
}

// BulkPriceUpdate applies the same price operation to many products. Every
// product update and its history row are written in a single transaction:
// partial bulk updates cannot happen. Computed prices are floored at zero.
func (s *PricingService) BulkPriceUpdate(ctx context.Context, input *BulkPriceUpdateInput) (*BulkPriceUpdateResult, error) {
	if len(input.ProductIDs) == 0 {
		return nil, apperror.NewBadRequestError("productIds cannot be empty")
	}
	if !input.Action.IsValid() {
		return nil, apperror.NewBadRequestError("invalid action")
	}
	if !input.ValueType.IsValid() {
		return nil, apperror.NewBadRequestError("invalid valueType")
	}
	if input.Value.IsNegative() {
		return nil, apperror.NewBadRequestError("value cannot be negative")
	}

	products, err := s.productRepo.GetByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(input.ProductIDs) {
		return nil, apperror.NewNotFoundError("Product")
	}

	updates := make([]repository.PriceUpdate, 0, len(products))
	for i := range products {
		product := &products[i]
		oldPrice := product.PriceHT
		newPrice := applyBulkAction(oldPrice, input.Action, input.Value, input.ValueType)

		product.PriceHT = newPrice
		// T2 follows the same operation so the tiers stay consistent
		product.PriceHTT2 = applyBulkAction(product.PriceHTT2, input.Action, input.Value, input.ValueType)

		updates = append(updates, repository.PriceUpdate{
			Product: product,
			History: &entity.PriceHistory{
				ProductID:  product.ID,
				OldPriceHT: oldPrice,
				NewPriceHT: newPrice,
				ChangeType: enum.PriceChangeTypeBulkUpdate,
				Reason:     input.Reason,
				ChangedBy:  input.ChangedBy,
			},
		})
	}

	if err := s.productRepo.ApplyBulkPriceUpdate(ctx, updates); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.ChangedBy, "BULK_PRICE_UPDATE", "Product", nil, map[string]any{
		"count":      len(products),
		"action":     string(input.Action),
		"value":      input.Value.String(),
		"value_type": string(input.ValueType),
		"reason":     input.Reason,
	})

	return &BulkPriceUpdateResult{
		UpdatedCount: len(products),
		Products:     products,
	}, nil
}

// RecordManualPriceChange appends a history row for a manual price edit
func (s *PricingService) RecordManualPriceChange(ctx context.Context, productID uuid.UUID, oldPrice, newPrice decimal.Decimal, reason string, changedBy uuid.UUID) error {
	return s.priceHistoryRepo.Create(ctx, &entity.PriceHistory{
		ProductID:  productID,
		OldPriceHT: oldPrice,
		NewPriceHT: newPrice,
		ChangeType: enum.PriceChangeTypeManual,
		Reason:     reason,
		ChangedBy:  changedBy,
	})
}

func applyBulkAction(price decimal.Decimal, action enum.BulkPriceAction, value decimal.Decimal, valueType enum.BulkValueType) decimal.Decimal {
	var result decimal.Decimal

	switch action {
	case enum.BulkPriceActionSet:
		result = value
	case enum.BulkPriceActionIncrease:
		if valueType == enum.BulkValueTypePercent {
			result = price.Add(price.Mul(value).Div(decimal.NewFromInt(100)))
		} else {
			result = price.Add(value)
		}
	case enum.BulkPriceActionDecrease:
		if valueType == enum.BulkValueTypePercent {
			result = price.Sub(price.Mul(value).Div(decimal.NewFromInt(100)))
		} else {
			result = price.Sub(value)
		}
	default:
		result = price
	}

	if result.IsNegative() {
		return decimal.Zero
	}
	return result.Round(2)
}
