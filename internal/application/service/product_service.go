package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles catalog products and stock guards
type ProductService struct {
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	pricingService  *PricingService
	auditService    *AuditService
	logger          *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	pricingService *PricingService,
	auditService *AuditService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		pricingService:  pricingService,
		auditService:    auditService,
		logger:          logger,
	}
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	Name          string
	Description   *string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	PriceHT       decimal.Decimal
	PriceHTT2     decimal.Decimal
	TVARate       decimal.Decimal
	Stock         int
	StockAlert    int
	Unit          string
	Origin        *string
	CreatedBy     uuid.UUID
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}
	if input.PriceHT.IsNegative() || input.PriceHTT2.IsNegative() {
		return nil, apperror.NewBadRequestError("price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("stock cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}
	if input.SubCategoryID != nil {
		subCategory, err := s.subCategoryRepo.GetByID(ctx, *input.SubCategoryID)
		if err != nil {
			return nil, err
		}
		if subCategory == nil {
			return nil, apperror.NewNotFoundError("Sub-category")
		}
	}

	product := &entity.Product{
		Name:          input.Name,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		PriceHT:       input.PriceHT,
		PriceHTT2:     input.PriceHTT2,
		TVARate:       input.TVARate,
		Stock:         input.Stock,
		StockAlert:    input.StockAlert,
		Unit:          input.Unit,
		Origin:        input.Origin,
		IsActive:      true,
	}
	if product.Unit == "" {
		product.Unit = "kg"
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Product", &product.ID, map[string]any{
		"name": product.Name,
	})
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProductsInput represents the input for listing products
type ListProductsInput struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	LowStock      bool
	ActiveOnly    bool
	SortBy        string
	SortOrder     string
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, input *ListProductsInput) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, &repository.ProductFilterParams{
		Pagination:    input.Pagination,
		Search:        input.Search,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		LowStock:      input.LowStock,
		ActiveOnly:    input.ActiveOnly,
		SortBy:        input.SortBy,
		SortOrder:     input.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the input for updating a product
type UpdateProductInput struct {
	ID            uuid.UUID
	Name          *string
	Description   *string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	PriceHT       *decimal.Decimal
	PriceHTT2     *decimal.Decimal
	TVARate       *decimal.Decimal
	Stock         *int
	StockAlert    *int
	Unit          *string
	Origin        *string
	IsActive      *bool
	PriceReason   string
	UpdatedBy     uuid.UUID
}

// UpdateProduct updates an existing product. A base price change appends a
// MANUAL price history row.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	oldPrice := product.PriceHT
	priceChanged := false

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.SubCategoryID != nil {
		product.SubCategoryID = input.SubCategoryID
	}
	if input.PriceHT != nil && !input.PriceHT.Equal(product.PriceHT) {
		if input.PriceHT.IsNegative() {
			return nil, apperror.NewBadRequestError("price cannot be negative")
		}
		product.PriceHT = *input.PriceHT
		priceChanged = true
	}
	if input.PriceHTT2 != nil {
		product.PriceHTT2 = *input.PriceHTT2
	}
	if input.TVARate != nil {
		product.TVARate = *input.TVARate
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Origin != nil {
		product.Origin = input.Origin
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if priceChanged {
		err := s.pricingService.RecordManualPriceChange(ctx, product.ID, oldPrice, product.PriceHT, input.PriceReason, input.UpdatedBy)
		if err != nil {
			return nil, err
		}
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Product", &product.ID, nil)
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "Product", &id, nil)
	return nil
}

// GetLowStockProducts lists active products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// ValidateStock checks that a product can cover the requested quantity.
// A negative stored stock is reported as a data integrity problem, not a
// plain insufficient-stock failure.
func (s *ProductService) ValidateStock(ctx context.Context, productID uuid.UUID, requested int) error {
	if requested <= 0 {
		return apperror.NewBadRequestError("requested quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !product.IsActive {
		return apperror.NewBadRequestError(fmt.Sprintf("Product %s is not active", product.Name))
	}
	if product.Stock < 0 {
		s.logger.Warn("negative stock detected",
			zap.String("product_id", product.ID.String()),
			zap.Int("stock", product.Stock),
		)
		return apperror.NewBadRequestError(fmt.Sprintf("Product %s has inconsistent stock data", product.Name))
	}
	if product.Stock < requested {
		return apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for %s: %d available, %d requested", product.Name, product.Stock, requested))
	}
	return nil
}

// ValidateStockOperation checks that applying delta to the current stock
// would not drive it negative.
func (s *ProductService) ValidateStockOperation(ctx context.Context, productID uuid.UUID, delta int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if product.Stock+delta < 0 {
		return apperror.NewBadRequestError(fmt.Sprintf("Operation would drive stock of %s below zero", product.Name))
	}
	return nil
}

// AdjustStock applies a signed stock delta, as recorded during inventory
// counts or delivery intakes. Decrements go through the conditional update,
// so a concurrent order cannot push the stock negative.
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, adjustedBy uuid.UUID) (*entity.Product, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("stock delta must be non-zero")
	}
	if err := s.ValidateStockOperation(ctx, productID, delta); err != nil {
		return nil, err
	}

	if delta > 0 {
		if err := s.productRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{productID: delta}); err != nil {
			return nil, err
		}
	} else {
		ok, err := s.productRepo.AtomicDecrementStock(ctx, productID, -delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			// stock moved between the validation read and the update
			return nil, apperror.NewConflictError("Stock changed concurrently, adjustment not applied")
		}
	}

	s.auditService.Record(ctx, &adjustedBy, "ADJUST_STOCK", "Product", &productID, map[string]any{
		"delta": delta,
	})
	return s.GetProduct(ctx, productID)
}
