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
	"github.com/primeurdirect/primeur-api/pkg/reference"
	"github.com/shopspring/decimal"
)

// Purchases carry a flat 20% VAT rate
var supplierVATRate = decimal.NewFromInt(20)

// SupplierService handles suppliers, their catalogs, purchase orders and
// evaluations
type SupplierService struct {
	supplierRepo        repository.SupplierRepository
	supplierProductRepo repository.SupplierProductRepository
	supplierOrderRepo   repository.SupplierOrderRepository
	evaluationRepo      repository.SupplierEvaluationRepository
	productRepo         repository.ProductRepository
	auditService        *AuditService
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	supplierProductRepo repository.SupplierProductRepository,
	supplierOrderRepo repository.SupplierOrderRepository,
	evaluationRepo repository.SupplierEvaluationRepository,
	productRepo repository.ProductRepository,
	auditService *AuditService,
) *SupplierService {
	return &SupplierService{
		supplierRepo:        supplierRepo,
		supplierProductRepo: supplierProductRepo,
		supplierOrderRepo:   supplierOrderRepo,
		evaluationRepo:      evaluationRepo,
		productRepo:         productRepo,
		auditService:        auditService,
	}
}

// CreateSupplierInput represents the input for creating a supplier
type CreateSupplierInput struct {
	Name        string
	Email       *string
	Phone       *string
	Address     *string
	SIRET       *string
	ContactName *string
	CreatedBy   uuid.UUID
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	supplier := &entity.Supplier{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		SIRET:       input.SIRET,
		ContactName: input.ContactName,
		Rating:      decimal.Zero,
		IsActive:    true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Supplier", &supplier.ID, map[string]any{
		"name": supplier.Name,
	})
	return supplier, nil
}

// GetSupplier retrieves a supplier with its catalog
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliersInput represents the input for listing suppliers
type ListSuppliersInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}

// ListSuppliers lists suppliers with filtering
func (s *SupplierService) ListSuppliers(ctx context.Context, input *ListSuppliersInput) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, &repository.SupplierFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		ActiveOnly: input.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplierInput represents the input for updating a supplier
type UpdateSupplierInput struct {
	ID          uuid.UUID
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	SIRET       *string
	ContactName *string
	IsActive    *bool
	UpdatedBy   uuid.UUID
}

// UpdateSupplier updates an existing supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.SIRET != nil {
		supplier.SIRET = input.SIRET
	}
	if input.ContactName != nil {
		supplier.ContactName = input.ContactName
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}
	supplier.Products = nil

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Supplier", &supplier.ID, nil)
	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "Supplier", &id, nil)
	return nil
}

// AddSupplierProductInput represents the input for a catalog entry
type AddSupplierProductInput struct {
	SupplierID      uuid.UUID
	ProductID       uuid.UUID
	SupplierRef     *string
	PurchasePriceHT decimal.Decimal
	CreatedBy       uuid.UUID
}

// AddSupplierProduct links a catalog product to a supplier
func (s *SupplierService) AddSupplierProduct(ctx context.Context, input *AddSupplierProductInput) (*entity.SupplierProduct, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.PurchasePriceHT.IsNegative() {
		return nil, apperror.NewBadRequestError("purchase price cannot be negative")
	}

	sp := &entity.SupplierProduct{
		SupplierID:      input.SupplierID,
		ProductID:       input.ProductID,
		SupplierRef:     input.SupplierRef,
		PurchasePriceHT: input.PurchasePriceHT,
		IsActive:        true,
	}
	if err := s.supplierProductRepo.Create(ctx, sp); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "SupplierProduct", &sp.ID, nil)
	return sp, nil
}

// RemoveSupplierProduct removes a catalog entry
func (s *SupplierService) RemoveSupplierProduct(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	sp, err := s.supplierProductRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp == nil {
		return apperror.NewNotFoundError("Supplier product")
	}
	if err := s.supplierProductRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "SupplierProduct", &id, nil)
	return nil
}

// ListSupplierProducts lists a supplier's catalog
func (s *SupplierService) ListSupplierProducts(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierProduct, error) {
	return s.supplierProductRepo.ListBySupplier(ctx, supplierID)
}

// SupplierOrderItemInput represents one purchase order line
type SupplierOrderItemInput struct {
	ProductID   uuid.UUID
	Quantity    int
	UnitPriceHT decimal.Decimal
}

// CreateSupplierOrderInput represents the input for a purchase order
type CreateSupplierOrderInput struct {
	SupplierID   uuid.UUID
	ExpectedDate *time.Time
	Items        []SupplierOrderItemInput
	CreatedBy    uuid.UUID
}

// CreateSupplierOrder creates a purchase order in DRAFT with totals computed
// at the flat purchase VAT rate
func (s *SupplierService) CreateSupplierOrder(ctx context.Context, input *CreateSupplierOrderInput) (*entity.SupplierOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("a purchase order requires at least one item")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	totalHT := decimal.Zero
	items := make([]entity.SupplierOrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("item quantity must be positive")
		}
		if in.UnitPriceHT.IsNegative() {
			return nil, apperror.NewBadRequestError("unit price cannot be negative")
		}

		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}

		lineHT := in.UnitPriceHT.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
		items = append(items, entity.SupplierOrderItem{
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			UnitPriceHT: in.UnitPriceHT,
			TotalHT:     lineHT,
		})
		totalHT = totalHT.Add(lineHT)
	}

	totalTTC := totalHT.Add(totalHT.Mul(supplierVATRate).Div(decimal.NewFromInt(100))).Round(2)

	order := &entity.SupplierOrder{
		SupplierID:   input.SupplierID,
		Status:       enum.SupplierOrderStatusDraft,
		TotalHT:      totalHT,
		TotalTTC:     totalTTC,
		ExpectedDate: input.ExpectedDate,
		CreatedByID:  input.CreatedBy,
		Items:        items,
	}

	if err := reference.CreateWithRetry(reference.SupplierOrderPrefix, time.Now(), func(number string) error {
		order.OrderNumber = number
		return s.supplierOrderRepo.Create(ctx, order)
	}); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "SupplierOrder", &order.ID, map[string]any{
		"number": order.OrderNumber,
	})
	return s.supplierOrderRepo.GetWithItems(ctx, order.ID)
}

// GetSupplierOrder retrieves a purchase order with its items
func (s *SupplierService) GetSupplierOrder(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.supplierOrderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	return order, nil
}

// ListSupplierOrders lists purchase orders for a supplier
func (s *SupplierService) ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SupplierOrder], error) {
	orders, total, err := s.supplierOrderRepo.ListBySupplier(ctx, supplierID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// MarkSupplierOrderOrdered flips DRAFT to ORDERED
func (s *SupplierService) MarkSupplierOrderOrdered(ctx context.Context, id uuid.UUID, updatedBy uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.supplierOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	if order.Status != enum.SupplierOrderStatusDraft {
		return nil, apperror.NewConflictError("Only draft purchase orders can be sent")
	}

	if err := s.supplierOrderRepo.UpdateStatus(ctx, id, enum.SupplierOrderStatusOrdered); err != nil {
		return nil, err
	}
	order.Status = enum.SupplierOrderStatusOrdered

	s.auditService.Record(ctx, &updatedBy, "ORDER", "SupplierOrder", &order.ID, nil)
	return order, nil
}

// ReceiveSupplierOrder marks an ORDERED purchase order RECEIVED and credits
// stock for every delivered line in one transaction
func (s *SupplierService) ReceiveSupplierOrder(ctx context.Context, id uuid.UUID, receivedBy uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.supplierOrderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	if order.Status != enum.SupplierOrderStatusOrdered {
		return nil, apperror.NewConflictError("Only ordered purchase orders can be received")
	}

	increments := make(map[uuid.UUID]int, len(order.Items))
	for _, item := range order.Items {
		increments[item.ProductID] += item.Quantity
	}

	if err := s.supplierOrderRepo.ReceiveAndRestock(ctx, id, increments); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &receivedBy, "RECEIVE", "SupplierOrder", &order.ID, nil)
	return s.supplierOrderRepo.GetWithItems(ctx, id)
}

// CancelSupplierOrder cancels a purchase order that has not been received
func (s *SupplierService) CancelSupplierOrder(ctx context.Context, id uuid.UUID, cancelledBy uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.supplierOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	if order.Status == enum.SupplierOrderStatusReceived || order.Status == enum.SupplierOrderStatusCancelled {
		return nil, apperror.NewConflictError("Purchase order can no longer be cancelled")
	}

	if err := s.supplierOrderRepo.UpdateStatus(ctx, id, enum.SupplierOrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = enum.SupplierOrderStatusCancelled

	s.auditService.Record(ctx, &cancelledBy, "CANCEL", "SupplierOrder", &order.ID, nil)
	return order, nil
}

// EvaluateSupplierInput represents the input for rating a supplier
type EvaluateSupplierInput struct {
	SupplierID uuid.UUID
	UserID     uuid.UUID
	Rating     int
	Comment    *string
}

// EvaluateSupplier records a rating and recomputes the supplier's average
func (s *SupplierService) EvaluateSupplier(ctx context.Context, input *EvaluateSupplierInput) (*entity.SupplierEvaluation, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperror.NewBadRequestError("rating must be between 1 and 5")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	eval := &entity.SupplierEvaluation{
		SupplierID: input.SupplierID,
		UserID:     input.UserID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.evaluationRepo.Create(ctx, eval); err != nil {
		return nil, err
	}

	avg, err := s.evaluationRepo.AverageRating(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.UpdateRating(ctx, input.SupplierID, avg.Round(2)); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UserID, "EVALUATE", "Supplier", &input.SupplierID, map[string]any{
		"rating": input.Rating,
	})
	return eval, nil
}

// ListSupplierEvaluations lists the ratings left for a supplier
func (s *SupplierService) ListSupplierEvaluations(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierEvaluation, error) {
	return s.evaluationRepo.ListBySupplier(ctx, supplierID)
}
