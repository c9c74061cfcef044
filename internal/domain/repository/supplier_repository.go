package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SupplierFilterParams) ([]entity.Supplier, int64, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error
}

// SupplierFilterParams contains filtering parameters for supplier queries
type SupplierFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}

// SupplierProductRepository defines the interface for supplier catalog entries
type SupplierProductRepository interface {
	Create(ctx context.Context, sp *entity.SupplierProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierProduct, error)
	Update(ctx context.Context, sp *entity.SupplierProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierProduct, error)
}

// SupplierOrderRepository defines the interface for supplier purchase orders
type SupplierOrderRepository interface {
	// Create persists the purchase order and its items in one transaction
	Create(ctx context.Context, order *entity.SupplierOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) ([]entity.SupplierOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SupplierOrderStatus) error
	// ReceiveAndRestock marks the order RECEIVED and increments stock for its
	// items in one transaction
	ReceiveAndRestock(ctx context.Context, id uuid.UUID, increments map[uuid.UUID]int) error
}

// SupplierEvaluationRepository defines the interface for supplier evaluations
type SupplierEvaluationRepository interface {
	Create(ctx context.Context, eval *entity.SupplierEvaluation) error
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierEvaluation, error)
	// AverageRating recomputes the arithmetic mean of all ratings for the supplier
	AverageRating(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
}
