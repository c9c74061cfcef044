package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// CountActiveByCategory counts non-deleted products attached to a category
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// AtomicDecrementStock decrements stock only if sufficient quantity remains.
	// Returns (false, nil) when stock was insufficient.
	AtomicDecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicDecrementBatch decrements stock for multiple products in one
	// transaction; any insufficient product rolls the whole batch back and is
	// reported in failedIDs.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch restores stock for multiple products (cancellations, returns)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
	// ApplyBulkPriceUpdate writes every product price change and its history
	// row in a single transaction. Partial bulk updates are not possible.
	ApplyBulkPriceUpdate(ctx context.Context, updates []PriceUpdate) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	LowStock      bool
	ActiveOnly    bool
	SortBy        string
	SortOrder     string
}

// PriceUpdate carries one product price change for a bulk update
type PriceUpdate struct {
	Product *entity.Product
	History *entity.PriceHistory
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// GetByName looks a category up by exact name among non-deleted rows
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// GetByNameIncludingDeleted also matches soft-deleted rows, used for
	// restore-on-recreate semantics
	GetByNameIncludingDeleted(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// SoftDeleteCascade soft-deletes the category and all its sub-categories
	// in one transaction
	SoftDeleteCascade(ctx context.Context, id uuid.UUID) error
	// Restore clears deletedAt and reactivates the category
	Restore(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}

// SubCategoryRepository defines the interface for sub-category data operations
type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *entity.SubCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error)
	Update(ctx context.Context, subCategory *entity.SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.SubCategory, error)
}
