package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReturnRepository defines the interface for return data operations
type ReturnRepository interface {
	// Create persists the return and its items in one transaction
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	Update(ctx context.Context, ret *entity.Return) error
	List(ctx context.Context, params *ReturnFilterParams) ([]entity.Return, int64, error)
	// Approve marks the return approved, optionally issues the credit note
	// and restocks the returned quantities, all in one transaction
	Approve(ctx context.Context, ret *entity.Return, credit *entity.CreditNote, restock map[uuid.UUID]int) error
	Stats(ctx context.Context, since time.Time) (*ReturnStats, error)
}

// ReturnFilterParams contains filtering parameters for return queries
type ReturnFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ReturnStatus
	ShopID     *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ReturnStats aggregates return activity for the stats endpoint
type ReturnStats struct {
	Total       int64               `json:"total"`
	ByStatus    map[string]int64    `json:"by_status"`
	ByReason    map[string]int64    `json:"by_reason"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}
