package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	// Create persists the quote and its item snapshot in one transaction
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quote, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// ReplaceItems swaps the full item set and updates the quote totals in
	// one transaction
	ReplaceItems(ctx context.Context, quote *entity.Quote, items []entity.QuoteItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	// TransitionStatus flips the status only when the current status matches
	// from. Returns (false, nil) when another writer got there first.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.QuoteStatus) (bool, error)
	// ConvertToOrder creates the order with its items and stamps the quote
	// CONVERTED in a single transaction. The quote-side update is conditional
	// on the status still being ACCEPTED; (false, nil) means another
	// conversion won the race and no order was created.
	ConvertToOrder(ctx context.Context, quote *entity.Quote, order *entity.Order) (bool, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	ShopID     *uuid.UUID
	SortBy     string
	SortOrder  string
}
