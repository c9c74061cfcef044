package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// VolumePricingRepository defines the interface for volume pricing data operations
type VolumePricingRepository interface {
	Create(ctx context.Context, vp *entity.VolumePricing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VolumePricing, error)
	Update(ctx context.Context, vp *entity.VolumePricing) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByProduct returns brackets ordered by min_quantity ascending
	ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]entity.VolumePricing, error)
}

// ClientPricingRepository defines the interface for client pricing data operations
type ClientPricingRepository interface {
	Create(ctx context.Context, cp *entity.ClientPricing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ClientPricing, error)
	Update(ctx context.Context, cp *entity.ClientPricing) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.ClientPricing, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.ClientPricing, error)
	// FindActive returns the active negotiated price for (product, user) at
	// the given instant. When several rows match, the most recently valid one
	// wins (ORDER BY valid_from DESC LIMIT 1).
	FindActive(ctx context.Context, productID, userID uuid.UUID, at time.Time) (*entity.ClientPricing, error)
}

// PriceHistoryRepository defines the interface for the append-only price log
type PriceHistoryRepository interface {
	Create(ctx context.Context, ph *entity.PriceHistory) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.PriceHistory, int64, error)
}
