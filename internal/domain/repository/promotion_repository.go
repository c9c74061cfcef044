package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// PromotionRepository defines the interface for promotion data operations
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error)
	// GetByCode matches the uppercased promotion code
	GetByCode(ctx context.Context, code string) (*entity.Promotion, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PromotionFilterParams) ([]entity.Promotion, int64, error)
	// IncrementUsage bumps usage_count only while the usage limit is not
	// reached. Returns (false, nil) when the limit was already exhausted.
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

// PromotionFilterParams contains filtering parameters for promotion queries
type PromotionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ActiveOnly bool
}
