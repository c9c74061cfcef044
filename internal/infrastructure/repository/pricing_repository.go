package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"gorm.io/gorm"
)

type volumePricingRepository struct {
	db *gorm.DB
}

// NewVolumePricingRepository creates a new volume pricing repository
func NewVolumePricingRepository(db *gorm.DB) repository.VolumePricingRepository {
	return &volumePricingRepository{db: db}
}

func (r *volumePricingRepository) Create(ctx context.Context, vp *entity.VolumePricing) error {
	return r.db.WithContext(ctx).Create(vp).Error
}

func (r *volumePricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VolumePricing, error) {
	var vp entity.VolumePricing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vp, nil
}

func (r *volumePricingRepository) Update(ctx context.Context, vp *entity.VolumePricing) error {
	return r.db.WithContext(ctx).Save(vp).Error
}

func (r *volumePricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.VolumePricing{}, "id = ?", id).Error
}

func (r *volumePricingRepository) ListByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]entity.VolumePricing, error) {
	var brackets []entity.VolumePricing
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("min_quantity asc").Find(&brackets).Error
	return brackets, err
}

type clientPricingRepository struct {
	db *gorm.DB
}

// NewClientPricingRepository creates a new client pricing repository
func NewClientPricingRepository(db *gorm.DB) repository.ClientPricingRepository {
	return &clientPricingRepository{db: db}
}

func (r *clientPricingRepository) Create(ctx context.Context, cp *entity.ClientPricing) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *clientPricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ClientPricing, error) {
	var cp entity.ClientPricing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

func (r *clientPricingRepository) Update(ctx context.Context, cp *entity.ClientPricing) error {
	return r.db.WithContext(ctx).Save(cp).Error
}

func (r *clientPricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ClientPricing{}, "id = ?", id).Error
}

func (r *clientPricingRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]entity.ClientPricing, error) {
	var prices []entity.ClientPricing
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("valid_from desc").
		Find(&prices).Error
	return prices, err
}

func (r *clientPricingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.ClientPricing, error) {
	var prices []entity.ClientPricing
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("valid_from desc").
		Find(&prices).Error
	return prices, err
}

// FindActive picks the most recently valid row when windows overlap.
func (r *clientPricingRepository) FindActive(ctx context.Context, productID, userID uuid.UUID, at time.Time) (*entity.ClientPricing, error) {
	var cp entity.ClientPricing
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ? AND is_active = ?", productID, userID, true).
		Where("valid_from <= ?", at).
		Where("valid_until IS NULL OR valid_until >= ?", at).
		Order("valid_from desc").
		Limit(1).
		First(&cp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

type priceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *gorm.DB) repository.PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

func (r *priceHistoryRepository) Create(ctx context.Context, ph *entity.PriceHistory) error {
	return r.db.WithContext(ctx).Create(ph).Error
}

func (r *priceHistoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.PriceHistory, int64, error) {
	var history []entity.PriceHistory
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.PriceHistory{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at desc").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&history).Error

	return history, total, err
}
