package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) repository.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("CreditNote").
		Preload("Shop").
		Where("id = ?", id).
		First(&ret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) Update(ctx context.Context, ret *entity.Return) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

func (r *returnRepository) List(ctx context.Context, params *repository.ReturnFilterParams) ([]entity.Return, int64, error) {
	var returns []entity.Return
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Return{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ShopID != nil {
		query = query.Where("shop_id = ?", *params.ShopID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	sortOrder := "desc"
	if params.SortOrder == "asc" {
		sortOrder = "asc"
	}

	err := query.
		Preload("Items").
		Preload("Shop").
		Order(sortBy + " " + sortOrder).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&returns).Error

	return returns, total, err
}

// Approve writes the decision, the optional credit note and the stock
// restoration together so a crash cannot leave a half-approved return.
func (r *returnRepository) Approve(ctx context.Context, ret *entity.Return, credit *entity.CreditNote, restock map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ret).Error; err != nil {
			return err
		}
		if credit != nil {
			if err := tx.Create(credit).Error; err != nil {
				return err
			}
		}
		for productID, quantity := range restock {
			err := tx.Model(&entity.Product{}).
				Where("id = ?", productID).
				UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *returnRepository) Stats(ctx context.Context, since time.Time) (*repository.ReturnStats, error) {
	stats := &repository.ReturnStats{
		ByStatus:    make(map[string]int64),
		ByReason:    make(map[string]int64),
		TotalAmount: decimal.Zero,
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&entity.Return{}).
		Where("created_at >= ?", since).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status int
		Count  int64
	}
	err := db.Model(&entity.Return{}).
		Select("status, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[enum.ReturnStatus(row.Status).String()] = row.Count
	}

	var byReason []struct {
		Reason string
		Count  int64
	}
	err = db.Model(&entity.ReturnItem{}).
		Select("return_items.reason, COUNT(*) as count").
		Joins("JOIN returns ON returns.id = return_items.return_id").
		Where("returns.created_at >= ?", since).
		Group("return_items.reason").
		Scan(&byReason).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byReason {
		stats.ByReason[row.Reason] = row.Count
	}

	var totalAmount decimal.NullDecimal
	err = db.Model(&entity.ReturnItem{}).
		Select("COALESCE(SUM(return_items.price_ht * return_items.quantity), 0)").
		Joins("JOIN returns ON returns.id = return_items.return_id").
		Where("returns.created_at >= ?", since).
		Scan(&totalAmount).Error
	if err != nil {
		return nil, err
	}
	if totalAmount.Valid {
		stats.TotalAmount = totalAmount.Decimal
	}

	return stats, nil
}
