package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).
		Preload("Products", "deleted_at IS NULL").
		Where("id = ?", id).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, params *repository.SupplierFilterParams) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Supplier{})

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(contact_name) LIKE LOWER(?)", search, search)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name asc").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&suppliers).Error

	return suppliers, total, err
}

func (r *supplierRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&entity.Supplier{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}

type supplierProductRepository struct {
	db *gorm.DB
}

// NewSupplierProductRepository creates a new supplier product repository
func NewSupplierProductRepository(db *gorm.DB) repository.SupplierProductRepository {
	return &supplierProductRepository{db: db}
}

func (r *supplierProductRepository) Create(ctx context.Context, sp *entity.SupplierProduct) error {
	return r.db.WithContext(ctx).Create(sp).Error
}

func (r *supplierProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierProduct, error) {
	var sp entity.SupplierProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *supplierProductRepository) Update(ctx context.Context, sp *entity.SupplierProduct) error {
	return r.db.WithContext(ctx).Save(sp).Error
}

func (r *supplierProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SupplierProduct{}, "id = ?", id).Error
}

func (r *supplierProductRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierProduct, error) {
	var products []entity.SupplierProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("supplier_id = ?", supplierID).
		Find(&products).Error
	return products, err
}

type supplierOrderRepository struct {
	db *gorm.DB
}

// NewSupplierOrderRepository creates a new supplier order repository
func NewSupplierOrderRepository(db *gorm.DB) repository.SupplierOrderRepository {
	return &supplierOrderRepository{db: db}
}

func (r *supplierOrderRepository) Create(ctx context.Context, order *entity.SupplierOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *supplierOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	var order entity.SupplierOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *supplierOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	var order entity.SupplierOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Supplier").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *supplierOrderRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) ([]entity.SupplierOrder, int64, error) {
	var orders []entity.SupplierOrder
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.SupplierOrder{}).
		Where("supplier_id = ?", supplierID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at desc").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&orders).Error

	return orders, total, err
}

func (r *supplierOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SupplierOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.SupplierOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ReceiveAndRestock marks the purchase order received and credits stock in
// one transaction.
func (r *supplierOrderRepository) ReceiveAndRestock(ctx context.Context, id uuid.UUID, increments map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.SupplierOrder{}).
			Where("id = ?", id).
			Update("status", enum.SupplierOrderStatusReceived).Error
		if err != nil {
			return err
		}
		for productID, quantity := range increments {
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

type supplierEvaluationRepository struct {
	db *gorm.DB
}

// NewSupplierEvaluationRepository creates a new supplier evaluation repository
func NewSupplierEvaluationRepository(db *gorm.DB) repository.SupplierEvaluationRepository {
	return &supplierEvaluationRepository{db: db}
}

func (r *supplierEvaluationRepository) Create(ctx context.Context, eval *entity.SupplierEvaluation) error {
	return r.db.WithContext(ctx).Create(eval).Error
}

func (r *supplierEvaluationRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.SupplierEvaluation, error) {
	var evaluations []entity.SupplierEvaluation
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at desc").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *supplierEvaluationRepository) AverageRating(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&entity.SupplierEvaluation{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("supplier_id = ?", supplierID).
		Scan(&avg).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal, nil
}
