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

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Preload("SubCategories", "deleted_at IS NULL").
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByNameIncludingDeleted(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("LOWER(name) = LOWER(?)", name).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SoftDeleteCascade soft-deletes the category together with its sub-categories
// so that neither reappears in listings independently.
func (r *categoryRepository) SoftDeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&entity.SubCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Category{}, "id = ?", id).Error
	})
}

func (r *categoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Model(&entity.Category{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at": nil,
				"is_active":  true,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
		return tx.Unscoped().
			Model(&entity.SubCategory{}).
			Where("category_id = ?", id).
			Updates(map[string]interface{}{
				"deleted_at": nil,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})

	if search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("SubCategories", "deleted_at IS NULL").
		Order("name asc").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&categories).Error

	return categories, total, err
}

type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository creates a new sub-category repository
func NewSubCategoryRepository(db *gorm.DB) repository.SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) Create(ctx context.Context, subCategory *entity.SubCategory) error {
	return r.db.WithContext(ctx).Create(subCategory).Error
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SubCategory, error) {
	var subCategory entity.SubCategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subCategory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepository) Update(ctx context.Context, subCategory *entity.SubCategory) error {
	return r.db.WithContext(ctx).Save(subCategory).Error
}

func (r *subCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SubCategory{}, "id = ?", id).Error
}

func (r *subCategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.SubCategory, error) {
	var subCategories []entity.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name asc").
		Find(&subCategories).Error
	return subCategories, err
}
