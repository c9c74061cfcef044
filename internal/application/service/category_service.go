package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/pagination"
)

// CategoryService handles categories and sub-categories
type CategoryService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	productRepo     repository.ProductRepository
	auditService    *AuditService
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	productRepo repository.ProductRepository,
	auditService *AuditService,
) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		productRepo:     productRepo,
		auditService:    auditService,
	}
}

// CreateCategoryInput represents the input for creating a category
type CreateCategoryInput struct {
	Name        string
	Description *string
	CreatedBy   uuid.UUID
}

// CreateCategory creates a category. When a soft-deleted category with the
// same name exists, that row is restored (same id) instead of creating a
// duplicate.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	existing, err := s.categoryRepo.GetByNameIncludingDeleted(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.DeletedAt.Valid {
			return nil, apperror.NewConflictError("Category name already exists")
		}
		// Restore the soft-deleted row rather than creating a twin
		if err := s.categoryRepo.Restore(ctx, existing.ID); err != nil {
			return nil, err
		}
		restored, err := s.categoryRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		s.auditService.Record(ctx, &input.CreatedBy, "RESTORE", "Category", &existing.ID, map[string]any{
			"name": input.Name,
		})
		return restored, nil
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "Category", &category.ID, map[string]any{
		"name": category.Name,
	})
	return category, nil
}

// GetCategory retrieves a category with its sub-categories
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with optional name search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategoryInput represents the input for updating a category
type UpdateCategoryInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	IsActive    *bool
	UpdatedBy   uuid.UUID
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != nil && *input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category name already exists")
		}
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "Category", &category.ID, nil)
	return category, nil
}

// DeleteCategory soft-deletes a category and cascades to its sub-categories.
// Deletion is blocked while non-deleted products are still attached.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Category still has attached products")
	}

	if err := s.categoryRepo.SoftDeleteCascade(ctx, id); err != nil {
		return err
	}

	s.auditService.Record(ctx, &deletedBy, "DELETE", "Category", &id, map[string]any{
		"name": category.Name,
	})
	return nil
}

// CreateSubCategoryInput represents the input for creating a sub-category
type CreateSubCategoryInput struct {
	CategoryID uuid.UUID
	Name       string
	CreatedBy  uuid.UUID
}

// CreateSubCategory creates a sub-category under an existing category
func (s *CategoryService) CreateSubCategory(ctx context.Context, input *CreateSubCategoryInput) (*entity.SubCategory, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	subCategory := &entity.SubCategory{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		IsActive:   true,
	}
	if err := s.subCategoryRepo.Create(ctx, subCategory); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.CreatedBy, "CREATE", "SubCategory", &subCategory.ID, nil)
	return subCategory, nil
}

// UpdateSubCategoryInput represents the input for updating a sub-category
type UpdateSubCategoryInput struct {
	ID        uuid.UUID
	Name      *string
	IsActive  *bool
	UpdatedBy uuid.UUID
}

// UpdateSubCategory updates a sub-category
func (s *CategoryService) UpdateSubCategory(ctx context.Context, input *UpdateSubCategoryInput) (*entity.SubCategory, error) {
	subCategory, err := s.subCategoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, apperror.NewNotFoundError("Sub-category")
	}

	if input.Name != nil {
		subCategory.Name = *input.Name
	}
	if input.IsActive != nil {
		subCategory.IsActive = *input.IsActive
	}

	if err := s.subCategoryRepo.Update(ctx, subCategory); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &input.UpdatedBy, "UPDATE", "SubCategory", &subCategory.ID, nil)
	return subCategory, nil
}

// DeleteSubCategory soft-deletes a sub-category
func (s *CategoryService) DeleteSubCategory(ctx context.Context, id uuid.UUID, deletedBy uuid.UUID) error {
	subCategory, err := s.subCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if subCategory == nil {
		return apperror.NewNotFoundError("Sub-category")
	}
	if err := s.subCategoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, &deletedBy, "DELETE", "SubCategory", &id, nil)
	return nil
}
