package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	t.Run("duplicate active name rejected", func(t *testing.T) {
		_, err := env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "Fruits", CreatedBy: actor})
		require.NoError(t, err)

		_, err = env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "fruits", CreatedBy: actor})
		require.Error(t, err)
		assert.Equal(t, "Category name already exists", apperror.GetAppError(err).Message)
	})

	t.Run("recreating a deleted category restores the original row", func(t *testing.T) {
		created, err := env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "Agrumes", CreatedBy: actor})
		require.NoError(t, err)

		sub, err := env.categoryService.CreateSubCategory(ctx, &CreateSubCategoryInput{
			CategoryID: created.ID,
			Name:       "Citrons",
			CreatedBy:  actor,
		})
		require.NoError(t, err)

		require.NoError(t, env.categoryService.DeleteCategory(ctx, created.ID, actor))

		deleted, err := env.categoryService.GetCategory(ctx, created.ID)
		require.Error(t, err)
		assert.Nil(t, deleted)

		restored, err := env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "Agrumes", CreatedBy: actor})
		require.NoError(t, err)
		assert.Equal(t, created.ID, restored.ID)
		assert.True(t, restored.IsActive)

		// the cascade-deleted sub-category came back with its parent
		var storedSub entity.SubCategory
		require.NoError(t, env.db.First(&storedSub, "id = ?", sub.ID).Error)
		assert.Equal(t, "Citrons", storedSub.Name)
	})
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	t.Run("blocked while products are attached", func(t *testing.T) {
		category, err := env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "Legumes", CreatedBy: actor})
		require.NoError(t, err)

		product := env.createProduct(t, "Navet", "1.20", "1.10", 10)
		require.NoError(t, env.db.Model(product).Update("category_id", category.ID).Error)

		err = env.categoryService.DeleteCategory(ctx, category.ID, actor)
		require.Error(t, err)
		assert.Equal(t, "Category still has attached products", apperror.GetAppError(err).Message)

		// once the product is gone the category can be deleted
		require.NoError(t, env.db.Delete(product).Error)
		require.NoError(t, env.categoryService.DeleteCategory(ctx, category.ID, actor))
	})

	t.Run("cascades to sub-categories", func(t *testing.T) {
		category, err := env.categoryService.CreateCategory(ctx, &CreateCategoryInput{Name: "Herbes", CreatedBy: actor})
		require.NoError(t, err)
		sub, err := env.categoryService.CreateSubCategory(ctx, &CreateSubCategoryInput{
			CategoryID: category.ID,
			Name:       "Aromates",
			CreatedBy:  actor,
		})
		require.NoError(t, err)

		require.NoError(t, env.categoryService.DeleteCategory(ctx, category.ID, actor))

		var count int64
		require.NoError(t, env.db.Model(&entity.SubCategory{}).Where("id = ?", sub.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := env.categoryService.DeleteCategory(ctx, uuid.New(), actor)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}
