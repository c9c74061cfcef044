package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func TestValidateStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Abricot", "3.20", "3.00", 8)

	t.Run("covered request passes", func(t *testing.T) {
		require.NoError(t, env.productService.ValidateStock(ctx, product.ID, 8))
	})

	t.Run("shortfall names the product and the counts", func(t *testing.T) {
		err := env.productService.ValidateStock(ctx, product.ID, 9)
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Insufficient stock for Abricot: 8 available, 9 requested", appErr.Message)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		err := env.productService.ValidateStock(ctx, product.ID, 0)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		err := env.productService.ValidateStock(ctx, uuid.New(), 1)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	t.Run("inactive product rejected", func(t *testing.T) {
		inactive := env.createProduct(t, "Mirabelle", "5.00", "4.70", 20)
		require.NoError(t, env.db.Model(inactive).Update("is_active", false).Error)

		err := env.productService.ValidateStock(ctx, inactive.ID, 1)
		require.Error(t, err)
		assert.Equal(t, "Product Mirabelle is not active", apperror.GetAppError(err).Message)
	})

	t.Run("negative stored stock is an integrity failure", func(t *testing.T) {
		broken := env.createProduct(t, "Coing", "2.50", "2.30", 10)
		require.NoError(t, env.db.Model(broken).Update("stock", -3).Error)

		err := env.productService.ValidateStock(ctx, broken.ID, 1)
		require.Error(t, err)
		assert.Equal(t, "Product Coing has inconsistent stock data", apperror.GetAppError(err).Message)
	})
}

func TestAdjustStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	t.Run("positive delta raises stock", func(t *testing.T) {
		product := env.createProduct(t, "Poire", "2.80", "2.60", 10)

		updated, err := env.productService.AdjustStock(ctx, product.ID, 15, actor)
		require.NoError(t, err)
		assert.Equal(t, 25, updated.Stock)
	})

	t.Run("negative delta lowers stock", func(t *testing.T) {
		product := env.createProduct(t, "Prune", "3.10", "2.90", 10)

		updated, err := env.productService.AdjustStock(ctx, product.ID, -4, actor)
		require.NoError(t, err)
		assert.Equal(t, 6, updated.Stock)
	})

	t.Run("delta below available stock rejected", func(t *testing.T) {
		product := env.createProduct(t, "Figue", "6.50", "6.10", 3)

		_, err := env.productService.AdjustStock(ctx, product.ID, -4, actor)
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Operation would drive stock of Figue below zero", appErr.Message)
		assert.Equal(t, 3, env.productStock(t, product.ID))
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		product := env.createProduct(t, "Datte", "8.00", "7.50", 5)

		_, err := env.productService.AdjustStock(ctx, product.ID, 0, actor)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := env.productService.AdjustStock(ctx, uuid.New(), 5, actor)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}
