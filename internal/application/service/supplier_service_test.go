package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func (e *testEnv) createSupplier(t *testing.T, ctx context.Context, name string) *entity.Supplier {
	t.Helper()
	supplier, err := e.supplierService.CreateSupplier(ctx, &CreateSupplierInput{
		Name:      name,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	return supplier
}

func TestSupplierOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := uuid.New()

	supplier := env.createSupplier(t, ctx, "Marche de Rungis")
	product := env.createProduct(t, "Oignon jaune", "0.80", "0.75", 20)

	t.Run("totals computed at the flat purchase VAT rate", func(t *testing.T) {
		order, err := env.supplierService.CreateSupplierOrder(ctx, &CreateSupplierOrderInput{
			SupplierID: supplier.ID,
			Items: []SupplierOrderItemInput{
				{ProductID: product.ID, Quantity: 100, UnitPriceHT: dec(t, "0.50")},
			},
			CreatedBy: buyer,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(order.OrderNumber, "PO-"))
		assert.Equal(t, enum.SupplierOrderStatusDraft, order.Status)
		// 50.00 HT + 20% VAT
		assert.True(t, order.TotalHT.Equal(dec(t, "50.00")))
		assert.True(t, order.TotalTTC.Equal(dec(t, "60.00")))
	})

	t.Run("receiving credits stock once the order was placed", func(t *testing.T) {
		order, err := env.supplierService.CreateSupplierOrder(ctx, &CreateSupplierOrderInput{
			SupplierID: supplier.ID,
			Items: []SupplierOrderItemInput{
				{ProductID: product.ID, Quantity: 30, UnitPriceHT: dec(t, "0.50")},
			},
			CreatedBy: buyer,
		})
		require.NoError(t, err)

		// draft orders cannot be received
		_, err = env.supplierService.ReceiveSupplierOrder(ctx, order.ID, buyer)
		require.Error(t, err)
		assert.Equal(t, "Only ordered purchase orders can be received", apperror.GetAppError(err).Message)

		_, err = env.supplierService.MarkSupplierOrderOrdered(ctx, order.ID, buyer)
		require.NoError(t, err)

		stockBefore := env.productStock(t, product.ID)
		received, err := env.supplierService.ReceiveSupplierOrder(ctx, order.ID, buyer)
		require.NoError(t, err)
		assert.Equal(t, enum.SupplierOrderStatusReceived, received.Status)
		assert.Equal(t, stockBefore+30, env.productStock(t, product.ID))

		// received orders are final
		_, err = env.supplierService.CancelSupplierOrder(ctx, order.ID, buyer)
		require.Error(t, err)
		_, err = env.supplierService.ReceiveSupplierOrder(ctx, order.ID, buyer)
		require.Error(t, err)
	})

	t.Run("cancelling a draft order", func(t *testing.T) {
		order, err := env.supplierService.CreateSupplierOrder(ctx, &CreateSupplierOrderInput{
			SupplierID: supplier.ID,
			Items: []SupplierOrderItemInput{
				{ProductID: product.ID, Quantity: 10, UnitPriceHT: dec(t, "0.40")},
			},
			CreatedBy: buyer,
		})
		require.NoError(t, err)

		stockBefore := env.productStock(t, product.ID)
		cancelled, err := env.supplierService.CancelSupplierOrder(ctx, order.ID, buyer)
		require.NoError(t, err)
		assert.Equal(t, enum.SupplierOrderStatusCancelled, cancelled.Status)
		assert.Equal(t, stockBefore, env.productStock(t, product.ID))
	})

	t.Run("empty purchase order rejected", func(t *testing.T) {
		_, err := env.supplierService.CreateSupplierOrder(ctx, &CreateSupplierOrderInput{
			SupplierID: supplier.ID,
			CreatedBy:  buyer,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})
}

func TestEvaluateSupplier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, ctx, "Vergers du Sud")
	rater := uuid.New()

	t.Run("rating outside 1..5 rejected", func(t *testing.T) {
		_, err := env.supplierService.EvaluateSupplier(ctx, &EvaluateSupplierInput{
			SupplierID: supplier.ID,
			UserID:     rater,
			Rating:     6,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("average rating kept on the supplier", func(t *testing.T) {
		_, err := env.supplierService.EvaluateSupplier(ctx, &EvaluateSupplierInput{
			SupplierID: supplier.ID,
			UserID:     rater,
			Rating:     4,
		})
		require.NoError(t, err)

		_, err = env.supplierService.EvaluateSupplier(ctx, &EvaluateSupplierInput{
			SupplierID: supplier.ID,
			UserID:     uuid.New(),
			Rating:     5,
		})
		require.NoError(t, err)

		var stored entity.Supplier
		require.NoError(t, env.db.First(&stored, "id = ?", supplier.ID).Error)
		assert.True(t, stored.Rating.Equal(dec(t, "4.5")))

		evals, err := env.supplierService.ListSupplierEvaluations(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Len(t, evals, 2)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := env.supplierService.EvaluateSupplier(ctx, &EvaluateSupplierInput{
			SupplierID: uuid.New(),
			UserID:     rater,
			Rating:     3,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestSupplierCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	supplier := env.createSupplier(t, ctx, "Bio Provence")
	product := env.createProduct(t, "Aubergine", "2.10", "1.95", 15)

	link, err := env.supplierService.AddSupplierProduct(ctx, &AddSupplierProductInput{
		SupplierID:      supplier.ID,
		ProductID:       product.ID,
		PurchasePriceHT: dec(t, "1.20"),
		CreatedBy:       actor,
	})
	require.NoError(t, err)
	assert.True(t, link.PurchasePriceHT.Equal(dec(t, "1.20")))

	listed, err := env.supplierService.ListSupplierProducts(ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, env.supplierService.RemoveSupplierProduct(ctx, link.ID, actor))

	listed, err = env.supplierService.ListSupplierProducts(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
