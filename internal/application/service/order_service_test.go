package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, shop := env.createClientShop(t, "orders@shop.fr")

	t.Run("stock decremented and totals computed", func(t *testing.T) {
		product := env.createProduct(t, "Pomme de terre", "1.00", "0.90", 100)

		order, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
			Items:  []OrderItemInput{{ProductID: product.ID, Quantity: 10}},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
		assert.Equal(t, enum.OrderStatusPending, order.Status)
		require.Len(t, order.Items, 1)

		// 10 x 1.00 HT, 5.5% TVA
		assert.True(t, order.TotalHT.Equal(dec(t, "10.00")))
		assert.True(t, order.TotalTVA.Equal(dec(t, "0.55")))
		assert.True(t, order.TotalTTC.Equal(dec(t, "10.55")))

		assert.Equal(t, 90, env.productStock(t, product.ID))
	})

	t.Run("insufficient stock leaves everything untouched", func(t *testing.T) {
		product := env.createProduct(t, "Fraise", "4.00", "3.80", 5)

		_, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
			Items:  []OrderItemInput{{ProductID: product.ID, Quantity: 6}},
		})
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Insufficient stock for Fraise: 5 available, 6 requested", appErr.Message)

		assert.Equal(t, 5, env.productStock(t, product.ID))
	})

	t.Run("inactive product rejected", func(t *testing.T) {
		product := env.createProduct(t, "Cerise", "6.00", "5.50", 50)
		require.NoError(t, env.db.Model(product).Update("is_active", false).Error)

		_, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
			Items:  []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("promotion applied and redeemed once", func(t *testing.T) {
		product := env.createProduct(t, "Melon", "5.00", "4.80", 100)
		limit := 10
		promo := env.createPromotion(t, &entity.Promotion{
			Code:       "ETE10",
			Type:       enum.PromotionTypePercentage,
			Value:      dec(t, "10"),
			UsageLimit: &limit,
			IsActive:   true,
		})
		code := "ete10"

		order, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID:        shop.ID,
			UserID:        user.ID,
			Tier:          enum.TariffTierT1,
			PromotionCode: &code,
			Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 4}},
		})
		require.NoError(t, err)

		// 20.00 HT, 10% promotion on the HT total
		assert.True(t, order.DiscountAmount.Equal(dec(t, "2.00")))
		require.NotNil(t, order.PromotionCode)
		assert.Equal(t, "ETE10", *order.PromotionCode)

		var stored entity.Promotion
		require.NoError(t, env.db.First(&stored, "id = ?", promo.ID).Error)
		assert.Equal(t, 1, stored.UsageCount)
	})

	t.Run("invalid promotion blocks the order before stock moves", func(t *testing.T) {
		product := env.createProduct(t, "Abricot", "3.00", "2.80", 30)
		code := "UNKNOWN"

		_, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID:        shop.ID,
			UserID:        user.ID,
			Tier:          enum.TariffTierT1,
			PromotionCode: &code,
			Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		})
		require.Error(t, err)
		assert.Equal(t, 30, env.productStock(t, product.ID))
	})

	t.Run("empty order rejected", func(t *testing.T) {
		_, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, shop := env.createClientShop(t, "status@shop.fr")
	product := env.createProduct(t, "Salade", "1.50", "1.40", 40)

	newOrder := func(t *testing.T, qty int) *entity.Order {
		t.Helper()
		order, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
			Items:  []OrderItemInput{{ProductID: product.ID, Quantity: qty}},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("pipeline transitions", func(t *testing.T) {
		order := newOrder(t, 5)

		for _, status := range []enum.OrderStatus{
			enum.OrderStatusPreparing,
			enum.OrderStatusDelivering,
			enum.OrderStatusDelivered,
		} {
			updated, err := env.orderService.UpdateOrderStatus(ctx, order.ID, status, user.ID)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		order := newOrder(t, 1)

		_, err := env.orderService.UpdateOrderStatus(ctx, order.ID, enum.OrderStatusDelivered, user.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("cancelling restores stock", func(t *testing.T) {
		before := env.productStock(t, product.ID)
		order := newOrder(t, 7)
		assert.Equal(t, before-7, env.productStock(t, product.ID))

		updated, err := env.orderService.UpdateOrderStatus(ctx, order.ID, enum.OrderStatusCancelled, user.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusCancelled, updated.Status)
		assert.Equal(t, before, env.productStock(t, product.ID))
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		order := newOrder(t, 1)
		for _, status := range []enum.OrderStatus{
			enum.OrderStatusPreparing,
			enum.OrderStatusDelivering,
			enum.OrderStatusDelivered,
		} {
			_, err := env.orderService.UpdateOrderStatus(ctx, order.ID, status, user.ID)
			require.NoError(t, err)
		}

		_, err := env.orderService.UpdateOrderStatus(ctx, order.ID, enum.OrderStatusCancelled, user.ID)
		require.Error(t, err)
	})
}

// deliverOrder drives a fresh order through the pipeline to DELIVERED.
func (e *testEnv) deliverOrder(t *testing.T, ctx context.Context, order *entity.Order) {
	t.Helper()
	for _, status := range []enum.OrderStatus{
		enum.OrderStatusPreparing,
		enum.OrderStatusDelivering,
		enum.OrderStatusDelivered,
	} {
		_, err := e.orderService.UpdateOrderStatus(ctx, order.ID, status, order.UserID)
		require.NoError(t, err)
	}
}
