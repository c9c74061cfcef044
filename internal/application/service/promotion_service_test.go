package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func (e *testEnv) createPromotion(t *testing.T, promo *entity.Promotion) *entity.Promotion {
	t.Helper()
	if promo.ValidFrom.IsZero() {
		promo.ValidFrom = time.Now().Add(-time.Hour)
	}
	if promo.ValidTo.IsZero() {
		promo.ValidTo = time.Now().Add(24 * time.Hour)
	}
	require.NoError(t, e.db.Create(promo).Error)
	return promo
}

func TestValidatePromotion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("unknown code", func(t *testing.T) {
		_, err := env.promotionService.Validate(ctx, "NOPE", dec(t, "100"), now)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})

	t.Run("inactive code", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:  "DORMANT",
			Type:  enum.PromotionTypePercentage,
			Value: dec(t, "10"),
		})
		require.NoError(t, env.db.Model(&entity.Promotion{}).
			Where("code = ?", "DORMANT").
			Update("is_active", false).Error)

		_, err := env.promotionService.Validate(ctx, "DORMANT", dec(t, "100"), now)
		require.Error(t, err)
		assert.Equal(t, "Promotion is not active", apperror.GetAppError(err).Message)
	})

	t.Run("outside validity window", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:      "LASTYEAR",
			Type:      enum.PromotionTypePercentage,
			Value:     dec(t, "10"),
			ValidFrom: now.Add(-48 * time.Hour),
			ValidTo:   now.Add(-24 * time.Hour),
			IsActive:  true,
		})

		_, err := env.promotionService.Validate(ctx, "LASTYEAR", dec(t, "100"), now)
		require.Error(t, err)
		assert.Equal(t, "Promotion is outside its validity window", apperror.GetAppError(err).Message)
	})

	t.Run("usage limit exhausted", func(t *testing.T) {
		limit := 5
		env.createPromotion(t, &entity.Promotion{
			Code:       "SPENT",
			Type:       enum.PromotionTypePercentage,
			Value:      dec(t, "10"),
			UsageLimit: &limit,
			UsageCount: 5,
			IsActive:   true,
		})

		_, err := env.promotionService.Validate(ctx, "SPENT", dec(t, "100"), now)
		require.Error(t, err)
		assert.Equal(t, "Promotion usage limit reached", apperror.GetAppError(err).Message)
	})

	t.Run("order below minimum amount", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:      "BIGBASKET",
			Type:      enum.PromotionTypePercentage,
			Value:     dec(t, "10"),
			MinAmount: decimal.NewNullDecimal(dec(t, "50")),
			IsActive:  true,
		})

		_, err := env.promotionService.Validate(ctx, "BIGBASKET", dec(t, "49.99"), now)
		require.Error(t, err)
		assert.Equal(t, "Order amount is below the promotion minimum", apperror.GetAppError(err).Message)

		result, err := env.promotionService.Validate(ctx, "BIGBASKET", dec(t, "50"), now)
		require.NoError(t, err)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "5.00")))
	})

	t.Run("percentage discount capped at max discount", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:        "TENPCT",
			Type:        enum.PromotionTypePercentage,
			Value:       dec(t, "10"),
			MaxDiscount: decimal.NewNullDecimal(dec(t, "15")),
			IsActive:    true,
		})

		result, err := env.promotionService.Validate(ctx, "TENPCT", dec(t, "100"), now)
		require.NoError(t, err)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "10.00")))

		result, err = env.promotionService.Validate(ctx, "TENPCT", dec(t, "500"), now)
		require.NoError(t, err)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "15")))
	})

	t.Run("fixed amount clamped to the order total", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:     "MINUS20",
			Type:     enum.PromotionTypeFixedAmount,
			Value:    dec(t, "20"),
			IsActive: true,
		})

		result, err := env.promotionService.Validate(ctx, "MINUS20", dec(t, "100"), now)
		require.NoError(t, err)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "20.00")))

		result, err = env.promotionService.Validate(ctx, "MINUS20", dec(t, "12.50"), now)
		require.NoError(t, err)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "12.50")))
	})

	t.Run("free shipping carries no amount", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:     "SHIPFREE",
			Type:     enum.PromotionTypeFreeShipping,
			Value:    decimal.Zero,
			IsActive: true,
		})

		result, err := env.promotionService.Validate(ctx, "SHIPFREE", dec(t, "100"), now)
		require.NoError(t, err)
		assert.True(t, result.FreeShipping)
		assert.True(t, result.DiscountAmount.IsZero())
	})

	t.Run("code normalized like at creation", func(t *testing.T) {
		env.createPromotion(t, &entity.Promotion{
			Code:     "SUMMER",
			Type:     enum.PromotionTypeFixedAmount,
			Value:    dec(t, "5"),
			IsActive: true,
		})

		// Padded, lower-cased input must resolve the same promotion
		result, err := env.promotionService.Validate(ctx, "  summer  ", dec(t, "100"), now)
		require.NoError(t, err)
		assert.Equal(t, "SUMMER", result.Promotion.Code)
		assert.True(t, result.DiscountAmount.Equal(dec(t, "5.00")))
	})
}

func TestRedeemPromotion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	limit := 1
	promo := env.createPromotion(t, &entity.Promotion{
		Code:       "ONESHOT",
		Type:       enum.PromotionTypeFixedAmount,
		Value:      dec(t, "5"),
		UsageLimit: &limit,
		IsActive:   true,
	})

	require.NoError(t, env.promotionService.Redeem(ctx, promo.ID))

	var stored entity.Promotion
	require.NoError(t, env.db.First(&stored, "id = ?", promo.ID).Error)
	assert.Equal(t, 1, stored.UsageCount)

	err := env.promotionService.Redeem(ctx, promo.ID)
	require.Error(t, err)
	assert.Equal(t, "Promotion usage limit reached", apperror.GetAppError(err).Message)

	require.NoError(t, env.db.First(&stored, "id = ?", promo.ID).Error)
	assert.Equal(t, 1, stored.UsageCount)
}
