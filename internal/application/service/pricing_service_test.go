package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func TestResolvePrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product := env.createProduct(t, "Pomme Golden", "2.50", "2.20", 100)
	user, _ := env.createClientShop(t, "resolve@shop.fr")

	t.Run("base tariff T1", func(t *testing.T) {
		resolved, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			Quantity:  1,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceBase, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "2.50")))
	})

	t.Run("base tariff T2", func(t *testing.T) {
		resolved, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			Quantity:  1,
			Tier:      enum.TariffTierT2,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceBase, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "2.20")))
	})

	t.Run("volume bracket applies at quantity", func(t *testing.T) {
		maxQty := 49
		require.NoError(t, env.db.Create(&entity.VolumePricing{
			ProductID:   product.ID,
			MinQuantity: 10,
			MaxQuantity: &maxQty,
			PriceHT:     dec(t, "2.10"),
			IsActive:    true,
		}).Error)

		resolved, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			Quantity:  10,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceVolume, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "2.10")))

		// below the bracket the base price still wins
		resolved, err = env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			Quantity:  9,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceBase, resolved.Source)

		// above the bracket's max it no longer matches
		resolved, err = env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			Quantity:  50,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceBase, resolved.Source)
	})

	t.Run("client pricing beats volume pricing", func(t *testing.T) {
		require.NoError(t, env.db.Create(&entity.ClientPricing{
			ProductID: product.ID,
			UserID:    user.ID,
			PriceHT:   dec(t, "1.95"),
			PriceHTT2: dec(t, "1.80"),
			ValidFrom: time.Now().Add(-time.Hour),
			IsActive:  true,
		}).Error)

		resolved, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			UserID:    &user.ID,
			Quantity:  10,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceClient, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "1.95")))

		resolved, err = env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			UserID:    &user.ID,
			Quantity:  10,
			Tier:      enum.TariffTierT2,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceClient, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "1.80")))
	})

	t.Run("expired client pricing falls back to volume", func(t *testing.T) {
		other, _ := env.createClientShop(t, "expired@shop.fr")
		until := time.Now().Add(-24 * time.Hour)
		require.NoError(t, env.db.Create(&entity.ClientPricing{
			ProductID:  product.ID,
			UserID:     other.ID,
			PriceHT:    dec(t, "1.00"),
			PriceHTT2:  dec(t, "1.00"),
			ValidFrom:  time.Now().Add(-48 * time.Hour),
			ValidUntil: &until,
			IsActive:   true,
		}).Error)

		resolved, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: product.ID,
			UserID:    &other.ID,
			Quantity:  10,
			Tier:      enum.TariffTierT1,
		})
		require.NoError(t, err)
		assert.Equal(t, PriceSourceVolume, resolved.Source)
		assert.True(t, resolved.PriceHT.Equal(dec(t, "2.10")))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := env.pricingService.ResolvePrice(ctx, &ResolvePriceInput{
			ProductID: uuid.New(),
			Quantity:  1,
			Tier:      enum.TariffTierT1,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}

func TestBulkPriceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := uuid.New()

	t.Run("percent increase updates both tiers and records history", func(t *testing.T) {
		p1 := env.createProduct(t, "Carotte", "1.00", "0.90", 50)
		p2 := env.createProduct(t, "Poireau", "2.00", "1.80", 50)

		result, err := env.pricingService.BulkPriceUpdate(ctx, &BulkPriceUpdateInput{
			ProductIDs: []uuid.UUID{p1.ID, p2.ID},
			Action:     enum.BulkPriceActionIncrease,
			Value:      dec(t, "10"),
			ValueType:  enum.BulkValueTypePercent,
			Reason:     "hausse saisonniere",
			ChangedBy:  actor,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.UpdatedCount)

		var updated entity.Product
		require.NoError(t, env.db.First(&updated, "id = ?", p1.ID).Error)
		assert.True(t, updated.PriceHT.Equal(dec(t, "1.10")))
		assert.True(t, updated.PriceHTT2.Equal(dec(t, "0.99")))

		var history []entity.PriceHistory
		require.NoError(t, env.db.Where("product_id = ?", p1.ID).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, enum.PriceChangeTypeBulkUpdate, history[0].ChangeType)
		assert.True(t, history[0].OldPriceHT.Equal(dec(t, "1.00")))
		assert.True(t, history[0].NewPriceHT.Equal(dec(t, "1.10")))
		assert.Equal(t, actor, history[0].ChangedBy)
	})

	t.Run("decrease floors at zero", func(t *testing.T) {
		cheap := env.createProduct(t, "Persil", "0.50", "0.40", 50)

		_, err := env.pricingService.BulkPriceUpdate(ctx, &BulkPriceUpdateInput{
			ProductIDs: []uuid.UUID{cheap.ID},
			Action:     enum.BulkPriceActionDecrease,
			Value:      dec(t, "2.00"),
			ValueType:  enum.BulkValueTypeAbsolute,
			Reason:     "destockage",
			ChangedBy:  actor,
		})
		require.NoError(t, err)

		var updated entity.Product
		require.NoError(t, env.db.First(&updated, "id = ?", cheap.ID).Error)
		assert.True(t, updated.PriceHT.IsZero())
		assert.True(t, updated.PriceHTT2.IsZero())
	})

	t.Run("set action overwrites the price", func(t *testing.T) {
		p := env.createProduct(t, "Tomate", "3.20", "3.00", 50)

		_, err := env.pricingService.BulkPriceUpdate(ctx, &BulkPriceUpdateInput{
			ProductIDs: []uuid.UUID{p.ID},
			Action:     enum.BulkPriceActionSet,
			Value:      dec(t, "2.99"),
			ValueType:  enum.BulkValueTypeAbsolute,
			Reason:     "alignement",
			ChangedBy:  actor,
		})
		require.NoError(t, err)

		var updated entity.Product
		require.NoError(t, env.db.First(&updated, "id = ?", p.ID).Error)
		assert.True(t, updated.PriceHT.Equal(dec(t, "2.99")))
	})

	t.Run("empty product list rejected", func(t *testing.T) {
		_, err := env.pricingService.BulkPriceUpdate(ctx, &BulkPriceUpdateInput{
			ProductIDs: nil,
			Action:     enum.BulkPriceActionSet,
			Value:      dec(t, "1"),
			ValueType:  enum.BulkValueTypeAbsolute,
			ChangedBy:  actor,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("unknown product aborts the whole batch", func(t *testing.T) {
		known := env.createProduct(t, "Courgette", "1.50", "1.40", 50)

		_, err := env.pricingService.BulkPriceUpdate(ctx, &BulkPriceUpdateInput{
			ProductIDs: []uuid.UUID{known.ID, uuid.New()},
			Action:     enum.BulkPriceActionSet,
			Value:      dec(t, "9.99"),
			ValueType:  enum.BulkValueTypeAbsolute,
			ChangedBy:  actor,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

		var untouched entity.Product
		require.NoError(t, env.db.First(&untouched, "id = ?", known.ID).Error)
		assert.True(t, untouched.PriceHT.Equal(dec(t, "1.50")))
	})
}
