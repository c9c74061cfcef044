package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
)

func TestCreateQuote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	commercial, shop := env.createClientShop(t, "quotes@shop.fr")
	product := env.createProduct(t, "Poire Conference", "2.00", "1.90", 100)

	t.Run("items snapshot prices at creation", func(t *testing.T) {
		quote, err := env.quoteService.CreateQuote(ctx, &CreateQuoteInput{
			ShopID:     shop.ID,
			CreatedBy:  commercial.ID,
			ValidUntil: time.Now().Add(30 * 24 * time.Hour),
			Tier:       enum.TariffTierT1,
			Items:      []QuoteItemInput{{ProductID: product.ID, Quantity: 5}},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(quote.QuoteNumber, "QUO-"))
		assert.Equal(t, enum.QuoteStatusDraft, quote.Status)
		require.Len(t, quote.Items, 1)
		assert.True(t, quote.TotalHT.Equal(dec(t, "10.00")))

		// a later catalog price change must not alter the quote
		require.NoError(t, env.db.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			Update("price_ht", dec(t, "99.00")).Error)

		reloaded, err := env.quoteService.GetQuote(ctx, quote.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.TotalHT.Equal(dec(t, "10.00")))
		assert.True(t, reloaded.Items[0].PriceHT.Equal(dec(t, "2.00")))

		require.NoError(t, env.db.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			Update("price_ht", dec(t, "2.00")).Error)
	})

	t.Run("quote creation never touches stock", func(t *testing.T) {
		before := env.productStock(t, product.ID)
		_, err := env.quoteService.CreateQuote(ctx, &CreateQuoteInput{
			ShopID:     shop.ID,
			CreatedBy:  commercial.ID,
			ValidUntil: time.Now().Add(24 * time.Hour),
			Tier:       enum.TariffTierT1,
			Items:      []QuoteItemInput{{ProductID: product.ID, Quantity: 50}},
		})
		require.NoError(t, err)
		assert.Equal(t, before, env.productStock(t, product.ID))
	})

	t.Run("empty quote rejected", func(t *testing.T) {
		_, err := env.quoteService.CreateQuote(ctx, &CreateQuoteInput{
			ShopID:     shop.ID,
			CreatedBy:  commercial.ID,
			ValidUntil: time.Now().Add(24 * time.Hour),
			Tier:       enum.TariffTierT1,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})
}

func TestQuoteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	commercial, shop := env.createClientShop(t, "lifecycle@shop.fr")
	product := env.createProduct(t, "Banane", "1.80", "1.70", 200)

	newQuote := func(t *testing.T, validUntil time.Time) *entity.Quote {
		t.Helper()
		quote, err := env.quoteService.CreateQuote(ctx, &CreateQuoteInput{
			ShopID:     shop.ID,
			CreatedBy:  commercial.ID,
			ValidUntil: validUntil,
			Tier:       enum.TariffTierT1,
			Items:      []QuoteItemInput{{ProductID: product.ID, Quantity: 3}},
		})
		require.NoError(t, err)
		return quote
	}

	t.Run("accepted quote converts into an order exactly once", func(t *testing.T) {
		quote := newQuote(t, time.Now().Add(7*24*time.Hour))

		_, err := env.quoteService.SendQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		_, err = env.quoteService.AcceptQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)

		order, err := env.quoteService.ConvertQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
		require.NotNil(t, order.QuoteID)
		assert.Equal(t, quote.ID, *order.QuoteID)
		assert.True(t, order.TotalTTC.Equal(quote.TotalTTC))
		require.Len(t, order.Items, 1)
		assert.Equal(t, 3, order.Items[0].Quantity)

		converted, err := env.quoteService.GetQuote(ctx, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.QuoteStatusConverted, converted.Status)
		require.NotNil(t, converted.ConvertedToOrderID)
		assert.Equal(t, order.ID, *converted.ConvertedToOrderID)

		_, err = env.quoteService.ConvertQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)
		assert.Equal(t, "Quote has already been converted", apperror.GetAppError(err).Message)
	})

	t.Run("draft quotes cannot be accepted or converted", func(t *testing.T) {
		quote := newQuote(t, time.Now().Add(24*time.Hour))

		_, err := env.quoteService.AcceptQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)

		_, err = env.quoteService.ConvertQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)
		assert.Equal(t, "Only accepted quotes can be converted", apperror.GetAppError(err).Message)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		quote := newQuote(t, time.Now().Add(24*time.Hour))

		_, err := env.quoteService.SendQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		_, err = env.quoteService.RejectQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)

		_, err = env.quoteService.AcceptQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)
	})

	t.Run("expired quote refuses conversion but keeps its status", func(t *testing.T) {
		quote := newQuote(t, time.Now().Add(time.Minute))

		_, err := env.quoteService.SendQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		_, err = env.quoteService.AcceptQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)

		// push validity into the past after acceptance
		require.NoError(t, env.db.Model(&entity.Quote{}).
			Where("id = ?", quote.ID).
			Update("valid_until", time.Now().Add(-time.Hour)).Error)

		_, err = env.quoteService.ConvertQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Quote validity period has passed", appErr.Message)

		kept, err := env.quoteService.GetQuote(ctx, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.QuoteStatusAccepted, kept.Status)
		assert.Nil(t, kept.ConvertedToOrderID)
	})

	t.Run("converted quotes cannot be deleted", func(t *testing.T) {
		quote := newQuote(t, time.Now().Add(24*time.Hour))
		_, err := env.quoteService.SendQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		_, err = env.quoteService.AcceptQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)
		_, err = env.quoteService.ConvertQuote(ctx, quote.ID, commercial.ID)
		require.NoError(t, err)

		err = env.quoteService.DeleteQuote(ctx, quote.ID, commercial.ID)
		require.Error(t, err)
		assert.Equal(t, "Converted quotes cannot be deleted", apperror.GetAppError(err).Message)
	})
}
