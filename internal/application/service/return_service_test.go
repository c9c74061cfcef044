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

func TestCreateReturn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, shop := env.createClientShop(t, "returns@shop.fr")
	product := env.createProduct(t, "Raisin", "3.50", "3.30", 100)

	order, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
		ShopID: shop.ID,
		UserID: user.ID,
		Tier:   enum.TariffTierT1,
		Items:  []OrderItemInput{{ProductID: product.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	t.Run("only delivered orders can be returned", func(t *testing.T) {
		_, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    shop.ID,
			Items:     []ReturnItemInput{{ProductID: product.ID, Quantity: 1, Reason: "abime"}},
			CreatedBy: user.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "Only delivered orders can be returned", apperror.GetAppError(err).Message)
	})

	env.deliverOrder(t, ctx, order)

	t.Run("quantity capped at the ordered quantity", func(t *testing.T) {
		_, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    shop.ID,
			Items:     []ReturnItemInput{{ProductID: product.ID, Quantity: 11, Reason: "abime"}},
			CreatedBy: user.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "Cannot return more than was ordered", apperror.GetAppError(err).Message)
	})

	t.Run("product outside the order rejected", func(t *testing.T) {
		stranger := env.createProduct(t, "Kiwi", "2.80", "2.60", 50)
		_, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    shop.ID,
			Items:     []ReturnItemInput{{ProductID: stranger.ID, Quantity: 1, Reason: "erreur"}},
			CreatedBy: user.ID,
		})
		require.Error(t, err)
		assert.Equal(t, "Product was not part of the order", apperror.GetAppError(err).Message)
	})

	t.Run("wrong shop is forbidden", func(t *testing.T) {
		_, otherShop := env.createClientShop(t, "intruder@shop.fr")
		_, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    otherShop.ID,
			Items:     []ReturnItemInput{{ProductID: product.ID, Quantity: 1, Reason: "abime"}},
			CreatedBy: user.ID,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.GetAppError(err).Code)
	})

	t.Run("prices come from the order snapshot", func(t *testing.T) {
		ret, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    shop.ID,
			Items:     []ReturnItemInput{{ProductID: product.ID, Quantity: 3, Reason: "produit abime"}},
			CreatedBy: user.ID,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ret.ReturnNumber, "RET-"))
		assert.Equal(t, enum.ReturnStatusPending, ret.Status)
		require.Len(t, ret.Items, 1)
		assert.True(t, ret.Items[0].PriceHT.Equal(dec(t, "3.50")))
	})
}

func TestDecideReturn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, shop := env.createClientShop(t, "decide@shop.fr")
	finance := uuid.New()
	product := env.createProduct(t, "Peche", "2.40", "2.20", 100)

	newPendingReturn := func(t *testing.T, qty int) *entity.Return {
		t.Helper()
		order, err := env.orderService.CreateOrder(ctx, &CreateOrderInput{
			ShopID: shop.ID,
			UserID: user.ID,
			Tier:   enum.TariffTierT1,
			Items:  []OrderItemInput{{ProductID: product.ID, Quantity: qty}},
		})
		require.NoError(t, err)
		env.deliverOrder(t, ctx, order)

		ret, err := env.returnService.CreateReturn(ctx, &CreateReturnInput{
			OrderID:   order.ID,
			ShopID:    shop.ID,
			Items:     []ReturnItemInput{{ProductID: product.ID, Quantity: qty, Reason: "invendable"}},
			CreatedBy: user.ID,
		})
		require.NoError(t, err)
		return ret
	}

	t.Run("approve with credit note and restock", func(t *testing.T) {
		ret := newPendingReturn(t, 4)
		stockBefore := env.productStock(t, product.ID)

		note := "avoir valide"
		approved, err := env.returnService.ApproveReturn(ctx, &ApproveReturnInput{
			ID:              ret.ID,
			DecidedBy:       finance,
			DecisionNote:    &note,
			IssueCreditNote: true,
			Restock:         true,
		})
		require.NoError(t, err)
		assert.Equal(t, enum.ReturnStatusApproved, approved.Status)
		require.NotNil(t, approved.CreditNote)
		assert.True(t, strings.HasPrefix(approved.CreditNote.CreditNumber, "AVR-"))
		// 4 x 2.40 from the order snapshot
		assert.True(t, approved.CreditNote.Amount.Equal(dec(t, "9.60")))

		assert.Equal(t, stockBefore+4, env.productStock(t, product.ID))
	})

	t.Run("approve without credit note or restock", func(t *testing.T) {
		ret := newPendingReturn(t, 2)
		stockBefore := env.productStock(t, product.ID)

		approved, err := env.returnService.ApproveReturn(ctx, &ApproveReturnInput{
			ID:        ret.ID,
			DecidedBy: finance,
		})
		require.NoError(t, err)
		assert.Equal(t, enum.ReturnStatusApproved, approved.Status)
		assert.Nil(t, approved.CreditNote)
		assert.Equal(t, stockBefore, env.productStock(t, product.ID))
	})

	t.Run("a decided return cannot be decided again", func(t *testing.T) {
		ret := newPendingReturn(t, 1)

		note := "refuse"
		_, err := env.returnService.RejectReturn(ctx, &RejectReturnInput{
			ID:           ret.ID,
			DecidedBy:    finance,
			DecisionNote: &note,
		})
		require.NoError(t, err)

		_, err = env.returnService.ApproveReturn(ctx, &ApproveReturnInput{ID: ret.ID, DecidedBy: finance})
		require.Error(t, err)
		assert.Equal(t, "Return has already been decided", apperror.GetAppError(err).Message)

		_, err = env.returnService.RejectReturn(ctx, &RejectReturnInput{ID: ret.ID, DecidedBy: finance})
		require.Error(t, err)
	})

	t.Run("stats aggregate recent activity", func(t *testing.T) {
		stats, err := env.returnService.ReturnStats(ctx, 7)
		require.NoError(t, err)
		assert.Greater(t, stats.Total, int64(0))
		assert.NotEmpty(t, stats.ByStatus)
	})

	t.Run("photo attaches while pending", func(t *testing.T) {
		ret := newPendingReturn(t, 1)

		updated, err := env.returnService.AttachPhoto(ctx, ret.ID, "uploads/return-abc.jpg", user.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.PhotoPath)
		assert.Equal(t, "uploads/return-abc.jpg", *updated.PhotoPath)
	})

	t.Run("photo rejected once decided", func(t *testing.T) {
		ret := newPendingReturn(t, 1)
		_, err := env.returnService.RejectReturn(ctx, &RejectReturnInput{ID: ret.ID, DecidedBy: finance})
		require.NoError(t, err)

		_, err = env.returnService.AttachPhoto(ctx, ret.ID, "uploads/return-late.jpg", user.ID)
		require.Error(t, err)
		assert.Equal(t, "Photos can only be attached to pending returns", apperror.GetAppError(err).Message)
	})

	t.Run("photo on unknown return", func(t *testing.T) {
		_, err := env.returnService.AttachPhoto(ctx, uuid.New(), "uploads/return-x.jpg", user.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
	})
}
