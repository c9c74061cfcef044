package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	infrarepo "github.com/primeurdirect/primeur-api/internal/infrastructure/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"go.uber.org/zap"
)

func newShopTestService(t *testing.T, env *testEnv) *ShopService {
	t.Helper()
	auditService := NewAuditService(infrarepo.NewAuditLogRepository(env.db), zap.NewNop())
	return NewShopService(
		infrarepo.NewShopRepository(env.db),
		infrarepo.NewUserRepository(env.db),
		auditService,
	)
}

func TestCreateShop(t *testing.T) {
	env := newTestEnv(t)
	shopService := newShopTestService(t, env)
	ctx := context.Background()
	commercial := uuid.New()

	t.Run("creates the owner account alongside the shop", func(t *testing.T) {
		siret := "81234567800012"
		shop, err := shopService.CreateShop(ctx, &CreateShopInput{
			Name:      "Au Panier Vert",
			SIRET:     &siret,
			FirstName: "Julie",
			LastName:  "Moreau",
			Email:     "julie@panier-vert.fr",
			Password:  "motdepasse",
			CreatedBy: commercial,
		})
		require.NoError(t, err)
		assert.Equal(t, "Au Panier Vert", shop.Name)
		require.NotEqual(t, uuid.Nil, shop.UserID)

		var owner entity.User
		require.NoError(t, env.db.First(&owner, "id = ?", shop.UserID).Error)
		assert.Equal(t, "julie@panier-vert.fr", owner.Email)
		assert.Equal(t, enum.RoleClient, owner.Role)
		assert.True(t, owner.IsApproved)
	})

	t.Run("duplicate owner email leaves no orphan shop", func(t *testing.T) {
		var shopsBefore int64
		require.NoError(t, env.db.Model(&entity.Shop{}).Count(&shopsBefore).Error)

		_, err := shopService.CreateShop(ctx, &CreateShopInput{
			Name:      "Chez Julie Bis",
			FirstName: "Julie",
			LastName:  "Moreau",
			Email:     "julie@panier-vert.fr",
			Password:  "motdepasse",
			CreatedBy: commercial,
		})
		require.Error(t, err)
		assert.Equal(t, "Email already registered", apperror.GetAppError(err).Message)

		var shopsAfter int64
		require.NoError(t, env.db.Model(&entity.Shop{}).Count(&shopsAfter).Error)
		assert.Equal(t, shopsBefore, shopsAfter)
	})

	t.Run("missing credentials rejected", func(t *testing.T) {
		_, err := shopService.CreateShop(ctx, &CreateShopInput{
			Name:      "Sans Compte",
			CreatedBy: commercial,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})
}
