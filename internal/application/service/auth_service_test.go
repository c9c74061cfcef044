package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	infrarepo "github.com/primeurdirect/primeur-api/internal/infrastructure/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/email"
	"github.com/primeurdirect/primeur-api/pkg/oauth"
	"github.com/primeurdirect/primeur-api/pkg/utils"
	"go.uber.org/zap"
)

func newAuthTestService(t *testing.T, env *testEnv) (*AuthService, *UserService) {
	t.Helper()
	userRepo := infrarepo.NewUserRepository(env.db)
	auditService := NewAuditService(infrarepo.NewAuditLogRepository(env.db), zap.NewNop())
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost/callback",
	})
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:  "127.0.0.1",
		SMTPPort:  2525,
		FromName:  "Primeur Direct",
		FromEmail: "test@primeurdirect.fr",
	})
	return NewAuthService(userRepo, jwtManager, googleOAuth, auditService, emailService, zap.NewNop()),
		NewUserService(userRepo, auditService)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	authService, userService := newAuthTestService(t, env)
	ctx := context.Background()
	admin := uuid.New()

	t.Run("register creates a client pending approval", func(t *testing.T) {
		user, err := authService.Register(ctx, &RegisterInput{
			FirstName: "Luc",
			LastName:  "Martin",
			Email:     "  Luc.Martin@Example.FR ",
			Password:  "motdepasse",
		})
		require.NoError(t, err)
		assert.Equal(t, "luc.martin@example.fr", user.Email)
		assert.Equal(t, enum.RoleClient, user.Role)
		assert.False(t, user.IsApproved)
		assert.NotEqual(t, "motdepasse", user.Password)
	})

	t.Run("unapproved accounts cannot log in", func(t *testing.T) {
		_, err := authService.Login(ctx, &LoginInput{
			Email:    "luc.martin@example.fr",
			Password: "motdepasse",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.GetAppError(err).Code)
	})

	t.Run("approved account receives a token pair", func(t *testing.T) {
		registered, err := authService.Register(ctx, &RegisterInput{
			FirstName: "Ana",
			LastName:  "Costa",
			Email:     "ana@example.fr",
			Password:  "motdepasse",
		})
		require.NoError(t, err)
		_, err = userService.ApproveUser(ctx, registered.ID, admin)
		require.NoError(t, err)

		out, err := authService.Login(ctx, &LoginInput{
			Email:    "ana@example.fr",
			Password: "motdepasse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)

		refreshed, err := authService.RefreshToken(ctx, out.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, refreshed.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authService.Login(ctx, &LoginInput{
			Email:    "ana@example.fr",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.GetAppError(err).Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := authService.Register(ctx, &RegisterInput{
			FirstName: "Ana",
			LastName:  "Costa",
			Email:     "ANA@example.fr",
			Password:  "motdepasse",
		})
		require.Error(t, err)
		assert.Equal(t, "Email already registered", apperror.GetAppError(err).Message)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := authService.Register(ctx, &RegisterInput{
			Email:    "short@example.fr",
			Password: "court",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	})

	t.Run("reset password with a valid token", func(t *testing.T) {
		user, err := authService.Register(ctx, &RegisterInput{
			FirstName: "Nora",
			LastName:  "Blanc",
			Email:     "nora@example.fr",
			Password:  "ancienmdp1",
		})
		require.NoError(t, err)
		_, err = userService.ApproveUser(ctx, user.ID, admin)
		require.NoError(t, err)

		jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
		token, err := jwtManager.GeneratePasswordResetToken(user.ID)
		require.NoError(t, err)

		require.NoError(t, authService.ResetPassword(ctx, token, "nouveaumdp1"))

		_, err = authService.Login(ctx, &LoginInput{Email: "nora@example.fr", Password: "ancienmdp1"})
		require.Error(t, err)
		_, err = authService.Login(ctx, &LoginInput{Email: "nora@example.fr", Password: "nouveaumdp1"})
		require.NoError(t, err)

		// a refresh token must not pass as a reset token
		refresh, err := jwtManager.GenerateRefreshToken(user.ID)
		require.NoError(t, err)
		err = authService.ResetPassword(ctx, refresh, "encoreunmdp")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperror.GetAppError(err).Code)
	})

	t.Run("forgot password never reveals whether the account exists", func(t *testing.T) {
		require.NoError(t, authService.ForgotPassword(ctx, "ana@example.fr"))
		require.NoError(t, authService.ForgotPassword(ctx, "nobody@example.fr"))
	})

	t.Run("set role", func(t *testing.T) {
		user, err := authService.Register(ctx, &RegisterInput{
			FirstName: "Paul",
			LastName:  "Leroy",
			Email:     "paul@example.fr",
			Password:  "motdepasse",
		})
		require.NoError(t, err)

		updated, err := userService.SetRole(ctx, user.ID, enum.RoleCommercial, admin)
		require.NoError(t, err)
		assert.Equal(t, enum.RoleCommercial, updated.Role)
	})
}
