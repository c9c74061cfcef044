package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/primeurdirect/primeur-api/internal/domain/entity"
	"github.com/primeurdirect/primeur-api/internal/domain/enum"
	"github.com/primeurdirect/primeur-api/internal/domain/repository"
	"github.com/primeurdirect/primeur-api/pkg/apperror"
	"github.com/primeurdirect/primeur-api/pkg/email"
	"github.com/primeurdirect/primeur-api/pkg/oauth"
	"github.com/primeurdirect/primeur-api/pkg/utils"
	"go.uber.org/zap"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo     repository.UserRepository
	jwtManager   *utils.JWTManager
	googleOAuth  *oauth.GoogleOAuthService
	auditService *AuditService
	emailService *email.EmailService
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	googleOAuth *oauth.GoogleOAuthService,
	auditService *AuditService,
	emailService *email.EmailService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		googleOAuth:  googleOAuth,
		auditService: auditService,
		emailService: emailService,
		logger:       logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsApproved {
		return nil, apperror.NewAppError(403, "Account pending approval")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &user.ID, "LOGIN", "User", &user.ID, nil)

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     *string
}

// Register creates a client account awaiting admin approval
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperror.NewBadRequestError("email and password are required")
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewBadRequestError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  hashed,
		Phone:     input.Phone,
		Role:      enum.RoleClient,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &user.ID, "REGISTER", "User", &user.ID, nil)
	return user, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetProfile retrieves the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents the profile update input
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName *string
	LastName  *string
	Phone     *string
}

// UpdateProfile updates the authenticated user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	user.Shop = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePasswordInput represents the password change input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the authenticated user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.ErrInvalidCredentials
	}
	if len(input.NewPassword) < 8 {
		return apperror.NewBadRequestError("password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Shop = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.auditService.Record(ctx, &user.ID, "CHANGE_PASSWORD", "User", &user.ID, nil)
	return nil
}

// ForgotPassword emails a reset link to the account, if one exists. The
// response is identical either way so the endpoint cannot be used to probe
// for registered addresses.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" {
		return apperror.NewBadRequestError("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.jwtManager.GeneratePasswordResetToken(user.ID)
	if err != nil {
		return err
	}

	go func(to, token string) {
		if sendErr := s.emailService.SendPasswordResetEmail(to, token); sendErr != nil {
			s.logger.Warn("password reset email failed",
				zap.String("email", to),
				zap.Error(sendErr),
			)
		}
	}(user.Email, token)

	s.auditService.Record(ctx, &user.ID, "FORGOT_PASSWORD", "User", &user.ID, nil)
	return nil
}

// ResetPassword sets a new password from a valid reset token
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.jwtManager.ValidatePasswordResetToken(token)
	if err != nil {
		return apperror.ErrInvalidToken
	}
	if len(newPassword) < 8 {
		return apperror.NewBadRequestError("password must be at least 8 characters")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrInvalidToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Shop = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.auditService.Record(ctx, &user.ID, "RESET_PASSWORD", "User", &user.ID, nil)
	return nil
}

// GoogleAuthURL returns the Google consent screen URL
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.googleOAuth.IsConfigured() {
		return "", apperror.NewBadRequestError("Google OAuth is not configured")
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// GoogleLogin exchanges an OAuth code, provisioning the account on first
// sign-in. OAuth accounts are email-verified by definition but still wait
// for admin approval.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Unusable local password; sign-in only via Google
		placeholder, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			FirstName:     info.GivenName,
			LastName:      info.FamilyName,
			Email:         strings.ToLower(info.Email),
			Password:      placeholder,
			Role:          enum.RoleClient,
			EmailVerified: info.VerifiedEmail,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	if !user.IsApproved {
		return nil, apperror.NewAppError(403, "Account pending approval")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, &user.ID, "LOGIN_GOOGLE", "User", &user.ID, nil)

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
