package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/oauth"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const providerGoogle = "google"

// GoogleProvider is the external identity provider used for Google sign-in.
type GoogleProvider interface {
	IsConfigured() bool
	NewState() (string, error)
	VerifyState(state string) error
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.GoogleUserInfo, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	google     GoogleProvider
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	google GoogleProvider,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		google:     google,
		log:        log,
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
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// issueTokens signs a token pair for user. Managers without a shop cannot
// sign in: every route they could reach is shop scoped.
func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	if !user.IsOwner() && user.ShopID == nil {
		return nil, apperror.NewForbiddenError("Profile is not assigned to a shop")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role), user.ShopID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken generates new tokens from a refresh token. The profile is
// re-read so role and shop changes take effect.
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
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	// Google-only profiles set their first password without a current one.
	if user.Password != "" && !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewFieldError("current_password", "Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if errors.Is(err, utils.ErrPasswordTooShort) {
		return apperror.NewFieldError("new_password", err.Error())
	}
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword)
}

// GoogleAuthURL returns the consent URL and the state the callback must echo.
func (s *AuthService) GoogleAuthURL() (string, string, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return "", "", apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}

	state, err := s.google.NewState()
	if err != nil {
		return "", "", err
	}
	return s.google.GetAuthURL(state), state, nil
}

// GoogleLogin completes Google sign-in. Only existing profiles may sign in;
// the first successful sign-in links the Google account to the profile.
func (s *AuthService) GoogleLogin(ctx context.Context, state, code string) (*LoginOutput, error) {
	if s.google == nil || !s.google.IsConfigured() {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, oauth.ErrOAuthNotConfigured.Error())
	}
	if err := s.google.VerifyState(state); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	token, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError(oauth.ErrInvalidCode.Error())
	}
	info, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		s.log.Warn("google user info failed", zap.Error(err))
		return nil, apperror.NewAppError(http.StatusBadGateway, oauth.ErrFailedToGetUser.Error())
	}

	user, err := s.userRepo.GetByProviderID(ctx, providerGoogle, info.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.linkGoogleProfile(ctx, info)
		if err != nil {
			return nil, err
		}
	}

	return s.issueTokens(user)
}

func (s *AuthService) linkGoogleProfile(ctx context.Context, info *oauth.GoogleUserInfo) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(info.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewForbiddenError("No profile exists for this Google account")
	}
	if user.ProviderID != nil && *user.ProviderID != info.ID {
		return nil, apperror.NewConflictError("Profile is linked to another Google account")
	}

	providerID := info.ID
	user.Provider = providerGoogle
	user.ProviderID = &providerID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("linked google account", zap.String("user_id", user.ID.String()))
	return user, nil
}
