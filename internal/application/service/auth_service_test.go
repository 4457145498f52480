package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/pkg/oauth"
	"github.com/sangkips/tailorshop-api/pkg/utils"
)

type fakeGoogle struct {
	configured bool
	info       *oauth.GoogleUserInfo
	infoErr    error
}

func (g *fakeGoogle) IsConfigured() bool        { return g.configured }
func (g *fakeGoogle) NewState() (string, error) { return "state-1", nil }
func (g *fakeGoogle) GetAuthURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (g *fakeGoogle) VerifyState(state string) error {
	if state != "state-1" {
		return oauth.ErrInvalidState
	}
	return nil
}

func (g *fakeGoogle) ExchangeCode(_ context.Context, code string) (*oauth2.Token, error) {
	if code != "good" {
		return nil, errors.New("bad code")
	}
	return &oauth2.Token{AccessToken: "tok"}, nil
}

func (g *fakeGoogle) GetUserInfo(context.Context, *oauth2.Token) (*oauth.GoogleUserInfo, error) {
	return g.info, g.infoErr
}

func newAuthFixture(t *testing.T, google GoogleProvider) (*AuthService, *stubUserRepo, *entity.User, *utils.JWTManager) {
	t.Helper()
	hash, err := utils.HashPassword("secret-pass")
	require.NoError(t, err)

	shopID := uuid.New()
	manager := &entity.User{
		ID:       uuid.New(),
		FullName: "Jane Manager",
		Email:    "jane@example.com",
		Password: hash,
		Role:     enum.RoleManager,
		ShopID:   &shopID,
		Provider: "local",
	}
	users := newStubUserRepo(manager)
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	return NewAuthService(users, jwtManager, google, zap.NewNop()), users, manager, jwtManager
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, manager, jwtManager := newAuthFixture(t, nil)
	ctx := context.Background()

	out, err := svc.Login(ctx, &LoginInput{Email: " JANE@example.com ", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, manager.ID, out.User.ID)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, *manager.ShopID, *claims.ShopID)

	_, err = svc.Login(ctx, &LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, appErrorCode(err))

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "secret-pass"})
	assert.Equal(t, http.StatusUnauthorized, appErrorCode(err))
}

func TestAuthServiceLoginManagerWithoutShop(t *testing.T) {
	svc, users, manager, _ := newAuthFixture(t, nil)
	users.users[manager.ID].ShopID = nil

	_, err := svc.Login(context.Background(), &LoginInput{Email: manager.Email, Password: "secret-pass"})
	assert.Equal(t, http.StatusForbidden, appErrorCode(err))
}

func TestAuthServiceRefreshToken(t *testing.T) {
	svc, users, manager, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	out, err := svc.Login(ctx, &LoginInput{Email: manager.Email, Password: "secret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, out.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, appErrorCode(err))

	delete(users.users, manager.ID)
	_, err = svc.RefreshToken(ctx, out.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, appErrorCode(err))
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, users, manager, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID: manager.ID, CurrentPassword: "nope-nope", NewPassword: "brand-new-pass",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(err))

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID: manager.ID, CurrentPassword: "secret-pass", NewPassword: "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(err))

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID: manager.ID, CurrentPassword: "secret-pass", NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("brand-new-pass", users.users[manager.ID].Password))

	err = svc.ChangePassword(ctx, &ChangePasswordInput{UserID: uuid.New(), NewPassword: "brand-new-pass"})
	assert.Equal(t, http.StatusNotFound, appErrorCode(err))
}

func TestAuthServiceGoogleNotConfigured(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t, &fakeGoogle{})

	_, _, err := svc.GoogleAuthURL()
	assert.Equal(t, http.StatusServiceUnavailable, appErrorCode(err))

	_, err = svc.GoogleLogin(context.Background(), "state-1", "good")
	assert.Equal(t, http.StatusServiceUnavailable, appErrorCode(err))
}

func TestAuthServiceGoogleLogin(t *testing.T) {
	google := &fakeGoogle{
		configured: true,
		info:       &oauth.GoogleUserInfo{ID: "g-123", Email: "Jane@Example.com", VerifiedEmail: true},
	}
	svc, users, manager, _ := newAuthFixture(t, google)
	ctx := context.Background()

	url, state, err := svc.GoogleAuthURL()
	require.NoError(t, err)
	assert.Equal(t, "state-1", state)
	assert.Contains(t, url, "state=state-1")

	t.Run("bad state", func(t *testing.T) {
		_, err := svc.GoogleLogin(ctx, "forged", "good")
		assert.Equal(t, http.StatusBadRequest, appErrorCode(err))
	})

	t.Run("bad code", func(t *testing.T) {
		_, err := svc.GoogleLogin(ctx, "state-1", "bad")
		assert.Equal(t, http.StatusBadRequest, appErrorCode(err))
	})

	t.Run("links by email", func(t *testing.T) {
		out, err := svc.GoogleLogin(ctx, "state-1", "good")
		require.NoError(t, err)
		assert.Equal(t, manager.ID, out.User.ID)

		stored := users.users[manager.ID]
		assert.Equal(t, "google", stored.Provider)
		require.NotNil(t, stored.ProviderID)
		assert.Equal(t, "g-123", *stored.ProviderID)
	})

	t.Run("matches provider id", func(t *testing.T) {
		google.info = &oauth.GoogleUserInfo{ID: "g-123", Email: "renamed@example.com", VerifiedEmail: true}
		out, err := svc.GoogleLogin(ctx, "state-1", "good")
		require.NoError(t, err)
		assert.Equal(t, manager.ID, out.User.ID)
	})

	t.Run("linked to another account", func(t *testing.T) {
		google.info = &oauth.GoogleUserInfo{ID: "g-999", Email: "jane@example.com", VerifiedEmail: true}
		_, err := svc.GoogleLogin(ctx, "state-1", "good")
		assert.Equal(t, http.StatusConflict, appErrorCode(err))
	})

	t.Run("unknown profile", func(t *testing.T) {
		google.info = &oauth.GoogleUserInfo{ID: "g-555", Email: "stranger@example.com", VerifiedEmail: true}
		_, err := svc.GoogleLogin(ctx, "state-1", "good")
		assert.Equal(t, http.StatusForbidden, appErrorCode(err))
	})

	t.Run("user info failure", func(t *testing.T) {
		google.info, google.infoErr = nil, oauth.ErrFailedToGetUser
		_, err := svc.GoogleLogin(ctx, "state-1", "good")
		assert.Equal(t, http.StatusBadGateway, appErrorCode(err))
	})
}
