package oauth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestService() *GoogleOAuthService {
	return NewGoogleOAuthService(GoogleOAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		StateSecret:  "state-key",
	})
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, newTestService().IsConfigured())
	assert.False(t, NewGoogleOAuthService(GoogleOAuthConfig{}).IsConfigured())
}

func TestStateRoundTrip(t *testing.T) {
	svc := newTestService()

	state, err := svc.NewState()
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyState(state))

	assert.ErrorIs(t, svc.VerifyState(state+"x"), ErrInvalidState)
	assert.ErrorIs(t, svc.VerifyState("garbage"), ErrInvalidState)
	assert.ErrorIs(t, svc.VerifyState(""), ErrInvalidState)

	other := NewGoogleOAuthService(GoogleOAuthConfig{StateSecret: "other"})
	assert.ErrorIs(t, other.VerifyState(state), ErrInvalidState)
}

func TestStateExpires(t *testing.T) {
	svc := newTestService()
	state, err := svc.NewState()
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(stateTTL + time.Minute) }
	assert.ErrorIs(t, svc.VerifyState(state), ErrInvalidState)
}

func TestGetAuthURL(t *testing.T) {
	url := newTestService().GetAuthURL("abc")
	assert.True(t, strings.HasPrefix(url, "https://accounts.google.com/"))
	assert.Contains(t, url, "state=abc")
	assert.Contains(t, url, "client_id=client")
}

func TestGetUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id":"42","email":"owner@example.com","verified_email":true,"name":"Owner"}`)
	}))
	defer srv.Close()

	svc := newTestService()
	svc.userInfoURL = srv.URL

	info, err := svc.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, "42", info.ID)
	assert.Equal(t, "owner@example.com", info.Email)
}

func TestGetUserInfoUnverified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"42","email":"owner@example.com","verified_email":false}`)
	}))
	defer srv.Close()

	svc := newTestService()
	svc.userInfoURL = srv.URL

	_, err := svc.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "tok"})
	assert.ErrorIs(t, err, ErrFailedToGetUser)
}
