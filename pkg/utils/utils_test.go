package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID, shopID := uuid.New(), uuid.New()

	token, err := m.GenerateAccessToken(userID, "mgr@example.com", "manager", &shopID)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, shopID, *claims.ShopID)
}

func TestAccessTokenRejections(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "o@example.com", "owner", nil)
	require.NoError(t, err)

	other := NewJWTManager("other", time.Hour, time.Hour)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("secret", time.Hour, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.ValidateAccessToken(token)
	assert.Error(t, err)

	refresh, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)
	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	access, err := m.GenerateAccessToken(userID, "a@b.c", "owner", nil)
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hashed))
	assert.False(t, CheckPasswordHash("wrong horse", hashed))
	assert.False(t, CheckPasswordHash("anything", ""))
}

func TestParseOptionalUUID(t *testing.T) {
	id, err := ParseOptionalUUID("")
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseOptionalUUID("all")
	assert.NoError(t, err)
	assert.Nil(t, id)

	want := uuid.New()
	id, err = ParseOptionalUUID(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, *id)

	_, err = ParseOptionalUUID("nope")
	assert.Error(t, err)

	ids, err := ParseUUIDs([]string{want.String(), " ", want.String()})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}
