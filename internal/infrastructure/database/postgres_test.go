package database

import (
	"context"
	"testing"

	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func TestOwnerProfile(t *testing.T) {
	u := ownerProfile(&config.AdminConfig{}, "owner@example.com", "hash")
	assert.Equal(t, "Owner", u.FullName)
	assert.Equal(t, enum.RoleOwner, u.Role)
	assert.Nil(t, u.ShopID)
	assert.Equal(t, "hash", u.Password)

	u = ownerProfile(&config.AdminConfig{Name: " Jane Wanjiku "}, "o@example.com", "h")
	assert.Equal(t, "Jane Wanjiku", u.FullName)
}

func TestGormLoggerWritesToZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewGormLogger(zap.New(core), false)

	l.Error(context.Background(), "query failed: %s", "boom")
	l.Info(context.Background(), "ignored below warn")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0].Message, "query failed: boom")
		assert.Equal(t, "gorm", entries[0].LoggerName)
	}

	debug := NewGormLogger(zap.New(core), true).LogMode(logger.Info)
	debug.Info(context.Background(), "statement %d", 1)
	assert.Len(t, logs.All(), 2)
}
