package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/tailorshop-api/internal/config"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormWriter routes gorm's own log lines through zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

// NewGormLogger builds a gorm logger on top of log. Debug mode logs every
// statement, otherwise only slow queries and errors.
func NewGormLogger(log *zap.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(gormWriter{log: log.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: NewGormLogger(log, debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.Shop{},
		&entity.User{},
		&entity.Worker{},
		&entity.Order{},
		&entity.Payment{},
		&entity.Expense{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// At most one manager per shop.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_shop_manager
		ON users (shop_id) WHERE role = 'manager'`).Error
	if err != nil {
		return fmt.Errorf("failed to create manager index: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedOwner creates the owner profile from ADMIN_EMAIL and ADMIN_PASSWORD when
// it does not exist yet. Existing profiles are left untouched.
func SeedOwner(db *gorm.DB, cfg *config.AdminConfig, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping owner seed")
		return nil
	}

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info("owner profile already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	owner := ownerProfile(cfg, email, hashed)
	if err := db.Create(owner).Error; err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}

	log.Info("owner profile created", zap.String("email", email))
	return nil
}

func ownerProfile(cfg *config.AdminConfig, email, hashed string) *entity.User {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Owner"
	}
	return &entity.User{
		FullName: name,
		Email:    email,
		Password: hashed,
		Role:     enum.RoleOwner,
		Provider: "local",
	}
}
