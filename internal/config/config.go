package config

import (
	"strings"
	"time"

	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	Branding    BrandingConfig
	System      SystemConfig
	Printer     PrinterConfig
	Email       EmailConfig
	OAuth       OAuthConfig
	Worker      WorkerConfig
	Admin       AdminConfig
	Idempotency IdempotencyConfig

	// EnvFile is false when no .env file was found.
	EnvFile bool
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	Debug       bool
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	MaxIdle  int
	MaxOpen  int
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// BrandingConfig is the shop identity shown on receipts and clients.
type BrandingConfig struct {
	AppName        string
	AppSubtitle    string
	ShopPhone      string
	CurrencySymbol string
	Locale         string
}

// SystemConfig is the deployment kill switch and the billing details shown
// while it is engaged.
type SystemConfig struct {
	Status  enum.SystemStatus
	Billing BillingConfig
}

type BillingConfig struct {
	MpesaNumber  string
	TillNumber   string
	SupportPhone string
	Message      string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
	Timeout time.Duration
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendSuccessURL string
	FrontendErrorURL   string
}

type WorkerConfig struct {
	CleanupInterval time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type IdempotencyConfig struct {
	TTL time.Duration
}

// Load reads .env from the working directory, then the environment.
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	envFile := v.ReadInConfig() == nil
	cfg := load(v)
	cfg.EnvFile = envFile
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "tailorshop-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "tailorshop")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_DISPLAY_NAME", "Fashion House")
	v.SetDefault("APP_SUBTITLE", "Bespoke Tailoring")
	v.SetDefault("SHOP_PHONE", "")
	v.SetDefault("CURRENCY_SYMBOL", "Ksh")
	v.SetDefault("CURRENCY_LOCALE", "en-KE")
	v.SetDefault("SYSTEM_STATUS", "ACTIVE")
	v.SetDefault("BILLING_MPESA_NUMBER", "")
	v.SetDefault("BILLING_TILL_NUMBER", "")
	v.SetDefault("BILLING_SUPPORT_PHONE", "")
	v.SetDefault("BILLING_MESSAGE", "Service suspended. Please settle the outstanding subscription to restore access.")
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("PRINTER_TIMEOUT_SECONDS", 5)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Fashion House")
	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback")
	v.SetDefault("OAUTH_SUCCESS_URL", "http://localhost:3000/auth/success")
	v.SetDefault("OAUTH_ERROR_URL", "http://localhost:3000/login")
	v.SetDefault("CLEANUP_INTERVAL_MINUTES", 60)
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("APP_PORT"),
			Debug:       v.GetBool("APP_DEBUG"),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
			MaxIdle:  v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpen:  v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Branding: BrandingConfig{
			AppName:        v.GetString("APP_DISPLAY_NAME"),
			AppSubtitle:    v.GetString("APP_SUBTITLE"),
			ShopPhone:      v.GetString("SHOP_PHONE"),
			CurrencySymbol: v.GetString("CURRENCY_SYMBOL"),
			Locale:         v.GetString("CURRENCY_LOCALE"),
		},
		System: SystemConfig{
			Status: enum.ParseSystemStatus(v.GetString("SYSTEM_STATUS")),
			Billing: BillingConfig{
				MpesaNumber:  v.GetString("BILLING_MPESA_NUMBER"),
				TillNumber:   v.GetString("BILLING_TILL_NUMBER"),
				SupportPhone: v.GetString("BILLING_SUPPORT_PHONE"),
				Message:      v.GetString("BILLING_MESSAGE"),
			},
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
			Timeout: time.Duration(v.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetInt("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FromName:     v.GetString("SMTP_FROM_NAME"),
			FromEmail:    v.GetString("SMTP_FROM_EMAIL"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
			FrontendSuccessURL: v.GetString("OAUTH_SUCCESS_URL"),
			FrontendErrorURL:   v.GetString("OAUTH_ERROR_URL"),
		},
		Worker: WorkerConfig{
			CleanupInterval: time.Duration(v.GetInt("CLEANUP_INTERVAL_MINUTES")) * time.Minute,
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     v.GetString("ADMIN_NAME"),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// IsProduction reports whether the app runs with production settings.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
