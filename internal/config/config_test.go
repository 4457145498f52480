package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/sangkips/tailorshop-api/internal/domain/enum"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.App.Port)
				assert.Equal(t, enum.SystemActive, cfg.System.Status)
				assert.Equal(t, "Ksh", cfg.Branding.CurrencySymbol)
				assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
				assert.Equal(t, time.Hour, cfg.Worker.CleanupInterval)
				assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
				assert.Contains(t, cfg.CORS.AllowedHeaders, "Idempotency-Key")
				assert.Equal(t, "none", cfg.Printer.Type)
			},
		},
		{
			name: "kill switch engaged",
			env: map[string]string{
				"SYSTEM_STATUS":        "suspended",
				"BILLING_MPESA_NUMBER": "0712345678",
				"BILLING_TILL_NUMBER":  "555123",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, enum.SystemSuspended, cfg.System.Status)
				assert.Equal(t, "0712345678", cfg.System.Billing.MpesaNumber)
				assert.Equal(t, "555123", cfg.System.Billing.TillNumber)
			},
		},
		{
			name: "unknown status stays active",
			env:  map[string]string{"SYSTEM_STATUS": "maintenance"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, enum.SystemActive, cfg.System.Status)
			},
		},
		{
			name: "lists and durations",
			env: map[string]string{
				"CORS_ALLOWED_ORIGINS":     "https://a.example, https://b.example ,",
				"PRINTER_TIMEOUT_SECONDS":  "9",
				"CLEANUP_INTERVAL_MINUTES": "5",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, 9*time.Second, cfg.Printer.Timeout)
				assert.Equal(t, 5*time.Minute, cfg.Worker.CleanupInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			v := viper.New()
			v.AutomaticEnv()
			tt.check(t, load(v))
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
