package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every environment-derived setting the service needs.
type Config struct {
	Environment string
	HTTPAddr    string
	DatabaseDSN string

	// Stripe / payment routing.
	StripeSecretKey     string
	StripeWebhookSecret string
	PlatformAccountID   string

	// Hosted auth provider shared secret for bearer token verification.
	AuthJWTSecret string

	// Base URL used to build checkout return and Connect onboarding URLs.
	AppBaseURL string

	// Optional outbound SMS notification endpoint. Empty disables dispatch.
	SMSWebhookURL string

	// Optional OTLP trace collector endpoint. Empty disables export.
	OTLPEndpoint string

	// Recurring job duplication worker.
	RecurringEnabled bool
}

var (
	ErrMissingDatabaseDSN   = errors.New("missing_database_dsn")
	ErrMissingStripeKey     = errors.New("missing_stripe_secret_key")
	ErrMissingWebhookSecret = errors.New("missing_stripe_webhook_secret")
	ErrMissingAuthSecret    = errors.New("missing_auth_jwt_secret")
	ErrMissingPlatformAcct  = errors.New("missing_platform_account_id")
)

// Load reads configuration from the environment. A .env file is honored when
// present so local development matches deployed behavior.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:         getenv("APP_ENV", "development"),
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PlatformAccountID:   os.Getenv("PLATFORM_ACCOUNT_ID"),
		AuthJWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		AppBaseURL:          strings.TrimRight(getenv("APP_BASE_URL", "http://localhost:8080"), "/"),
		SMSWebhookURL:       os.Getenv("SMS_WEBHOOK_URL"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RecurringEnabled:    getenvBool("RECURRING_JOBS_ENABLED", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the payment core cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return ErrMissingDatabaseDSN
	}
	if strings.TrimSpace(c.StripeSecretKey) == "" {
		return ErrMissingStripeKey
	}
	if strings.TrimSpace(c.StripeWebhookSecret) == "" {
		return ErrMissingWebhookSecret
	}
	if strings.TrimSpace(c.AuthJWTSecret) == "" {
		return ErrMissingAuthSecret
	}
	if strings.TrimSpace(c.PlatformAccountID) == "" {
		return ErrMissingPlatformAcct
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
