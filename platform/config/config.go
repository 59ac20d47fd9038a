// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SheetsConfig provides credentials and identifiers for the spreadsheet store.
type SheetsConfig interface {
	GetSheetsSpreadsheetID() string
	GetSheetsClientID() string
	GetSheetsClientSecret() string
	GetSheetsRefreshToken() string
	GetSheetsInquiryRange() string
	GetSheetsConfigRange() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminEmail() string
}

// AdminConfig provides settings for the admin JWT guard on config endpoints.
type AdminConfig interface {
	GetAdminJWTSecret() string
}

// SchedulerConfig provides settings for the asynq notification queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// RateLimitConfig provides settings for the submission rate limiter.
type RateLimitConfig interface {
	GetSubmitRateLimit() int
	GetSubmitRateWindow() time.Duration
}

// SettingsConfig provides settings for the quote-settings resolver cache.
type SettingsConfig interface {
	GetSettingsTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	SheetsSpreadsheetID string
	SheetsClientID      string
	SheetsClientSecret  string
	SheetsRefreshToken  string
	SheetsInquiryRange  string
	SheetsConfigRange   string
	EmailEnabled        bool
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	AdminEmail          string
	AdminJWTSecret      string
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
	SubmitRateLimit     int
	SubmitRateWindow    time.Duration
	SettingsTTL         time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SheetsConfig implementation
func (c *Config) GetSheetsSpreadsheetID() string { return c.SheetsSpreadsheetID }
func (c *Config) GetSheetsClientID() string      { return c.SheetsClientID }
func (c *Config) GetSheetsClientSecret() string  { return c.SheetsClientSecret }
func (c *Config) GetSheetsRefreshToken() string  { return c.SheetsRefreshToken }
func (c *Config) GetSheetsInquiryRange() string  { return c.SheetsInquiryRange }
func (c *Config) GetSheetsConfigRange() string   { return c.SheetsConfigRange }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetAdminEmail() string       { return c.AdminEmail }

// AdminConfig implementation
func (c *Config) GetAdminJWTSecret() string { return c.AdminJWTSecret }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// RateLimitConfig implementation
func (c *Config) GetSubmitRateLimit() int            { return c.SubmitRateLimit }
func (c *Config) GetSubmitRateWindow() time.Duration { return c.SubmitRateWindow }

// SettingsConfig implementation
func (c *Config) GetSettingsTTL() time.Duration { return c.SettingsTTL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		SheetsSpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsClientID:      getEnv("SHEETS_CLIENT_ID", ""),
		SheetsClientSecret:  getEnv("SHEETS_CLIENT_SECRET", ""),
		SheetsRefreshToken:  getEnv("SHEETS_REFRESH_TOKEN", ""),
		SheetsInquiryRange:  getEnv("SHEETS_INQUIRY_RANGE", "Inquiries!A:P"),
		SheetsConfigRange:   getEnv("SHEETS_CONFIG_RANGE", "Config!A:B"),
		EmailEnabled:        emailEnabled && smtpHost != "",
		SMTPHost:            smtpHost,
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Studio"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminEmail:          getEnv("ADMIN_EMAIL", ""),
		AdminJWTSecret:      getEnv("ADMIN_JWT_SECRET", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTLSInsecure:    strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:      getEnv("ASYNQ_QUEUE_NAME", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		SubmitRateLimit:     mustInt(getEnv("SUBMIT_RATE_LIMIT", "10")),
		SubmitRateWindow:    mustDuration(getEnv("SUBMIT_RATE_WINDOW", "1m")),
		SettingsTTL:         mustDuration(getEnv("SETTINGS_CACHE_TTL", "5m")),
	}

	if cfg.SheetsSpreadsheetID == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
	}
	if cfg.SheetsClientID == "" || cfg.SheetsClientSecret == "" || cfg.SheetsRefreshToken == "" {
		return nil, fmt.Errorf("SHEETS_CLIENT_ID, SHEETS_CLIENT_SECRET and SHEETS_REFRESH_TOKEN are required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.SubmitRateLimit < 1 {
		return nil, fmt.Errorf("SUBMIT_RATE_LIMIT must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
