// Package config provides configuration structures and validation for the
// transaction engine. It covers the HTTP server, logging, business limits,
// fraud heuristics, fee surcharges and notification dispatch.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field represents
// one subsystem's settings and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Limits      LimitsConfig
	Fraud       FraudConfig
	Fees        FeesConfig
	Notifier    NotifierConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// LimitsConfig contains transaction amount and volume limits
type LimitsConfig struct {
	MaxAmount         float64 // Single-transaction ceiling, any kind
	DailyDebitLimit   float64 // Cumulative same-day debits per source account
	DepositCeiling    float64 // Deposits above this require external verification
	SuspendedDailyCap float64 // Daily withdrawal cap while an account is suspended
}

// FraudConfig contains fraud heuristic thresholds
type FraudConfig struct {
	MaxDebitsPerHour int           // Debit count allowed inside the trailing window
	Window           time.Duration // Trailing window for the debit counter
	NightAmount      float64       // Debits above this are rejected during the night window
	NightStartHour   int           // Night window start, 24h clock
	NightEndHour     int           // Night window end, 24h clock
}

// FeesConfig contains fee surcharge configuration
type FeesConfig struct {
	DefaultCurrency   string  // Transactions in any other currency pay the foreign surcharge
	ForeignSurcharge  float64 // Flat addition for non-default currencies
	WeekendMultiplier float64 // Multiplier applied on Saturdays and Sundays
}

// NotifierConfig contains notification dispatch configuration
type NotifierConfig struct {
	Async            bool // Deliver completion events on a background worker
	BreakerThreshold int  // Consecutive observer failures before its breaker opens
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Limits config
	if c.Limits.MaxAmount <= 0 {
		validationErrors = append(validationErrors, "LIMITS_MAX_AMOUNT must be greater than 0")
	}
	if c.Limits.DailyDebitLimit <= 0 {
		validationErrors = append(validationErrors, "LIMITS_DAILY_DEBIT_LIMIT must be greater than 0")
	}
	if c.Limits.DepositCeiling <= 0 {
		validationErrors = append(validationErrors, "LIMITS_DEPOSIT_CEILING must be greater than 0")
	}
	if c.Limits.SuspendedDailyCap <= 0 {
		validationErrors = append(validationErrors, "LIMITS_SUSPENDED_DAILY_CAP must be greater than 0")
	}

	// Validate Fraud config
	if c.Fraud.MaxDebitsPerHour <= 0 {
		validationErrors = append(validationErrors, "FRAUD_MAX_DEBITS_PER_HOUR must be greater than 0")
	}
	if c.Fraud.Window <= 0 {
		validationErrors = append(validationErrors, "FRAUD_WINDOW must be greater than 0")
	}
	if c.Fraud.NightAmount <= 0 {
		validationErrors = append(validationErrors, "FRAUD_NIGHT_AMOUNT must be greater than 0")
	}
	if c.Fraud.NightStartHour < 0 || c.Fraud.NightStartHour > 23 {
		validationErrors = append(validationErrors, "FRAUD_NIGHT_START_HOUR must be between 0 and 23")
	}
	if c.Fraud.NightEndHour < 0 || c.Fraud.NightEndHour > 23 {
		validationErrors = append(validationErrors, "FRAUD_NIGHT_END_HOUR must be between 0 and 23")
	}

	// Validate Fees config
	if len(c.Fees.DefaultCurrency) != 3 {
		validationErrors = append(validationErrors, "FEES_DEFAULT_CURRENCY must be a 3-letter code")
	}
	if c.Fees.ForeignSurcharge < 0 {
		validationErrors = append(validationErrors, "FEES_FOREIGN_SURCHARGE must not be negative")
	}
	if c.Fees.WeekendMultiplier < 1 {
		validationErrors = append(validationErrors, "FEES_WEEKEND_MULTIPLIER must be at least 1")
	}

	// Validate Notifier config
	if c.Notifier.BreakerThreshold <= 0 {
		validationErrors = append(validationErrors, "NOTIFIER_BREAKER_THRESHOLD must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
