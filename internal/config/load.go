package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigWithName loads configuration using the specified name, auto-detecting the file type
// This is useful when the configuration file extension is unknown or variable
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration with explicit name and type specification
// Use this when you need to force a specific configuration format (e.g., "yaml", "json")
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// LoadConfig loads configuration from a .env file using the provided base name
// This is the preferred method for loading environment-specific configurations
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig handles configuration loading from files and environment variables.
// It implements a layered approach to configuration:
// 1. Load defaults
// 2. Override with config file values (if found)
// 3. Override with environment variables
// 4. Validate the final configuration
func loadConfig(configName, configType string) (*Config, error) {
	// Initialize viper with default values
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	// Add config paths in order of priority
	v.AddConfigPath("./configs") // First check in configs directory
	v.AddConfigPath(".")         // Then check in root directory

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv() // Automatically read matching environment variables

	// Build the config struct
	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Limits: LimitsConfig{
			MaxAmount:         v.GetFloat64("LIMITS_MAX_AMOUNT"),
			DailyDebitLimit:   v.GetFloat64("LIMITS_DAILY_DEBIT_LIMIT"),
			DepositCeiling:    v.GetFloat64("LIMITS_DEPOSIT_CEILING"),
			SuspendedDailyCap: v.GetFloat64("LIMITS_SUSPENDED_DAILY_CAP"),
		},
		Fraud: FraudConfig{
			MaxDebitsPerHour: v.GetInt("FRAUD_MAX_DEBITS_PER_HOUR"),
			Window:           v.GetDuration("FRAUD_WINDOW"),
			NightAmount:      v.GetFloat64("FRAUD_NIGHT_AMOUNT"),
			NightStartHour:   v.GetInt("FRAUD_NIGHT_START_HOUR"),
			NightEndHour:     v.GetInt("FRAUD_NIGHT_END_HOUR"),
		},
		Fees: FeesConfig{
			DefaultCurrency:   v.GetString("FEES_DEFAULT_CURRENCY"),
			ForeignSurcharge:  v.GetFloat64("FEES_FOREIGN_SURCHARGE"),
			WeekendMultiplier: v.GetFloat64("FEES_WEEKEND_MULTIPLIER"),
		},
		Notifier: NotifierConfig{
			Async:            v.GetBool("NOTIFIER_ASYNC"),
			BreakerThreshold: v.GetInt("NOTIFIER_BREAKER_THRESHOLD"),
		},
	}

	// Validate the configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults initializes configuration with sensible default values.
// These values are used when no configuration file or environment variables are present.
func setDefaults(v *viper.Viper) {
	// HTTP Server defaults - tuned for typical web application workloads
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Business limit defaults - the reference rule set
	v.SetDefault("LIMITS_MAX_AMOUNT", 50000.0)
	v.SetDefault("LIMITS_DAILY_DEBIT_LIMIT", 10000.0)
	v.SetDefault("LIMITS_DEPOSIT_CEILING", 10000.0)
	v.SetDefault("LIMITS_SUSPENDED_DAILY_CAP", 500.0)

	// Fraud heuristic defaults - trailing hourly window and a night curfew
	v.SetDefault("FRAUD_MAX_DEBITS_PER_HOUR", 5)
	v.SetDefault("FRAUD_WINDOW", time.Hour)
	v.SetDefault("FRAUD_NIGHT_AMOUNT", 5000.0)
	v.SetDefault("FRAUD_NIGHT_START_HOUR", 23)
	v.SetDefault("FRAUD_NIGHT_END_HOUR", 6)

	// Fee surcharge defaults - EUR is the home currency
	v.SetDefault("FEES_DEFAULT_CURRENCY", "EUR")
	v.SetDefault("FEES_FOREIGN_SURCHARGE", 0.50)
	v.SetDefault("FEES_WEEKEND_MULTIPLIER", 1.10)

	// Notifier defaults - synchronous dispatch keeps completion ordering trivial
	v.SetDefault("NOTIFIER_ASYNC", false)
	v.SetDefault("NOTIFIER_BREAKER_THRESHOLD", 5)

	// Logging defaults - 'info' provides good balance of information vs noise
	v.SetDefault("LOG_LEVEL", "info")

	// Application defaults - development-friendly baseline configuration
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "transaction-engine")
}
