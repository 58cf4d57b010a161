package config

import (
	"fmt"
	"strings"

	"hogarboard/internal/finance"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Sheet struct {
		// URL is the spreadsheet export the finance widgets read from.
		URL                 string `mapstructure:"url" yaml:"url"`
		CacheTTLSeconds     int    `mapstructure:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
		PollIntervalSeconds int    `mapstructure:"poll_interval_seconds" yaml:"poll_interval_seconds"`
	} `mapstructure:"sheet" yaml:"sheet"`

	Finance struct {
		TransactionRowCap int               `mapstructure:"transaction_row_cap" yaml:"transaction_row_cap"`
		RolloverDay       int               `mapstructure:"rollover_day" yaml:"rollover_day"`
		NetWorthCell      string            `mapstructure:"net_worth_cell" yaml:"net_worth_cell"`
		Columns           finance.ColumnMap `mapstructure:"columns" yaml:"columns"`
	} `mapstructure:"finance" yaml:"finance"`

	Widgets struct {
		// File holds the custom widget definitions (widgets.yaml).
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"widgets" yaml:"widgets"`

	Hub struct {
		BaseURL string `mapstructure:"base_url" yaml:"base_url"`
		Token   string `mapstructure:"token" yaml:"-"` // Never serialize the token
	} `mapstructure:"hub" yaml:"hub"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional yaml config file, then HOGAR_-prefixed
// environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.hogarboard")
	v.AddConfigPath(".hogarboard")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HOGAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key and hub token always come from unprefixed env vars.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("hub.token", "HUB_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind HUB_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sheet.url", "")
	v.SetDefault("sheet.cache_ttl_seconds", 60)
	v.SetDefault("sheet.poll_interval_seconds", 300)

	v.SetDefault("finance.transaction_row_cap", finance.DefaultTxRowCap)
	v.SetDefault("finance.rollover_day", finance.DefaultRolloverDay)
	v.SetDefault("finance.net_worth_cell", "")

	cols := finance.DefaultColumnMap()
	v.SetDefault("finance.columns.tx_date", cols.TxDate)
	v.SetDefault("finance.columns.tx_description", cols.TxDescription)
	v.SetDefault("finance.columns.tx_amount", cols.TxAmount)
	v.SetDefault("finance.columns.tx_category", cols.TxCategory)
	v.SetDefault("finance.columns.month", cols.Month)
	v.SetDefault("finance.columns.category_name", cols.CategoryName)
	v.SetDefault("finance.columns.budget", cols.Budget)
	v.SetDefault("finance.columns.actual", cols.Actual)
	v.SetDefault("finance.columns.income", cols.Income)
	v.SetDefault("finance.columns.actual_expense", cols.ActualExpense)
	v.SetDefault("finance.columns.planned_expense", cols.PlannedExpense)

	v.SetDefault("widgets.file", "widgets.yaml")

	v.SetDefault("hub.base_url", "")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Sheet.CacheTTLSeconds < 1 {
		return fmt.Errorf("sheet.cache_ttl_seconds must be positive, got: %d", config.Sheet.CacheTTLSeconds)
	}

	if config.Sheet.PollIntervalSeconds < 1 {
		return fmt.Errorf("sheet.poll_interval_seconds must be positive, got: %d", config.Sheet.PollIntervalSeconds)
	}

	if config.Finance.TransactionRowCap < 1 {
		return fmt.Errorf("finance.transaction_row_cap must be positive, got: %d", config.Finance.TransactionRowCap)
	}

	if config.Finance.RolloverDay < 1 || config.Finance.RolloverDay > 28 {
		return fmt.Errorf("finance.rollover_day must be between 1 and 28, got: %d", config.Finance.RolloverDay)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logger from the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
