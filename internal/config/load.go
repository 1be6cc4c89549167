package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SCHEMADOC"

// defaults lists every known key with its default value. Keys without a
// sensible default are registered with an empty value so that viper binds
// the matching environment variable during Unmarshal.
var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.shutdown_timeout": 15 * time.Second,
	"database.url":            "",
	"redis.url":               "redis://localhost:6379/0",
	"redis.key_prefix":        "dbdocumenter",
	"redis.ttl":               24 * time.Hour,
	"auth.jwt_secret":         "",
	"auth.token_lifetime":     time.Hour,
	"llm.gemini_api_key":      "",
	"llm.model_name":          "gemini-2.0-flash",
	"llm.max_retries":         2,
	"llm.retry_delay_seconds": 2,
	"llm.requests_per_minute": 60,
	"llm.temperature":         0.2,
	"documenter.schemas":      []string{"public"},
	"documenter.worker_count": 2,
	"documenter.queue_size":   100,
	"documenter.task_timeout": 10 * time.Minute,
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching for config.yaml in the working directory.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
