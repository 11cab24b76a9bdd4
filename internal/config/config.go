// Package config centralizes configuration loading for the service.
//
// Configuration comes from an optional creditline.yaml in the working
// directory plus environment variables prefixed CREDITLINE_, e.g.
// CREDITLINE_REDIS_ADDR overrides redis.addr. Environment variables win.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the full service configuration, resolved once at startup.
type Config struct {
	// Env selects the rate-limit profile (development/staging/production).
	// Unknown names resolve to development downstream; validation here only
	// requires it to be non-empty.
	Env string `mapstructure:"env" validate:"required"`

	// Addr is the listen address of the HTTP server.
	Addr string `mapstructure:"addr" validate:"required"`

	// AdminKey guards mutating admin endpoints. Empty disables the check,
	// which is only acceptable in development.
	AdminKey string `mapstructure:"admin_key"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the optional distributed counter store. When
// Enabled is false the service uses the in-memory store.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// Load reads the configuration file if present, applies environment
// overrides and defaults, and validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("creditline")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CREDITLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
		// No config file: run on env vars and defaults alone.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindEnvKeys binds nested keys explicitly so AutomaticEnv picks them up
// even before they appear in any config source.
func bindEnvKeys(v *viper.Viper) {
	_ = v.BindEnv("env")
	_ = v.BindEnv("addr")
	_ = v.BindEnv("admin_key")
	_ = v.BindEnv("redis.enabled")
	_ = v.BindEnv("redis.addr")
	_ = v.BindEnv("redis.password")
	_ = v.BindEnv("redis.db")
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}
