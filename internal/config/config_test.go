package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credexa/creditline-api/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.AdminKey)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CREDITLINE_ENV", "production")
	t.Setenv("CREDITLINE_ADDR", ":9090")
	t.Setenv("CREDITLINE_ADMIN_KEY", "s3cret")
	t.Setenv("CREDITLINE_REDIS_ENABLED", "true")
	t.Setenv("CREDITLINE_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("CREDITLINE_REDIS_DB", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.AdminKey)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Env:  "staging",
		Addr: ":8080",
		Redis: config.RedisConfig{
			Enabled: true,
			Addr:    "localhost:6379",
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "missing env", mutate: func(c *config.Config) { c.Env = "" }},
		{name: "missing addr", mutate: func(c *config.Config) { c.Addr = "" }},
		{name: "redis enabled without addr", mutate: func(c *config.Config) { c.Redis.Addr = "" }},
		{name: "negative redis db", mutate: func(c *config.Config) { c.Redis.DB = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
