package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "missing-env")
	t.Setenv("DRIVE_QUOTA_LIMIT", "6")
	t.Setenv("DRIVE_STORAGE_BACKEND", "segment")
	t.Setenv("DRIVE_BASE_URL", "https://drive.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Quota.Limit)
	assert.Equal(t, time.Minute, cfg.QuotaWindow())
	assert.Equal(t, "segment", cfg.Storage.Backend)
	assert.Equal(t, "https://drive.example.com", cfg.App.BaseURL)
	assert.Equal(t, 5, cfg.Zip.MaxFiles)
	assert.Equal(t, 24*time.Hour, cfg.ShareTTL())
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/drive.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero limit", mutate: func(c *Config) { c.Quota.Limit = 0 }, wantErr: true},
		{name: "zero window", mutate: func(c *Config) { c.Quota.WindowSeconds = 0 }, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Backend = "tape" }, wantErr: true},
		{name: "redis quota without addr", mutate: func(c *Config) { c.Quota.Backend = "redis" }, wantErr: true},
		{name: "redis quota with addr", mutate: func(c *Config) {
			c.Quota.Backend = "redis"
			c.Redis.Addr = "localhost:6379"
		}},
		{name: "retention shorter than window", mutate: func(c *Config) { c.Quota.RetentionSeconds = 30 }, wantErr: true},
		{name: "retention covering window", mutate: func(c *Config) { c.Quota.RetentionSeconds = 3600 }},
		{name: "bad compression", mutate: func(c *Config) { c.Zip.CompressionLevel = 12 }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
