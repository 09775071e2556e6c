package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Sito Storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "http://localhost:8001", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.True(t, strings.HasSuffix(cfg.Session.File, "session.json"))
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "api config override",
			envVars: map[string]string{
				"API_BASE_URL": "https://store.example.com",
				"API_TIMEOUT":  "5s",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "https://store.example.com", cfg.API.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.API.Timeout)
			},
		},
		{
			name: "session file override",
			envVars: map[string]string{
				"SESSION_FILE": "/tmp/sito-session.json",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "/tmp/sito-session.json", cfg.Session.File)
			},
		},
		{
			name: "logging override",
			envVars: map[string]string{
				"LOG_LEVEL":  "debug",
				"LOG_FORMAT": "json",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "invalid timeout falls back to default",
			envVars: map[string]string{
				"API_TIMEOUT": "not-a-duration",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "API_BASE_URL is required",
		},
		{
			name:    "non-http base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			wantErr: "API_BASE_URL must be an http(s) URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "API_TIMEOUT must be positive",
		},
		{
			name:    "missing session file",
			mutate:  func(c *Config) { c.Session.File = "" },
			wantErr: "SESSION_FILE is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
