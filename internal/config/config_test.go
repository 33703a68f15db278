package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Applies defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := Load("test")

		require.NoError(t, err)
		assert.Equal(t, ":3000", cfg.ServerAddr)
		assert.Equal(t, "test", cfg.Environment)
		assert.Equal(t, GeminiDriverHTTP, cfg.GeminiConnectorCfg.Driver)
		assert.Equal(t, "test-key", cfg.GeminiConnectorCfg.APIKey)
		assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiConnectorCfg.Url)
		assert.Equal(t, uint(1), cfg.GeminiConnectorCfg.Retry.Attempts)
		assert.False(t, cfg.GeminiConnectorCfg.Breaker.Enabled)
		assert.Equal(t, "uploads", cfg.FileUploadCfg.ScratchDir)
		assert.Equal(t, "multimodal-set-1", cfg.FileUploadCfg.DefaultEmbeddingSet)
		assert.Equal(t, time.Duration(0), cfg.FileStoreCfg.TTL)
	})

	t.Run("Parses overrides", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("SERVER_ADDR", ":8080")
		t.Setenv("GEMINI_DRIVER", "sdk")
		t.Setenv("GEMINI_RETRY_ATTEMPTS", "3")
		t.Setenv("FILE_STORE_TTL", "15m")

		cfg, err := Load("test")

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ServerAddr)
		assert.Equal(t, GeminiDriverSDK, cfg.GeminiConnectorCfg.Driver)
		assert.Equal(t, uint(3), cfg.GeminiConnectorCfg.Retry.Attempts)
		assert.Equal(t, 15*time.Minute, cfg.FileStoreCfg.TTL)
	})

	t.Run("Requires API key unless mocks are enabled", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load("test")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")

		t.Setenv("ENABLE_MOCKS", "true")
		_, err = Load("test")
		assert.NoError(t, err)
	})

	t.Run("Reports every invalid value", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GEMINI_DRIVER", "grpc")
		t.Setenv("GEMINI_RETRY_ATTEMPTS", "0")
		t.Setenv("REQUEST_TIMEOUT", "0s")

		_, err := Load("test")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
		assert.Contains(t, err.Error(), "GEMINI_DRIVER")
		assert.Contains(t, err.Error(), "GEMINI_RETRY_ATTEMPTS")
	})
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
