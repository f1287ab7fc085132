package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.InDelta(t, 0.2, cfg.Gemini.Temperature, 0.001)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileSize)
	assert.False(t, cfg.Upload.StrictPDF)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 2, cfg.Retry.Multiplier)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STRICT_UPLOADS", "true")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("RETRY_BASE_DELAY", "250ms")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Upload.StrictPDF)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSize)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)
}

func TestGetEnvAsDuration_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("RETRY_BASE_DELAY", "not-a-duration")

	cfg := Load()
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
}
