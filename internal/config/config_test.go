package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 3, cfg.ReminderDays)
	assert.Equal(t, "0 2 * * *", cfg.SnapshotSchedule)
	assert.NotEmpty(t, cfg.DBConn)
	assert.NotEmpty(t, cfg.RiskModelURL)
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REMINDER_DAYS", "7")
	t.Setenv("RISK_MODEL_URL", "http://risk.internal/assess")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 7, cfg.ReminderDays)
	assert.Equal(t, "http://risk.internal/assess", cfg.RiskModelURL)
}

func TestNewConfigInvalidReminderDays(t *testing.T) {
	t.Setenv("REMINDER_DAYS", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}
