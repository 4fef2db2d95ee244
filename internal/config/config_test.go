package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("OVERTIME_RECOMPUTE_POLICY", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Manila", cfg.Timezone)
	assert.Equal(t, "Asia/Manila", cfg.Location.String())
	assert.Equal(t, OvertimePolicyGoverned, cfg.OvertimePolicy)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, "30 12 * * *", cfg.Cron.SalaryGeneration)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("OVERTIME_RECOMPUTE_POLICY", "ALL")
	t.Setenv("OUTBOX_POLL_INTERVAL", "750ms")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, OvertimePolicyAll, cfg.OvertimePolicy)
	assert.Equal(t, 750*time.Millisecond, cfg.OutboxPollInterval)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("OVERTIME_RECOMPUTE_POLICY", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequireKafka(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireKafka())

	cfg.KafkaBroker = "localhost:9092"
	assert.NoError(t, cfg.RequireKafka())
}
