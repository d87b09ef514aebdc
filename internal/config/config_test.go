package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDSNAndOutputDir(t *testing.T) {
	t.Setenv("SYNOPTIC_POSTGRES_DSN", "")
	t.Setenv("SYNOPTIC_OUTPUT_DIR", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SYNOPTIC_POSTGRES_DSN", "postgres://localhost/synoptic")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("SYNOPTIC_OUTPUT_DIR", "/var/lib/synoptic")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/synoptic", cfg.Database.DSN)
	require.Equal(t, "/var/lib/synoptic", cfg.Output.Dir)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SYNOPTIC_POSTGRES_DSN", "postgres://localhost/synoptic")
	t.Setenv("SYNOPTIC_OUTPUT_DIR", "/var/lib/synoptic")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 10*time.Minute, cfg.Interval())
	require.Equal(t, 30*time.Second, cfg.QueryTimeout())
	require.Equal(t, 25, cfg.SMTP.Port)
	// Default TTL covers two intervals.
	require.Equal(t, 20*time.Minute, cfg.CacheTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SYNOPTIC_POSTGRES_DSN", "postgres://localhost/synoptic")
	t.Setenv("SYNOPTIC_OUTPUT_DIR", "/var/lib/synoptic")
	t.Setenv("SYNOPTIC_INTERVAL_MINUTES", "5")
	t.Setenv("SYNOPTIC_CACHE_TTL_MINUTES", "45")
	t.Setenv("SYNOPTIC_CHART_PALETTE", "ff0000,00ff00")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 5*time.Minute, cfg.Interval())
	require.Equal(t, 45*time.Minute, cfg.CacheTTL())
	require.Equal(t, []string{"ff0000", "00ff00"}, cfg.Output.Palette)
}
