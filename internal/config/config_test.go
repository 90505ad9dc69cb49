package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		cfg := Load()
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, "demo-user", cfg.DemoMemberID)
		require.Equal(t, time.Hour, cfg.MaterializeInterval)
	})

	t.Run("reads overrides from env", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DEMO_MEMBER_ID", "alice")
		t.Setenv("MATERIALIZE_INTERVAL", "15m")

		cfg := Load()
		require.Equal(t, "9090", cfg.Port)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, "alice", cfg.DemoMemberID)
		require.Equal(t, 15*time.Minute, cfg.MaterializeInterval)
	})

	t.Run("ignores malformed durations", func(t *testing.T) {
		t.Setenv("MATERIALIZE_INTERVAL", "soon")
		cfg := Load()
		require.Equal(t, time.Hour, cfg.MaterializeInterval)
	})
}
