package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	b, err := json.Marshal(data)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, "cfg.json", map[string]any{
		"database_dsn":          "todo.db",
		"notification_sink":     "mqtt",
		"notifications_enabled": false,
		"mqtt_broker_url":       "tcp://localhost:1883",
		"login_rate":            int64(500 * time.Millisecond),
	})

	t.Run("short flag", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg, []string{"-c", path})

		assert.Equal(t, "todo.db", cfg.DatabaseDSN)
		assert.Equal(t, SinkMQTT, cfg.NotificationSink)
		assert.False(t, cfg.NotificationsEnabled)
		assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBrokerURL)
		assert.Equal(t, 500*time.Millisecond, cfg.LoginRate)
		assert.Equal(t, "info", cfg.LogLevel, "absent keys are kept")
		assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	})

	t.Run("long flag", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg, []string{"-config=" + path})
		assert.Equal(t, "todo.db", cfg.DatabaseDSN)
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg, []string{"-d", "other.db"})
		assert.Equal(t, "tamamla.db", cfg.DatabaseDSN)
	})
}

func Test_parseJson_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		var cfg Config
		require.Panics(t, func() { parseJson(&cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeJSON(t, dir, "bad.json", map[string]any{"session_ttl": "soon"})
		var cfg Config
		require.Panics(t, func() { parseJson(&cfg, []string{"-c", path}) })
	})

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		var cfg Config
		require.Panics(t, func() { parseJson(&cfg, []string{"-c", path}) })
	})
}
