package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "db_server:\n  host: db\n"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTPServer.Port)
	require.False(t, cfg.HTTPServer.TrustProxy)
	require.Equal(t, "db", cfg.DbServer.Host)
	require.True(t, cfg.DbServer.AutoMigrate)
	require.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.Equal(t, "40.00", cfg.Rate.Fallback)
	require.Equal(t, "09:00", cfg.Scheduler.DailyAt)
	require.Equal(t, "Europe/Kiev", cfg.Scheduler.Timezone)
	require.Contains(t, cfg.NBU.URL, "valcode=EUR")
	require.Equal(t, int64(16), cfg.Cache.MaxItems)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: postgres\nlogging:\n  level: info\n")
	t.Setenv("STORAGE_DRIVER", "badger")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_FALLBACK", "41.25")
	t.Setenv("HTTP_TRUST_PROXY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, StorageDriverBadger, cfg.Storage.Driver)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "41.25", cfg.Rate.Fallback)
	require.True(t, cfg.HTTPServer.TrustProxy)
}

func TestLoad_UnknownDriver(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  driver: sqlite\n"))
	require.ErrorContains(t, err, "unknown storage driver")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDbServer_ConnectionString(t *testing.T) {
	cfg := DbServer{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "user=u password=p host=h port=5432 dbname=n sslmode=disable", cfg.GetConnectionStr())
}
