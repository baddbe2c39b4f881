package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACADEMY_DATABASE_DRIVER", "SQLite")
	t.Setenv("ACADEMY_DATABASE_URL", "file:academy.db")
}

func TestLoadDefaults(t *testing.T) {
	setSQLiteEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DatabaseDriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, StorageDriverLocal, cfg.StorageDriver)
	require.Equal(t, "media", cfg.StorageLocalRoot)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, time.Minute, cfg.DashboardCacheTTL)
	require.Equal(t, 50, cfg.UploadMaxMB)
	require.Equal(t, 10, cfg.LoginRateLimit)
	require.Equal(t, "@every 1m", cfg.PromotionSchedule)
	require.Equal(t, "academy.notices", cfg.NATSSubject)
	require.Equal(t, "America/Argentina/Buenos_Aires", cfg.Location.String())
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.False(t, cfg.IsProduction())
	require.Empty(t, cfg.CORSAllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("ACADEMY_APP_PORT", ":9090")
	t.Setenv("ACADEMY_APP_ENV", "Production")
	t.Setenv("ACADEMY_SESSION_TTL", "30m")
	t.Setenv("ACADEMY_UPLOAD_MAX_MB", "0")
	t.Setenv("ACADEMY_PROMOTION_SCHEDULE", " ")
	t.Setenv("ACADEMY_APP_TIMEZONE", "UTC")
	t.Setenv("ACADEMY_CORS_ALLOW_ORIGINS", "https://jys.edu.ar, ,https://admin.jys.edu.ar")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.True(t, cfg.IsProduction())
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 50, cfg.UploadMaxMB)
	require.Empty(t, cfg.PromotionSchedule)
	require.Equal(t, time.UTC, cfg.Location)
	require.Equal(t, []string{"https://jys.edu.ar", "https://admin.jys.edu.ar"}, cfg.CORSAllowOrigins)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":   {"ACADEMY_DATABASE_DRIVER": "mysql"},
		"missing url":      {"ACADEMY_DATABASE_URL": ""},
		"bad ttl":          {"ACADEMY_SESSION_TTL": "soon"},
		"bad timezone":     {"ACADEMY_APP_TIMEZONE": "Mars/Olympus"},
		"unknown storage":  {"ACADEMY_STORAGE_DRIVER": "ftp"},
		"cloudinary creds": {"ACADEMY_STORAGE_DRIVER": "cloudinary"},
		"sendgrid inbox":   {"ACADEMY_SENDGRID_API_KEY": "key"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setSQLiteEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
