package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "NATS_URL", "NATS_NKEY_SEED", "HTTP_ADDR", "JWT_SECRET", "JWT_DEFAULT_TTL",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL", "ADMIN_EMAILS",
		"ALLOWED_ORIGINS", "METRICS_ADDRESS", "ENV", "LOG_LEVEL", "PREDICTION_MAX_GOALS",
		"PREDICTION_MAX_PEN_WINNER_LEN", "SECURE_COOKIES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_FileWithEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
postgres:
  dsn: postgres://file
nats:
  url: nats://file:4222
http:
  admin_emails: ["root@example.com"]
prediction:
  max_goals: 15
`), 0o600))

	t.Setenv("NATS_URL", "nats://env:4222")
	t.Setenv("JWT_DEFAULT_TTL", "2h")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file", cfg.Postgres.DSN)
	assert.Equal(t, "nats://env:4222", cfg.NATS.URL)
	assert.Equal(t, 2*time.Hour, cfg.JWT.DefaultTTL)
	assert.Equal(t, 15, cfg.Prediction.MaxGoals)
	assert.Equal(t, DefaultMaxPenWinnerLen, cfg.Prediction.MaxPenWinnerLen)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.True(t, cfg.IsAdminEmail("ROOT@example.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}

func TestLoadConfig_EnvOnlyWhenFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("ADMIN_EMAILS", "a@x.com, b@x.com ,")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.HTTP.AdminEmails)
	assert.Equal(t, DefaultSessionTTL, cfg.JWT.DefaultTTL)
	assert.Equal(t, DefaultMaxGoals, cfg.Prediction.MaxGoals)
}

func TestLoadConfig_RequiresDSN(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_DEFAULT_TTL", "soon")

	_, err := LoadConfig("")
	assert.Error(t, err)
}
