package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.JWT.GetExpiration())
	assert.Equal(t, []string{"learning_path", "university", "learning_group", "batch_id"}, cfg.Rules.Attributes)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("JWT_SECRET=from-file\nSERVER_PORT=4000\n"), 0o644))

	// Переменные процесса имеют приоритет над файлом
	t.Setenv("SERVER_PORT", "5000")
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORE_DRIVER", "mongo")

		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", d.DSN())
}
