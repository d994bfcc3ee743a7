package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. t.Setenv restores the previous values on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"RIGCHECK_ADDR", "RIGCHECK_CATALOG", "RIGCHECK_DB", "RIGCHECK_SEED",
		"RIGCHECK_SESSION_LIMIT", "RIGCHECK_LANG", "RIGCHECK_LOG_LEVEL",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Catalog)
	assert.Empty(t, cfg.DB)
	assert.True(t, cfg.Seed)
	assert.Equal(t, 1024, cfg.SessionLimit)
	assert.Equal(t, "en", cfg.Lang)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("RIGCHECK_ADDR", "127.0.0.1:9000")
	t.Setenv("RIGCHECK_DB", "/var/lib/rigcheck/builds.db")
	t.Setenv("RIGCHECK_SESSION_LIMIT", "16")
	t.Setenv("RIGCHECK_LANG", "ru")
	t.Setenv("RIGCHECK_LOG_LEVEL", "debug")
	t.Setenv("RIGCHECK_SEED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "/var/lib/rigcheck/builds.db", cfg.DB)
	assert.Equal(t, 16, cfg.SessionLimit)
	assert.Equal(t, "ru", cfg.Lang)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rigcheck.env")
	require.NoError(t, os.WriteFile(path, []byte("RIGCHECK_CATALOG=parts.yaml\nRIGCHECK_SESSION_LIMIT=8\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("RIGCHECK_CATALOG")
		os.Unsetenv("RIGCHECK_SESSION_LIMIT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parts.yaml", cfg.Catalog)
	assert.Equal(t, 8, cfg.SessionLimit)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rigcheck.env")
	require.NoError(t, os.WriteFile(path, []byte("RIGCHECK_ADDR=:7000\n"), 0644))
	t.Setenv("RIGCHECK_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"zero_limit", "RIGCHECK_SESSION_LIMIT", "0", "RIGCHECK_SESSION_LIMIT"},
		{"bad_limit", "RIGCHECK_SESSION_LIMIT", "many", "decode environment"},
		{"bad_lang", "RIGCHECK_LANG", "de", "RIGCHECK_LANG"},
		{"bad_level", "RIGCHECK_LOG_LEVEL", "loud", "RIGCHECK_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
