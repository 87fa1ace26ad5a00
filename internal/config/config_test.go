package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "placebo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlacebo_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadPlacebo(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPlacebo(), cfg)
}

func TestLoadPlacebo_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
attributes_path: catalog/attrs.yaml
modifiers_dir: catalog/modifiers
strict: false
id_scheme: content
seed: 42
database:
  host: db.local
  port: 6543
`)

	cfg, err := LoadPlacebo(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "catalog/attrs.yaml", cfg.AttributesPath)
	assert.Equal(t, "catalog/modifiers", cfg.ModifiersDir)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "content", cfg.IDScheme)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	// Не указанные поля остаются по умолчанию
	assert.Equal(t, "placebo", cfg.Database.User)
}

func TestLoadPlacebo_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nseed: 1\n")
	t.Setenv("PLACEBO_LOG_LEVEL", "warn")
	t.Setenv("PLACEBO_SEED", "99")
	t.Setenv("PLACEBO_STRICT", "false")
	t.Setenv("PLACEBO_DB_HOST", "pg")

	cfg, err := LoadPlacebo(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadPlacebo_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "log_level: [unterminated\n")
	_, err := LoadPlacebo(path)
	assert.Error(t, err)
}

func TestLoadPlacebo_InvalidEnv(t *testing.T) {
	t.Setenv("PLACEBO_SEED", "not-a-number")
	_, err := LoadPlacebo(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/db?sslmode=disable", d.DSN())
}
