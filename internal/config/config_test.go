package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebelice/uuidview/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
uuid:
  convert_to_lowercase: false
  applicable_to:
    column_names: "_id$"
    column_types: "^bytea$"
database:
  driver: postgres
  host: db.internal
  port: 6543
  name: app
display:
  theme: catppuccin-mocha
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.UUID.Lowercase)
	assert.Equal(t, "_id$", cfg.UUID.Rules.ColumnNames)
	assert.Equal(t, "^bytea$", cfg.UUID.Rules.ColumnTypes)
	assert.Equal(t, ".*", cfg.UUID.Rules.TableNames, "unset rules keep their default")
	assert.Equal(t, ".*", cfg.Rules().Comments)

	assert.Equal(t, models.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "app", cfg.Database.Database)
	assert.Equal(t, "public", cfg.Database.Schema)

	assert.Equal(t, "catppuccin-mocha", cfg.Display.Theme)
	assert.Equal(t, "NULL", cfg.Display.NullText)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "display:\n  theme: default\n")
	t.Setenv("UUIDVIEW_UUID_CONVERT_TO_LOWERCASE", "false")
	t.Setenv("UUIDVIEW_DATABASE_DSN", "/tmp/app.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.UUID.Lowercase)
	assert.Equal(t, "/tmp/app.db", cfg.Database.DSN)
}

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	assert.True(t, cfg.UUID.Lowercase)
	assert.Equal(t, `(?i)^binary\(16\)$`, cfg.UUID.Rules.ColumnTypes)
	assert.Equal(t, models.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Display.DefaultLimit)
}
