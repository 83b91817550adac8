package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chainplanner/internal/infrastructure/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: debug\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "configs/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "default", cfg.Catalog.Name)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "chainplanner.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "chainplanner", cfg.Metrics.Namespace)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
catalog:
  source: gamedata
  path: data/buildings.json
  categories_path: data/constructionCategories.json
database:
  type: postgres
  host: db.internal
  port: 6543
metrics:
  enabled: true
  textfile_path: /var/lib/node_exporter/chainplanner.prom
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, config.CatalogSourceGameData, cfg.Catalog.Source)
	assert.Equal(t, "data/buildings.json", cfg.Catalog.Path)
	assert.Equal(t, "data/constructionCategories.json", cfg.Catalog.CategoriesPath)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Empty(t, cfg.Database.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/var/lib/node_exporter/chainplanner.prom", cfg.Metrics.TextfilePath)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "catalog:\n  path: file.yaml\n")
	t.Setenv("CP_CATALOG_PATH", "env.yaml")
	t.Setenv("CP_LOGGING_LEVEL", "warn")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.Catalog.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	path := writeConfig(t, "database:\n  type: postgres\n")
	t.Setenv("DATABASE_URL", "postgresql://planner@localhost:5432/chains")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgresql://planner@localhost:5432/chains", cfg.Database.URL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "unknown catalog source",
			content: "catalog:\n  source: s3\n",
			message: "catalog.source failed validation: oneof",
		},
		{
			name:    "game data without path",
			content: "catalog:\n  source: gamedata\n",
			message: "catalog.path failed validation: required_unless",
		},
		{
			name:    "log file without path",
			content: "logging:\n  output: file\n",
			message: "logging.file_path failed validation: required_if",
		},
		{
			name:    "unknown database type",
			content: "database:\n  type: mysql\n",
			message: "database.type failed validation: oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_DatabaseSourceNeedsNoPath(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "catalog:\n  source: database\n  name: bakery\n"))

	require.NoError(t, err)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, "bakery", cfg.Catalog.Name)
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := config.LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, config.CatalogSourceFile, cfg.Catalog.Source)
}
