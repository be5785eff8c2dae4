package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blorkfield-site/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "Blorkfield", cfg.Site.Title)
	assert.Equal(t, "assets", cfg.Assets.SourceDir)
	assert.Equal(t, "/assets/", cfg.Assets.BaseURL)
	assert.True(t, cfg.Assets.Optimize)
	assert.Equal(t, "dist", cfg.Build.OutputDir)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Preview.Timeout)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "site.yaml", `
site:
  title: Products
  base_url: https://blorkfield.com
catalog:
  path: data/products.yaml
assets:
  base_url: https://cdn.blorkfield.com/img/
  optimize: false
preview:
  timeout: 5s
`)

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "Products", cfg.Site.Title)
	assert.Equal(t, "https://blorkfield.com", cfg.Site.BaseURL)
	assert.Equal(t, "data/products.yaml", cfg.Catalog.Path)
	assert.Equal(t, "https://cdn.blorkfield.com/img/", cfg.Assets.BaseURL)
	assert.False(t, cfg.Assets.Optimize)
	assert.Equal(t, 5*time.Second, cfg.Preview.Timeout)
	assert.Equal(t, "dist", cfg.Build.OutputDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SITE_BUILD_OUTPUT_DIR", "public")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")
	t.Setenv("DRIVE_FOLDER_ID", "folder-123")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "public", cfg.Build.OutputDir)
	assert.Equal(t, "/usr/bin/chromium", cfg.Preview.ChromePath)
	assert.Equal(t, "folder-123", cfg.Drive.FolderID)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsEmptyTitle(t *testing.T) {
	path := writeFile(t, t.TempDir(), "site.yaml", "site:\n  title: \"  \"\n")

	_, err := config.Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.title")
}
