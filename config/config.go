// Package config loads the site configuration from an optional site.yaml,
// SITE_* environment variables and a few well-known variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Build   BuildConfig   `mapstructure:"build"`
	Server  ServerConfig  `mapstructure:"server"`
	Preview PreviewConfig `mapstructure:"preview"`
	Drive   DriveConfig   `mapstructure:"drive"`
	Log     LogConfig     `mapstructure:"log"`
}

// SiteConfig holds page-level metadata
type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	BaseURL     string `mapstructure:"base_url"`
}

// CatalogConfig points at an optional catalog file. Empty means the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// AssetsConfig configures image resolution and optimization
type AssetsConfig struct {
	SourceDir string `mapstructure:"source_dir"`
	BaseURL   string `mapstructure:"base_url"`
	Optimize  bool   `mapstructure:"optimize"`
	CacheDir  string `mapstructure:"cache_dir"`
}

// BuildConfig configures the static output
type BuildConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// ServerConfig configures the preview server
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// PreviewConfig configures headless Chrome captures
type PreviewConfig struct {
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Width      int64         `mapstructure:"width"`
	Height     int64         `mapstructure:"height"`
}

// DriveConfig configures the Google Drive asset source
type DriveConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	FolderID        string `mapstructure:"folder_id"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration into v and unmarshals it.
// cfgFile is optional; when empty, site.yaml is looked up in . and ./config
// and a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("site")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.Title) == "" {
		return errors.New("config: site.title must not be empty")
	}
	if strings.TrimSpace(c.Build.OutputDir) == "" {
		return errors.New("config: build.output_dir must not be empty")
	}
	if c.Preview.Timeout <= 0 {
		return fmt.Errorf("config: preview.timeout must be positive, got %s", c.Preview.Timeout)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("config: preview viewport must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.title", "Blorkfield")
	v.SetDefault("site.description", "Software built by Blorkfield")
	v.SetDefault("site.base_url", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("assets.source_dir", "assets")
	v.SetDefault("assets.base_url", "/assets/")
	v.SetDefault("assets.optimize", true)
	v.SetDefault("assets.cache_dir", "cache/images")
	v.SetDefault("build.output_dir", "dist")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("preview.chrome_path", "")
	v.SetDefault("preview.timeout", 30*time.Second)
	v.SetDefault("preview.width", 1280)
	v.SetDefault("preview.height", 2000)
	v.SetDefault("drive.credentials_path", "")
	v.SetDefault("drive.folder_id", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// bindEnvVars maps the conventional, unprefixed variables
func bindEnvVars(v *viper.Viper) error {
	binds := map[string][]string{
		"preview.chrome_path":    {"SITE_PREVIEW_CHROME_PATH", "CHROME_PATH"},
		"drive.credentials_path": {"SITE_DRIVE_CREDENTIALS_PATH", "GOOGLE_APPLICATION_CREDENTIALS"},
		"drive.folder_id":        {"SITE_DRIVE_FOLDER_ID", "DRIVE_FOLDER_ID"},
		"log.level":              {"SITE_LOG_LEVEL", "LOG_LEVEL"},
	}
	for key, envs := range binds {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}
