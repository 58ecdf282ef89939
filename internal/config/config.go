package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/coltable/internal/filtering"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Filter   FilterConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize  int    `mapstructure:"page_size"`
	PinMarker string `mapstructure:"pin_marker"`
}

// FilterConfig decides how hidden columns take part in filtering.
type FilterConfig struct {
	HiddenColumnsFiltered bool `mapstructure:"hidden_columns_filtered"`
	GlobalSearchesHidden  bool `mapstructure:"global_searches_hidden"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// FilterPolicy returns the filtering policy the config selects.
func (c Config) FilterPolicy() filtering.Policy {
	return filtering.Policy{
		FilterHiddenColumns: c.Filter.HiddenColumnsFiltered,
		SearchHiddenColumns: c.Filter.GlobalSearchesHidden,
	}
}

// Load reads configuration from file and env. Env var overrides use prefix
// COLTABLE_. path overrides COLTABLE_CONFIG and the default location.
func Load(path string) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	def := filtering.DefaultPolicy()

	// default values
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "coltable", "coltable.db"))
	v.SetDefault("database.migrations", "") // empty: built-in migrations
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.pin_marker", "*")
	v.SetDefault("filter.hidden_columns_filtered", def.FilterHiddenColumns)
	v.SetDefault("filter.global_searches_hidden", def.SearchHiddenColumns)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "coltable", "coltable.log"))

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("COLTABLE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "coltable"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COLTABLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist; the default one is optional
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.PageSize < 1 {
		return Config{}, fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	return c, nil
}
