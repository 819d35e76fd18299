package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Figure  FigureConfig
	Session SessionConfig
	UI      UIConfig
}

// FigureConfig points at the figure definition file. An empty path
// selects the embedded default figure.
type FigureConfig struct {
	Path string
}

// SessionConfig holds bookmark store settings.
type SessionConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	MouseMotion bool `mapstructure:"mouse_motion"`
	Accent      string
}

// Load reads configuration from file and env. Env var overrides use prefix PLOTNAV_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("figure.path", "")
	v.SetDefault("session.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "plotnav", "session.db"))
	v.SetDefault("ui.mouse_motion", true)
	v.SetDefault("ui.accent", "#fab387")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PLOTNAV_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "plotnav"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PLOTNAV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("PLOTNAV_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "plotnav", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("figure.path", cfg.Figure.Path)
	v.Set("session.path", cfg.Session.Path)
	v.Set("ui.mouse_motion", cfg.UI.MouseMotion)
	v.Set("ui.accent", cfg.UI.Accent)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
