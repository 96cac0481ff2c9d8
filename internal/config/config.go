package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"devgrid/internal/grid"
	"devgrid/internal/logger"
)

// ConfigEnv points at an explicit config file.
const ConfigEnv = "DEVGRID_CONFIG"

// Config holds application configuration.
type Config struct {
	Grid  GridConfig  `mapstructure:"grid"`
	UI    UIConfig    `mapstructure:"ui"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// GridConfig holds layout settings.
type GridConfig struct {
	// SashThickness 0 lets sashes overlay the first cell of the next pane.
	SashThickness int    `mapstructure:"sash_thickness"`
	Orientation   string `mapstructure:"orientation"`
	MinPaneWidth  int    `mapstructure:"min_pane_width"`
	MinPaneHeight int    `mapstructure:"min_pane_height"`
}

// UIConfig holds workbench settings.
type UIConfig struct {
	DoubleClickMS int    `mapstructure:"double_click_ms"`
	Shell         string `mapstructure:"shell"`
}

// StoreConfig holds the saved-layout location. Empty means the store default.
type StoreConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// DEVGRID_, e.g. DEVGRID_GRID_SASH_THICKNESS.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("grid.sash_thickness", 1)
	v.SetDefault("grid.orientation", "horizontal")
	v.SetDefault("grid.min_pane_width", 10)
	v.SetDefault("grid.min_pane_height", 3)
	v.SetDefault("ui.double_click_ms", 400)
	v.SetDefault("ui.shell", defaultShell())
	v.SetDefault("store.dir", "")
	v.SetDefault("log.path", logger.DefaultLogPath)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv(ConfigEnv)
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "devgrid"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DEVGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the workbench cannot use.
func (c Config) Validate() error {
	if c.Grid.SashThickness < 0 {
		return fmt.Errorf("grid.sash_thickness must be >= 0, got %d", c.Grid.SashThickness)
	}
	if _, err := grid.ParseOrientation(c.Grid.Orientation); err != nil {
		return fmt.Errorf("grid.orientation: %w", err)
	}
	if c.Grid.MinPaneWidth < 0 || c.Grid.MinPaneHeight < 0 {
		return fmt.Errorf("grid.min_pane_width/min_pane_height must be >= 0")
	}
	if c.UI.DoubleClickMS <= 0 {
		return fmt.Errorf("ui.double_click_ms must be > 0, got %d", c.UI.DoubleClickMS)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// RootOrientation returns the parsed grid.orientation.
func (c GridConfig) RootOrientation() grid.Orientation {
	o, err := grid.ParseOrientation(c.Orientation)
	if err != nil {
		return grid.Horizontal
	}
	return o
}

// MinPane returns the default pane constraints.
func (c GridConfig) MinPane() grid.Constraints {
	return grid.Constraints{MinWidth: c.MinPaneWidth, MinHeight: c.MinPaneHeight}
}

// DoubleClickInterval is the longest gap between two presses on the same
// sash that still counts as a double click.
func (c UIConfig) DoubleClickInterval() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}
