// Package config handles configuration loading and validation for vgrid.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/vgrid/internal/core/columns"
	"github.com/colonyops/vgrid/internal/core/query"
)

// ErrUnknownTheme is returned when the configured theme is not built in.
var ErrUnknownTheme = errors.New("unknown theme")

// Built-in action names for key bindings. Arrow navigation is fixed and not
// configurable.
const (
	ActionPageUp      = "page_up"
	ActionPageDown    = "page_down"
	ActionPin         = "pin"
	ActionMoveLeft    = "move_left"
	ActionMoveRight   = "move_right"
	ActionSort        = "sort"
	ActionGroup       = "group"
	ActionToggleGroup = "toggle_group"
	ActionDuplicate   = "duplicate"
	ActionDelete      = "delete"
	ActionWiden       = "widen"
	ActionNarrow      = "narrow"
	ActionClear       = "clear"
	ActionHelp        = "help"
	ActionQuit        = "quit"
)

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

// defaultKeys provides built-in key bindings that users can override per action.
var defaultKeys = map[string][]string{
	ActionPageUp:      {"pgup"},
	ActionPageDown:    {"pgdown"},
	ActionPin:         {"p"},
	ActionMoveLeft:    {"["},
	ActionMoveRight:   {"]"},
	ActionSort:        {"s"},
	ActionGroup:       {"g"},
	ActionToggleGroup: {"enter", "space"},
	ActionDuplicate:   {"d"},
	ActionDelete:      {"x"},
	ActionWiden:       {"+", "="},
	ActionNarrow:      {"-"},
	ActionClear:       {"esc"},
	ActionHelp:        {"?"},
	ActionQuit:        {"q", "ctrl+c"},
}

// Config holds the application configuration.
type Config struct {
	Theme     string              `yaml:"theme"`
	Layout    LayoutConfig        `yaml:"layout"`
	Selection SelectionConfig     `yaml:"selection"`
	Keys      map[string][]string `yaml:"keys"`
	Presets   map[string]Preset   `yaml:"presets"`
	DataDir   string              `yaml:"-"` // set by caller, not from config file
}

// LayoutConfig sizes grid cells, in terminal cells.
type LayoutConfig struct {
	CellWidth     int `yaml:"cell_width"`
	CellHeight    int `yaml:"cell_height"`
	HeaderHeight  int `yaml:"header_height"`
	Overscan      int `yaml:"overscan"`
	MaxScrollSize int `yaml:"max_scroll_size"` // 0 disables large-extent rescaling
}

// SelectionConfig tunes pointer selection.
type SelectionConfig struct {
	Throttle time.Duration `yaml:"throttle"`
}

// Preset is a named grid setup: visible columns, pins, widths and a query.
type Preset struct {
	Pins    []string       `yaml:"pins,omitempty"`
	Columns []string       `yaml:"columns,omitempty"`
	Widths  map[string]int `yaml:"widths,omitempty"`

	query.Spec `yaml:",inline"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Layout: LayoutConfig{
			CellWidth:    14,
			CellHeight:   1,
			HeaderHeight: 1,
			Overscan:     2,
		},
		Selection: SelectionConfig{
			Throttle: 30 * time.Millisecond,
		},
		Keys:    map[string][]string{},
		Presets: map[string]Preset{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			cfg.DataDir = dataDir
		}
	}

	// User bindings replace the defaults of the same action.
	cfg.Keys = mergeKeys(defaultKeys, cfg.Keys)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Layout.CellWidth == 0 {
		c.Layout.CellWidth = defaults.Layout.CellWidth
	}
	if c.Layout.CellHeight == 0 {
		c.Layout.CellHeight = defaults.Layout.CellHeight
	}
	if c.Layout.HeaderHeight == 0 {
		c.Layout.HeaderHeight = defaults.Layout.HeaderHeight
	}
	if c.Selection.Throttle == 0 {
		c.Selection.Throttle = defaults.Selection.Throttle
	}
	if c.Presets == nil {
		c.Presets = map[string]Preset{}
	}
}

func mergeKeys(defaults, user map[string][]string) map[string][]string {
	result := make(map[string][]string, len(defaults)+len(user))
	maps.Copy(result, defaults)
	maps.Copy(result, user)
	return result
}

// Preset returns the named preset. An empty name resolves to DefaultPreset,
// and a missing default preset is the zero Preset.
func (c *Config) Preset(name string) (Preset, error) {
	if name == "" || name == DefaultPreset {
		return c.Presets[DefaultPreset], nil
	}
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q not found", name)
	}
	return p, nil
}

// LogFile returns the default log destination.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "vgrid.log")
}

// LayoutOptions converts the preset into options for columns.NewLayout.
func (p Preset) LayoutOptions(defaultWidth int) columns.LayoutOptions {
	return columns.LayoutOptions{
		Columns:      p.Columns,
		Pins:         p.Pins,
		Widths:       p.Widths,
		DefaultWidth: defaultWidth,
	}
}

// Query resolves the preset's query against schema.
func (p Preset) Query(schema *columns.Schema) (query.Query, error) {
	return p.Spec.Build(schema.Kind)
}

func isValidAction(action string) bool {
	_, ok := defaultKeys[action]
	return ok
}
