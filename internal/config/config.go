package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"screenvoyeur/internal/document"
	"screenvoyeur/internal/geometry"
	"screenvoyeur/internal/voyeur"
)

// ErrNotFound is returned when a config file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version       int                    `toml:"version"`
	Debug         bool                   `toml:"debug"`
	ScrollEvent   string                 `toml:"scroll_event"`
	TriggerType   string                 `toml:"trigger_type"`
	ForceActive   bool                   `toml:"force_active"`
	TriggerOffset geometry.Offset        `toml:"trigger_offset"`
	UISettings    UISettings             `toml:"ui"`
	SectionGap    int                    `toml:"section_gap"`
	Sections      []document.SectionSpec `toml:"sections"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	SmoothScroll    bool `toml:"smooth_scroll"`
	ScrollStep      int  `toml:"scroll_step"`
	FrameIntervalMs int  `toml:"frame_interval_ms"`
	ScrollAnimMs    int  `toml:"scroll_anim_ms"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "screenvoyeur", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the configuration file, or the defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys
// keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Parse decodes TOML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	// Sections replace the sample page rather than merging into it
	cfg.Sections = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = DefaultSections()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the engine would reject
func (c *Config) Validate() error {
	if err := voyeur.ValidateTriggerType(voyeur.TriggerType(c.TriggerType)); err != nil {
		return fmt.Errorf("invalid trigger_type: %w", err)
	}
	if c.UISettings.ScrollStep < 1 {
		return fmt.Errorf("invalid ui.scroll_step %d: must be at least 1", c.UISettings.ScrollStep)
	}
	if c.UISettings.FrameIntervalMs < 1 {
		return fmt.Errorf("invalid ui.frame_interval_ms %d: must be at least 1", c.UISettings.FrameIntervalMs)
	}
	for i, s := range c.Sections {
		if s.Height < 1 {
			return fmt.Errorf("invalid height %d for section %d (%q)", s.Height, i, s.Title)
		}
	}
	return nil
}

// EngineOptions maps the file settings onto engine options. Context,
// frames, overlay and bus are supplied by the caller.
func (c *Config) EngineOptions() voyeur.Options {
	return voyeur.Options{
		Debug:         c.Debug,
		ScrollEvent:   c.ScrollEvent,
		TriggerOffset: c.TriggerOffset,
		TriggerType:   voyeur.TriggerType(c.TriggerType),
		ForceActive:   c.ForceActive,
	}
}

// Page builds the configured document
func (c *Config) Page() *document.Page {
	return document.Build(c.SectionGap, c.Sections)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		ScrollEvent: voyeur.DefaultScrollEvent,
		TriggerType: string(voyeur.TriggerViewport),
		UISettings: UISettings{
			SmoothScroll:    true,
			ScrollStep:      1,
			FrameIntervalMs: 16,
			ScrollAnimMs:    250,
		},
		SectionGap: 2,
		Sections:   DefaultSections(),
	}
}

// DefaultSections is the sample page shown when none is configured
func DefaultSections() []document.SectionSpec {
	return []document.SectionSpec{
		{Title: "Overview", Height: 8, Body: []string{"Scroll with j/k or the arrow keys.", "Sections light up while they overlap the trigger band."}},
		{Title: "Waypoints", Height: 12, Body: []string{"Every section is registered as a waypoint.", "Its bound is measured when it is added."}},
		{Title: "Trigger band", Height: 6, Body: []string{"The band follows the viewport.", "Toggle the overlay with d."}},
		{Title: "Enter and leave", Height: 14, Body: []string{"Callbacks fire once per transition.", "Open the activity log with L."}},
		{Title: "Coalescing", Height: 10, Body: []string{"Bursts of scroll events are folded", "into one pass per frame."}},
		{Title: "Force active", Height: 5, Body: []string{"With force_active one section always stays lit."}},
		{Title: "Epilogue", Height: 9, Body: []string{"That's all."}},
	}
}
