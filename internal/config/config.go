package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"luminol/internal/eventbus"
	"luminol/internal/logging"
)

var configLog = logging.ForComponent(logging.CompConfig)

// ErrConfigNotFound is returned by LoadFromPath when the file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Default highlight settings
const (
	DefaultDimOpacity         = 0.5
	DefaultDimColor           = "#d0d0d0"
	DefaultBackgroundColor    = "#1c1c1c"
	DefaultHighlightColor     = "#ffd75f"
	DefaultSoleHighlightColor = "#5fd787"
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	Highlight HighlightSettings `toml:"highlight"`
	Log       LogSettings       `toml:"log"`
}

// HighlightSettings are read by the engine each time a session starts
type HighlightSettings struct {
	DimOpacity         float64 `toml:"dim_opacity"`
	DimColor           string  `toml:"dim_color"`
	BackgroundColor    string  `toml:"background_color"`
	HighlightColor     string  `toml:"highlight_color"`
	SoleHighlightColor string  `toml:"sole_highlight_color"`
	SelectMatching     bool    `toml:"select_matching"`
	OverviewMarkers    bool    `toml:"overview_markers"`
}

// LogSettings mirror logging.Config
type LogSettings struct {
	Dir        string `toml:"dir"`
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Logging converts the settings for logging.Init
func (l LogSettings) Logging(debug bool) logging.Config {
	return logging.Config{
		Dir:        l.Dir,
		Level:      l.Level,
		Format:     l.Format,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Debug:      debug,
	}
}

// Validate normalizes out-of-range values in place
func (c *Config) Validate() {
	if c.Version == 0 {
		c.Version = 1
	}
	h := &c.Highlight
	if h.DimOpacity < 0 {
		h.DimOpacity = 0
	}
	if h.DimOpacity > 1 {
		h.DimOpacity = 1
	}
	if h.DimColor == "" {
		h.DimColor = DefaultDimColor
	}
	if h.BackgroundColor == "" {
		h.BackgroundColor = DefaultBackgroundColor
	}
	if h.HighlightColor == "" {
		h.HighlightColor = DefaultHighlightColor
	}
	if h.SoleHighlightColor == "" {
		h.SoleHighlightColor = DefaultSoleHighlightColor
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "luminol", "config.toml")
}

// NewConfigService creates a config service for path; empty path means DefaultPath.
// bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		configLog.Info("config_missing_using_defaults", slog.String("path", cs.filePath))
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Validate()

	configLog.Debug("config_loaded", slog.String("path", path))
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
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

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Highlight: HighlightSettings{
			DimOpacity:         DefaultDimOpacity,
			DimColor:           DefaultDimColor,
			BackgroundColor:    DefaultBackgroundColor,
			HighlightColor:     DefaultHighlightColor,
			SoleHighlightColor: DefaultSoleHighlightColor,
			OverviewMarkers:    true,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
		},
	}
}
