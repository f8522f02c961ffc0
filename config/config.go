package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tonedrill/fretboard"
	"tonedrill/theory"
)

const appName = "tonedrill"

// MIDIConfig describes a MIDI guitar in string-per-channel mode
type MIDIConfig struct {
	PortName     string        `yaml:"port_name,omitempty"`
	AutoConnect  bool          `yaml:"auto_connect"`
	FirstChannel int           `yaml:"first_channel"`          // channel of string 1 (1-16)
	OpenPitches  map[int]uint8 `yaml:"open_pitches,omitempty"` // string -> MIDI note when open
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Tuning  map[int]string `yaml:"tuning"`
	Key     string         `yaml:"key"`
	Scale   string         `yaml:"scale"`
	Mode    string         `yaml:"mode"`
	Palette string         `yaml:"palette,omitempty"` // GIMP .gpl file, empty for built-in
	MIDI    MIDIConfig     `yaml:"midi"`
	Server  ServerConfig   `yaml:"server"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tuning: fretboard.StandardTuning().Names(),
		Key:    "C",
		Scale:  theory.ScaleMajor,
		Mode:   string(theory.ModeSingleTone),
		MIDI: MIDIConfig{
			PortName:     "guitar",
			AutoConnect:  true,
			FirstChannel: 1,
			OpenPitches:  map[int]uint8{1: 64, 2: 59, 3: 55, 4: 50, 5: 45, 6: 40},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults; fields
// absent from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// maps replace their defaults instead of merging into them
	defaults := DefaultConfig()
	cfg.Tuning = nil
	cfg.MIDI.OpenPitches = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if cfg.Tuning == nil {
		cfg.Tuning = defaults.Tuning
	}
	if cfg.MIDI.OpenPitches == nil {
		cfg.MIDI.OpenPitches = defaults.MIDI.OpenPitches
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating the directory if needed
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every musical field parses
func (c *Config) Validate() error {
	if _, err := c.BuildTuning(); err != nil {
		return err
	}
	if _, err := theory.ParseNote(c.Key); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	if _, err := theory.LookupScale(c.Scale); err != nil {
		return err
	}
	if _, err := theory.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.MIDI.FirstChannel < 1 || c.MIDI.FirstChannel > 16 {
		return fmt.Errorf("midi first_channel must be 1-16, got %d", c.MIDI.FirstChannel)
	}
	return nil
}

// BuildTuning converts the configured tuning
func (c *Config) BuildTuning() (*fretboard.Tuning, error) {
	t, err := fretboard.FromNames(c.Tuning)
	if err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}
