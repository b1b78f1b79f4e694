// ABOUTME: Liftlog configuration management with storage factory.
// ABOUTME: Handles data dir, unit preference, source URL, and migration policy.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/liftlog/internal/storage"
)

// Config stores liftlog configuration.
type Config struct {
	// DataDir is the root directory for data storage; liftlog.db lives
	// here. Supports ~ expansion. Defaults to ~/.local/share/liftlog.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultUnit is the unit new drafts start with: "lbs" (default) or
	// "kg". Display only — weight is always stored in pounds.
	DefaultUnit string `json:"default_unit,omitempty"`

	// ExerciseSourceURL is the endpoint serving the authoritative
	// exercise reference list as a JSON array.
	ExerciseSourceURL string `json:"exercise_source_url,omitempty"`

	// RecreateOnSchemaMismatch destructively recreates the store when
	// its on-disk schema version cannot be migrated. Off by default:
	// such a store fails to open instead of losing data silently.
	RecreateOnSchemaMismatch bool `json:"recreate_on_schema_mismatch,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// UseLbsDefault reports whether new drafts should start in pounds.
func (c *Config) UseLbsDefault() bool {
	return c.DefaultUnit != "kg"
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the store at the configured location with the
// configured migration policy.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "liftlog.db")
	return storage.OpenWithOptions(dbPath, storage.Options{
		RecreateOnMismatch: c.RecreateOnSchemaMismatch,
	})
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "liftlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
