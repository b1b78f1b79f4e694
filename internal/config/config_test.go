// ABOUTME: Tests for configuration loading, defaults, and path handling.
// ABOUTME: Redirects XDG_CONFIG_HOME into a temp dir; never touches real config.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "" || cfg.DefaultUnit != "" || cfg.ExerciseSourceURL != "" {
		t.Errorf("Expected zero-value config, got %+v", cfg)
	}
	if cfg.RecreateOnSchemaMismatch {
		t.Error("Destructive recreation must default to off")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		DataDir:                  "~/lifting",
		DefaultUnit:              "kg",
		ExerciseSourceURL:        "https://example.com/exercises.json",
		RecreateOnSchemaMismatch: true,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "liftlog", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Expected a parse error")
	}
}

func TestUseLbsDefault(t *testing.T) {
	if !(&Config{}).UseLbsDefault() {
		t.Error("Expected pounds by default")
	}
	if !(&Config{DefaultUnit: "lbs"}).UseLbsDefault() {
		t.Error("Expected pounds when configured")
	}
	if (&Config{DefaultUnit: "kg"}).UseLbsDefault() {
		t.Error("Expected kilograms when configured")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	if got := ExpandPath("~/lifting"); got != filepath.Join(home, "lifting") {
		t.Errorf("Expected home-joined path, got %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("Expected home dir, got %q", got)
	}
	if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("Expected absolute path unchanged, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("Expected empty stays empty, got %q", got)
	}
}

func TestGetDataDirPrefersConfigured(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{DataDir: dir}
	if got := cfg.GetDataDir(); got != dir {
		t.Errorf("Expected %q, got %q", dir, got)
	}

	if got := (&Config{}).GetDataDir(); got == "" {
		t.Error("Expected a non-empty default data dir")
	}
}
