package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Width <= 0 || config.Height <= 0 {
		t.Fatalf("default dimensions %dx%d not positive", config.Width, config.Height)
	}
	if config.FrameRate <= 0 {
		t.Fatalf("default frame rate %v not positive", config.FrameRate)
	}
	if config.RandomDensity < 0 || config.RandomDensity > 1 {
		t.Fatalf("default density %v outside [0,1]", config.RandomDensity)
	}
	if config.Boundary != "fixed" {
		t.Fatalf("default boundary %q, expected fixed", config.Boundary)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{"width": 12, "height": 8, "boundary": "wrapped", "frame_rate": 100000000}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Width != 12 || config.Height != 8 {
		t.Fatalf("loaded dimensions %dx%d, expected 12x8", config.Width, config.Height)
	}
	if config.Boundary != "wrapped" {
		t.Fatalf("loaded boundary %q, expected wrapped", config.Boundary)
	}
	if config.FrameRate != 100*time.Millisecond {
		t.Fatalf("loaded frame rate %v, expected 100ms", config.FrameRate)
	}
	// Keys absent from the file keep their defaults.
	if config.StagnationThreshold != DefaultConfig().StagnationThreshold {
		t.Fatal("unset key lost its default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("missing config file accepted")
	}
	// Defaults still come back so the caller can fall back.
	if config.Width != DefaultConfig().Width {
		t.Fatal("defaults not returned alongside the error")
	}
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}
