package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScreensDir != "screens" {
		t.Errorf("ScreensDir = %q, want %q", cfg.ScreensDir, "screens")
	}
	if cfg.Dev.Host != "localhost" || cfg.Dev.Port != 5173 {
		t.Errorf("Dev = %+v, want localhost:5173", cfg.Dev)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	data := "screensDir: ui\ndev:\n  port: 9000\n"
	if err := os.WriteFile(filepath.Join(dir, "slc.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ScreensDir != "ui" {
		t.Errorf("ScreensDir = %q, want %q", cfg.ScreensDir, "ui")
	}
	if cfg.Dev.Port != 9000 {
		t.Errorf("Dev.Port = %d, want 9000", cfg.Dev.Port)
	}
	if cfg.Dev.Host != "localhost" {
		t.Errorf("Dev.Host = %q, want default localhost", cfg.Dev.Host)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "slc.yaml"), []byte(":\n  - ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}
