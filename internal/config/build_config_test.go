package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuildConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BUILD_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := LoadBuildConfig()
	if err != nil {
		t.Fatalf("LoadBuildConfig: %v", err)
	}
	if cfg.OutputPath != "standings_cache.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.KeepBuilds != 10 {
		t.Errorf("KeepBuilds = %d, want 10", cfg.KeepBuilds)
	}
}

func TestLoadBuildConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")
	data := []byte(`
output_path: /tmp/cache.json
max_year: 2024
session_workers: 4
classification_workers: 8
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUILD_CONFIG_FILE", path)

	cfg, err := LoadBuildConfig()
	if err != nil {
		t.Fatalf("LoadBuildConfig: %v", err)
	}
	if cfg.OutputPath != "/tmp/cache.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.MaxYear != 2024 {
		t.Errorf("MaxYear = %d", cfg.MaxYear)
	}
	if cfg.SessionWorkers != 4 || cfg.ClassificationWorkers != 8 {
		t.Errorf("workers = %d/%d", cfg.SessionWorkers, cfg.ClassificationWorkers)
	}
	if cfg.KeepBuilds != 10 {
		t.Errorf("KeepBuilds = %d, want default 10", cfg.KeepBuilds)
	}
}
