package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// BuildConfig tunes the precompute run. It lives in a YAML file because
// the knobs are only touched when the upstream API misbehaves.
type BuildConfig struct {
	// APIBaseURL overrides the results API root (tests, mirrors).
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	// OutputPath is where the document is written.
	OutputPath string `yaml:"output_path"`
	// MaxYear skips seasons newer than this when > 0.
	MaxYear int `yaml:"max_year,omitempty"`
	// SessionWorkers / ClassificationWorkers bound API concurrency.
	SessionWorkers        int `yaml:"session_workers,omitempty"`
	ClassificationWorkers int `yaml:"classification_workers,omitempty"`
	// KeepBuilds caps how many archived builds survive pruning.
	KeepBuilds int `yaml:"keep_builds,omitempty"`
}

// LoadBuildConfig loads the precompute configuration file. Path is
// determined by BUILD_CONFIG_FILE, defaulting to "build.yaml". A
// missing file yields the defaults.
func LoadBuildConfig() (*BuildConfig, error) {
	cfg := &BuildConfig{
		OutputPath: "standings_cache.json",
		KeepBuilds: 10,
	}

	path := getEnv("BUILD_CONFIG_FILE", "build.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "standings_cache.json"
	}
	if cfg.KeepBuilds <= 0 {
		cfg.KeepBuilds = 10
	}

	return cfg, nil
}
