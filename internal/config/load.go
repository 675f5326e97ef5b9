package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a cinnamon.yaml file into a Config struct.
// A relative expected_results.path is resolved against the directory of
// the config file. It performs no validation — call Validate separately.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if p := cfg.ExpectedResults.Path; p != "" && !filepath.IsAbs(p) {
		cfg.ExpectedResults.Path = filepath.Join(filepath.Dir(path), p)
	}
	return &cfg, nil
}
