package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from an optional YAML file, a .env file and the
// process environment, then validates it.
// Priority: environment > .env > YAML file > defaults.
// An empty path skips the YAML file; a non-empty path must exist.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile is Load with an explicit dotenv path. A missing dotenv
// file is not an error.
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			// godotenv never overrides variables already set in the process
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
