package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names consulted by Load.
const (
	envPrefix     = "STUDYSCORE_"
	envConfigFile = "STUDYSCORE_CONFIG"
	envDotenvFile = "STUDYSCORE_DOTENV"
	defaultDotenv = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STUDYSCORE_CONFIG is set
//  3. env (prefix STUDYSCORE_), after merging a .env file when present
func Load(_ context.Context) (*Config, error) {
	base := New()

	if err := loadDotenv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// STUDYSCORE_CHART_WIDTH -> chart_width (flat keys, underscores kept).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv merges a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotenv() error {
	path := os.Getenv(envDotenvFile)
	if path == "" {
		path = defaultDotenv
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}
