package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GIGMATCH_CONFIG is set
//  3. env (prefix GIGMATCH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GIGMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GIGMATCH_LOG_LEVEL, GIGMATCH_HEAP_CAPACITY, ...
	// Map env keys like GIGMATCH_HEAP_CAPACITY -> heap_capacity (flat keys,
	// underscores preserved to match koanf tags on the struct).
	envProvider := env.Provider("GIGMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gigmatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation: all capacities must be positive.
	if cfg.UserTableCapacity <= 0 || cfg.PositionTableCapacity <= 0 ||
		cfg.BlacklistCapacity <= 0 || cfg.HeapCapacity <= 0 {
		return nil, fmt.Errorf("%w: capacities must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
