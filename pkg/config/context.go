package config

import (
	"context"
	"sync"

	"github.com/docbridge/docbridge/pkg/logger"
)

// ContextKey is an alias used for storing values in context
type ContextKey string

const (
	// ConfigCtxKey is the context key used to store the active *Config
	ConfigCtxKey ContextKey = "config"
)

// ContextWithConfig stores the configuration in the context
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigCtxKey, cfg)
}

var defaultConfig *Config
var defaultConfigOnce sync.Once

// FromContext returns the active configuration for the provided context.
// If none is found, it falls back to a lazily-initialized default that loads
// defaults and environment variables. This mirrors the logger package
// behavior so components always have a usable configuration.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ConfigCtxKey).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return getDefaultConfig(ctx)
}

// getDefaultConfig returns a singleton configuration initialized with
// built-in defaults and environment overrides. YAML/CLI sources are not
// applied here; callers that need them must load explicitly and attach the
// result to the context.
func getDefaultConfig(ctx context.Context) *Config {
	defaultConfigOnce.Do(func() {
		cfg, err := NewService().Load(ctx)
		if err != nil {
			log := logger.FromContext(ctx)
			log.Warn("failed to load default configuration, using fallback defaults", "error", err)
			cfg = Default()
		}
		defaultConfig = cfg
	})
	return defaultConfig
}
