package config

import (
	"context"
	"time"
)

// Config represents the complete configuration for the docbridge gateway.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server   ServerConfig   `koanf:"server"   validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Registry RegistryConfig `koanf:"registry" validate:"required"`
	Import   ImportConfig   `koanf:"import"   validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host        string        `koanf:"host"         validate:"required"        env:"SERVER_HOST"`
	Port        int           `koanf:"port"         validate:"min=1,max=65535" env:"SERVER_PORT"`
	CORSEnabled bool          `koanf:"cors_enabled"                            env:"SERVER_CORS_ENABLED"`
	CORS        CORSConfig    `koanf:"cors"`
	Timeout     time.Duration `koanf:"timeout"                                 env:"SERVER_TIMEOUT"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"   env:"SERVER_CORS_ALLOWED_ORIGINS"`
	AllowCredentials bool     `koanf:"allow_credentials" env:"SERVER_CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `koanf:"max_age"           env:"SERVER_CORS_MAX_AGE"`
}

// DatabaseConfig describes the default document-store connection, used by
// every request that does not select a cluster of its own.
type DatabaseConfig struct {
	URI            SensitiveString `koanf:"uri"             env:"MONGO_URL"             sensitive:"true"`
	Name           string          `koanf:"name"            validate:"required" env:"MONGO_DB"`
	Collection     string          `koanf:"collection"      validate:"required" env:"MONGO_COLLECTION"`
	ConnectTimeout time.Duration   `koanf:"connect_timeout"                     env:"MONGO_CONNECT_TIMEOUT"`
}

// RegistryConfig locates the cluster registry inside the default connection.
type RegistryConfig struct {
	Database   string `koanf:"database"   validate:"required" env:"REGISTRY_DB"`
	Collection string `koanf:"collection" validate:"required" env:"REGISTRY_COLLECTION"`
}

// ImportConfig bounds drop-and-import fetches.
type ImportConfig struct {
	FetchTimeout time.Duration `koanf:"fetch_timeout"                  env:"IMPORT_FETCH_TIMEOUT"`
	MaxRows      int           `koanf:"max_rows"      validate:"min=1" env:"IMPORT_MAX_ROWS"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled" env:"LOG_LEVEL"`
	JSON   bool   `koanf:"json"   env:"LOG_JSON"`
	Source bool   `koanf:"source" env:"LOG_SOURCE"`
}

// Service defines the configuration management service interface.
// It provides methods for loading and validating configuration.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type for a specific configuration key.
	// This tracks which source (env, CLI, YAML, default) provided each value,
	// enabling debugging and precedence verification.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
	// Close releases any resources held by the source.
	Close() error
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Load loads configuration using the default service.
// This is a convenience function for simple configuration loading.
func Load(ctx context.Context) (*Config, error) {
	return NewService().Load(ctx)
}

// Default returns a Config with default values for development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSEnabled: true,
			CORS: CORSConfig{
				AllowedOrigins:   []string{"*"},
				AllowCredentials: false,
				MaxAge:           300,
			},
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Name:           "railway_db",
			Collection:     "items",
			ConnectTimeout: 10 * time.Second,
		},
		Registry: RegistryConfig{
			Database:   "docbridge",
			Collection: "clusters",
		},
		Import: ImportConfig{
			FetchTimeout: 30 * time.Second,
			MaxRows:      100000,
		},
		Log: LogConfig{
			Level:  "info",
			JSON:   false,
			Source: false,
		},
	}
}
