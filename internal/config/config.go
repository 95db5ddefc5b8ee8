package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the service configuration.
// Precedence, lowest first: struct defaults, YAML file, .env file, process environment.
type Config struct {
	Environment string        `yaml:"environment" env:"API_ENV" default:"development"`
	Server      ServerConfig  `yaml:"server"`
	Model       ModelConfig   `yaml:"model"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
	CORS        CORSConfig    `yaml:"cors"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"API_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"API_SHUTDOWN_TIMEOUT" default:"15s"`
	// MaxBodyBytes caps request bodies; 0 disables the limit.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"API_MAX_BODY_BYTES" default:"65536"`
}

type ModelConfig struct {
	// Path to the pipeline artifact, relative to the working directory unless absolute.
	Path string `yaml:"path" env:"MODEL_PATH" default:"models/sales_model_pipeline2.json"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" default:"json"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" default:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" default:"/metrics"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:"," default:"[\"*\"]"`
}

// Load builds a validated Config. path may be empty, in which case only defaults and the
// environment are used. A .env file in the working directory is honored if present.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path, ".env")
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked layers the configuration sources but does not validate the result.
// dotenv may be empty to skip .env handling.
func LoadUnchecked(path, dotenv string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if dotenv != "" {
		if _, err := os.Stat(dotenv); err == nil {
			// godotenv.Load never overrides variables already set in the process.
			if err := godotenv.Load(dotenv); err != nil {
				return nil, fmt.Errorf("load %s: %w", dotenv, err)
			}
		}
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be >= 0", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be > 0", ErrInvalidConfig)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("%w: model.path is required", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q (must be json or console)", ErrInvalidConfig, c.Log.Format)
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether the service runs with API_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
