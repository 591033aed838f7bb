package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the ThoughtFolio backend.
// Environment variables are parsed from the THOUGHTFOLIO_ prefix,
// e.g. THOUGHTFOLIO_HTTP_PORT, THOUGHTFOLIO_POSTGRES_DSN.
type Config struct {
	// Build target selects the deployment shape: local (sqlite) or cloud (postgres).
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// DBDriver is derived from BuildTarget when set to "auto".
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration (cloud target)
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local target); empty derives a per-user default path.
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// API keys, comma-separated key=userId pairs for the local authorizer.
	APIKeys string `envconfig:"API_KEYS" default:"dev-key=dev-user"`

	// AI extraction provider (OpenAI-compatible chat completions endpoint).
	AIBaseURL string `envconfig:"AI_BASE_URL" default:"http://localhost:11434"`
	AIModel   string `envconfig:"AI_MODEL" default:"llama3.1"`
	AIAPIKey  string `envconfig:"AI_API_KEY" default:""`
	// AIEnabled gates the extraction endpoint and its health checker.
	AIEnabled bool `envconfig:"AI_ENABLED" default:"false"`

	// Matching parameters.
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.2"`
	MatchLimit     int     `envconfig:"MATCH_LIMIT" default:"10"`

	// Active List cap.
	ActiveListCap int `envconfig:"ACTIVE_LIST_CAP" default:"5"`

	// Learning event buffer and weight deltas.
	LearningBuffer      int     `envconfig:"LEARNING_BUFFER" default:"256"`
	HelpfulWeightDelta  float64 `envconfig:"HELPFUL_WEIGHT_DELTA" default:"0.1"`
	NotHelpfulWeightCut float64 `envconfig:"NOT_HELPFUL_WEIGHT_CUT" default:"0.15"`

	// Health probing.
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver and the SQLite
// path when left on "auto"/empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud", "cloud-dev":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot derive sqlite path: %w", err)
			}
			c.SQLitePath = filepath.Join(home, ".thoughtfolio", "thoughtfolio.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in [0,1], got %v", c.MatchThreshold)
	}
	if c.ActiveListCap < 1 {
		return fmt.Errorf("ACTIVE_LIST_CAP must be positive")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("THOUGHTFOLIO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
