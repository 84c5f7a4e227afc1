// Package config centralises all environment configuration for the runner.
// It should be imported only by `internal/cli` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned by Validate for values outside their domain.
var ErrInvalidConfig = errors.New("invalid config")

// Engines and output formats accepted by Validate.
const (
	EngineMongo  = "mongo"
	EngineMemory = "memory"

	FormatHuman = "human"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds every runtime option the runner needs.
// Keep it flat and simple; prefer primitive types over embedding structs.
type Config struct {
	// Data store
	MongoURI string `env:"MONGODB_URI" env-default:"mongodb://localhost:27017" env-description:"MongoDB connection string"`
	DBName   string `env:"MONGODB_DB" env-default:"repo_insights" env-description:"database holding users and repositories"`
	Engine   string `env:"QUERY_ENGINE" env-default:"mongo" env-description:"mongo or memory"`

	// Timeouts, in seconds
	ConnectTimeoutSec int `env:"CONNECT_TIMEOUT_SEC" env-default:"10"`
	QueryTimeoutSec   int `env:"QUERY_TIMEOUT_SEC" env-default:"30"`

	// Report parameters
	BugsRepositoryID int `env:"BUGS_REPOSITORY_ID" env-default:"1" env-description:"repository scanned by the bug report"`
	PairWindowSec    int `env:"PAIR_WINDOW_SEC" env-default:"300" env-description:"maximum gap between paired commits"`

	// Logging and output
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat    string `env:"LOG_FORMAT" env-default:"console"`
	OutputFormat string `env:"OUTPUT_FORMAT" env-default:"human"`
}

// Load parses the environment (and an optional .env file) into Config.
func Load() (Config, error) {
	// godotenv.Load() fails only when .env is missing or unreadable; either way
	// the process environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Validate rejects values no command can work with.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineMongo, EngineMemory:
	default:
		return fmt.Errorf("%w: QUERY_ENGINE=%q (want mongo or memory)", ErrInvalidConfig, c.Engine)
	}
	switch c.OutputFormat {
	case FormatHuman, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: OUTPUT_FORMAT=%q (want human, table or json)", ErrInvalidConfig, c.OutputFormat)
	}
	if c.Engine == EngineMongo && c.MongoURI == "" {
		return fmt.Errorf("%w: MONGODB_URI is required for the mongo engine", ErrInvalidConfig)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: MONGODB_DB is empty", ErrInvalidConfig)
	}
	if c.PairWindowSec <= 0 {
		return fmt.Errorf("%w: PAIR_WINDOW_SEC must be positive, got %d", ErrInvalidConfig, c.PairWindowSec)
	}
	if c.ConnectTimeoutSec <= 0 || c.QueryTimeoutSec <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}

// ConnectTimeout bounds connecting to and pinging the server.
func (c Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSec) * time.Second
}

// QueryTimeout bounds a single command (seed, one report run, list).
func (c Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSec) * time.Second
}

// PairWindow is the exclusive upper bound on the gap between paired commits.
func (c Config) PairWindow() time.Duration {
	return time.Duration(c.PairWindowSec) * time.Second
}
