// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends, matching the store.Type* values
const (
	StoreREST     = "rest"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

const defaultSQLiteURL = "file:facts.db"

type Config struct {
	Port           int
	StoreType      string
	DatabaseURL    string
	RESTURL        string
	RESTKey        string
	Table          string
	SessionSalt    string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	VoteRate       float64
	VoteBurst      int
	LogLevel       string
}

// ParseFlags reads flags, falls back to environment variables, then to defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("today-i-learned", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "t", "", "Store type (rest, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres or sqlite)")
	fs.StringVar(&cfg.RESTURL, "rest-url", "", "Hosted project URL for the rest store")
	fs.StringVar(&cfg.Table, "table", "", "Table name for the rest store")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Timeout for store requests")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle lifetime of a browser session")
	fs.Float64Var(&cfg.VoteRate, "vote-rate", 0, "Votes per second allowed per client")
	fs.IntVar(&cfg.VoteBurst, "vote-burst", 0, "Vote burst allowed per client")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.RESTKey, "rest-key", "", "API key for the rest store (prefer env)")
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session cookie salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreSQLite
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RESTURL == "" {
		cfg.RESTURL = os.Getenv("SUPABASE_URL")
	}
	if cfg.RESTKey == "" {
		cfg.RESTKey = os.Getenv("SUPABASE_KEY")
	}
	if cfg.Table == "" {
		cfg.Table = os.Getenv("FACTS_TABLE")
		if cfg.Table == "" {
			cfg.Table = "facts"
		}
	}

	switch cfg.StoreType {
	case StoreSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLiteURL
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StoreREST:
		if cfg.RESTURL == "" {
			return Config{}, errors.New("SUPABASE_URL required for the rest store")
		}
		if cfg.RESTKey == "" {
			return Config{}, errors.New("SUPABASE_KEY required for the rest store")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q (want rest, postgres or sqlite)", cfg.StoreType)
	}

	var err error
	if cfg.RequestTimeout == 0 {
		if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 10*time.Second); err != nil {
			return Config{}, err
		}
	}
	if cfg.SessionTTL == 0 {
		if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
			return Config{}, err
		}
	}

	if cfg.VoteRate == 0 {
		cfg.VoteRate = 5
		if s := os.Getenv("VOTE_RATE"); s != "" {
			if cfg.VoteRate, err = strconv.ParseFloat(s, 64); err != nil || cfg.VoteRate <= 0 {
				return Config{}, errors.New("invalid VOTE_RATE env variable")
			}
		}
	}
	if cfg.VoteBurst == 0 {
		cfg.VoteBurst = 10
		if s := os.Getenv("VOTE_BURST"); s != "" {
			if cfg.VoteBurst, err = strconv.Atoi(s); err != nil || cfg.VoteBurst <= 0 {
				return Config{}, errors.New("invalid VOTE_BURST env variable")
			}
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
