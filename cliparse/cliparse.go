package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported database backends
const (
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

const (
	defaultPort            = 3318
	defaultDatabaseURL     = "mongodb://localhost:27017/"
	defaultDatabaseName    = "pollconnect"
	defaultShareBaseURL    = "https://yourdomain.com"
	defaultSessionLifetime = 24 * time.Hour
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	DatabaseName    string
	ShareBaseURL    string
	SessionLifetime time.Duration
}

// ParseFlags validates flags and fills anything unset from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollconnect", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (mongo, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseName, "n", "", "Database name (mongo only)")
	fs.StringVar(&cfg.ShareBaseURL, "share-url", "", "Public base URL used in share links")
	fs.DurationVar(&cfg.SessionLifetime, "session-lifetime", 0, "Login session lifetime")

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
			cfg.Port = defaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseMongo
		}
	}
	switch cfg.DatabaseType {
	case DatabaseMongo, DatabasePostgres, DatabaseSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseMongo {
			return Config{}, errors.New("database URL required for " + cfg.DatabaseType + " (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultDatabaseURL
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = os.Getenv("DATABASE_NAME")
		if cfg.DatabaseName == "" {
			cfg.DatabaseName = defaultDatabaseName
		}
	}

	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = os.Getenv("SHARE_BASE_URL")
		if cfg.ShareBaseURL == "" {
			cfg.ShareBaseURL = defaultShareBaseURL
		}
	}

	if cfg.SessionLifetime == 0 {
		if s := os.Getenv("SESSION_LIFETIME"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_LIFETIME env variable")
			}
			cfg.SessionLifetime = d
		} else {
			cfg.SessionLifetime = defaultSessionLifetime
		}
	}
	if cfg.SessionLifetime < 0 {
		return Config{}, errors.New("session lifetime must be positive")
	}

	return cfg, nil
}
