package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Persistence backends
const (
	BackendLocal        = "local"
	BackendSQL          = "sql"
	BackendRemote       = "remote"
	BackendRemoteCached = "remote-cached"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Key-value backends for the local strategy
const (
	KVBackendSQL   = "sql"
	KVBackendRedis = "redis"
)

type Config struct {
	Port         int
	Backend      string
	DatabaseURL  string
	DatabaseType string
	KVBackend    string
	RedisAddr    string
	RemoteURL    string

	AdminPassword    string
	AdminTokenSecret string
	AdminTokenTTL    time.Duration

	ExportDir     string
	SaveTimeout   time.Duration
	RemoteTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("food-poll", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Store backend (local, sql, remote, remote-cached)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.KVBackend, "kv", "", "Key-value backend for the local store (sql or redis)")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address (host:port)")
	fs.StringVar(&cfg.RemoteURL, "r", "", "Remote store base URL")
	fs.StringVar(&cfg.ExportDir, "o", "", "Directory for exported order files")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")
	fs.StringVar(&cfg.AdminTokenSecret, "token-secret", "", "Admin token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.Backend = orEnv(cfg.Backend, "STORE_BACKEND", BackendLocal)
	switch cfg.Backend {
	case BackendLocal, BackendSQL, BackendRemote, BackendRemoteCached:
	default:
		return Config{}, errors.New("STORE_BACKEND must be one of: local, sql, remote, remote-cached")
	}

	cfg.DatabaseType = orEnv(cfg.DatabaseType, "DATABASE_TYPE", DatabaseSQLite)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	cfg.DatabaseURL = orEnv(cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "foodpoll.db"
	}

	cfg.KVBackend = orEnv(cfg.KVBackend, "KV_BACKEND", KVBackendSQL)
	if cfg.KVBackend != KVBackendSQL && cfg.KVBackend != KVBackendRedis {
		return Config{}, errors.New("KV_BACKEND must be sql or redis")
	}
	cfg.RedisAddr = orEnv(cfg.RedisAddr, "REDIS_ADDR", "localhost:6379")

	cfg.RemoteURL = orEnv(cfg.RemoteURL, "REMOTE_URL", "")
	if (cfg.Backend == BackendRemote || cfg.Backend == BackendRemoteCached) && cfg.RemoteURL == "" {
		return Config{}, errors.New("remote URL required for remote backends (use -r or REMOTE_URL env)")
	}

	cfg.ExportDir = orEnv(cfg.ExportDir, "EXPORT_DIR", "")

	// Secrets - MUST be provided
	cfg.AdminPassword = orEnv(cfg.AdminPassword, "ADMIN_PASSWORD", "")
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}
	cfg.AdminTokenSecret = orEnv(cfg.AdminTokenSecret, "ADMIN_TOKEN_SECRET", "")
	if cfg.AdminTokenSecret == "" {
		return Config{}, errors.New("ADMIN_TOKEN_SECRET required")
	}

	var err error
	if cfg.AdminTokenTTL, err = durationEnv("ADMIN_TOKEN_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SaveTimeout, err = durationEnv("SAVE_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.RemoteTimeout, err = durationEnv("REMOTE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = orEnv(cfg.LogLevel, "LOG_LEVEL", "info")
	cfg.LogFormat = orEnv(cfg.LogFormat, "LOG_FORMAT", "text")

	return cfg, nil
}

func orEnv(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid " + key + " env variable")
	}
	return d, nil
}
