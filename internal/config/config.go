package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendMemDB    = "memdb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port            int
	Env             string
	Version         string
	User            string
	StoreBackend    string
	DatabaseURL     string
	SQLitePath      string
	StaticDir       string
	MaxImageBytes   int64
	SleepDuration   time.Duration
	LogBufferSize   int
	KafkaBrokers    []string
	KafkaTopic      string
	RabbitMQURL     string
	RabbitMQQueue   string
	NtfyURL         string
	NtfyTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Development reports whether APP_ENV asks for development logging.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads an optional .env file (variables already set win) and then the
// environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults and validating values.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errs []error
	parseInt := func(key, def string) int64 {
		n, err := strconv.ParseInt(get(key, def), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}
	parseDuration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(get(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	cfg := Config{
		Port:            int(parseInt("PORT", "8081")),
		Env:             get("APP_ENV", "production"),
		Version:         get("APP_VERSION", "0.1.0"),
		User:            get("APP_USER", get("USER", "unknown")),
		StoreBackend:    strings.ToLower(get("STORE_BACKEND", BackendMemory)),
		DatabaseURL:     get("DATABASE_URL", ""),
		SQLitePath:      get("SQLITE_PATH", "./sales.db"),
		StaticDir:       get("STATIC_DIR", "./static"),
		MaxImageBytes:   parseInt("MAX_IMAGE_BYTES", strconv.Itoa(5<<20)),
		SleepDuration:   parseDuration("SLEEP_DURATION", "1s"),
		LogBufferSize:   int(parseInt("LOG_BUFFER_SIZE", "1000")),
		KafkaBrokers:    splitList(get("KAFKA_BROKERS", "")),
		KafkaTopic:      get("KAFKA_TOPIC", "sale_created"),
		RabbitMQURL:     get("RABBITMQ_URL", ""),
		RabbitMQQueue:   get("RABBITMQ_QUEUE", "sale_created"),
		NtfyURL:         get("NTFY_URL", ""),
		NtfyTimeout:     parseDuration("NTFY_TIMEOUT", "2s"),
		ShutdownTimeout: parseDuration("SHUTDOWN_TIMEOUT", "10s"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", cfg.Port))
	}
	if cfg.MaxImageBytes < 1 {
		errs = append(errs, fmt.Errorf("MAX_IMAGE_BYTES: must be positive"))
	}
	if cfg.LogBufferSize < 1 {
		errs = append(errs, fmt.Errorf("LOG_BUFFER_SIZE: must be positive"))
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendMemDB, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL: required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.StoreBackend))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
