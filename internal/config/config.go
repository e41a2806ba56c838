package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	RunAddress      string
	DatabaseURI     string
	UseMemoryStore  bool
	SeedLessons     bool
	StaticDir       string
	RequestTimeout  time.Duration
	BookingAttempts int
	MetricsInterval time.Duration
	LogLevel        string
	LogFormat       string
}

var ErrDatabaseURIRequired = errors.New("database URI is required (set DATABASE_URI or -d)")

func New() (*Config, error) {
	return parse(os.Args[1:], os.LookupEnv)
}

// parse reads flags first and lets environment variables override them.
func parse(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("afterschool", flag.ContinueOnError)

	fs.StringVar(&cfg.RunAddress, "a", "localhost:3001", "server address and port")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.BoolVar(&cfg.UseMemoryStore, "memory", false, "use the in-memory store instead of Postgres")
	fs.BoolVar(&cfg.SeedLessons, "seed", false, "reset the lesson catalog to the demo seed on startup")
	fs.StringVar(&cfg.StaticDir, "static", "./public", "directory served for / and /images")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 5*time.Second, "per-request storage deadline")
	fs.IntVar(&cfg.BookingAttempts, "retries", 3, "max booking attempts on write conflict")
	fs.DurationVar(&cfg.MetricsInterval, "metrics-interval", 15*time.Second, "lesson spaces gauge refresh interval")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	getEnv := func(key, fallback string) string {
		if value, ok := lookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.UseMemoryStore, err = envBool(lookupEnv, "USE_MEMORY_STORE", cfg.UseMemoryStore); err != nil {
		return nil, err
	}
	if cfg.SeedLessons, err = envBool(lookupEnv, "SEED_LESSONS", cfg.SeedLessons); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = envDuration(lookupEnv, "REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.MetricsInterval, err = envDuration(lookupEnv, "METRICS_REFRESH_INTERVAL", cfg.MetricsInterval); err != nil {
		return nil, err
	}
	if cfg.BookingAttempts, err = envInt(lookupEnv, "BOOKING_MAX_ATTEMPTS", cfg.BookingAttempts); err != nil {
		return nil, err
	}

	if cfg.DatabaseURI == "" && !cfg.UseMemoryStore {
		return nil, ErrDatabaseURIRequired
	}
	if cfg.BookingAttempts < 1 {
		return nil, fmt.Errorf("booking attempts must be at least 1, got %d", cfg.BookingAttempts)
	}
	if cfg.MetricsInterval <= 0 {
		return nil, fmt.Errorf("metrics interval must be positive, got %s", cfg.MetricsInterval)
	}

	return cfg, nil
}

func envBool(lookupEnv func(string) (string, bool), key string, fallback bool) (bool, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func envInt(lookupEnv func(string) (string, bool), key string, fallback int) (int, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envDuration(lookupEnv func(string) (string, bool), key string, fallback time.Duration) (time.Duration, error) {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
