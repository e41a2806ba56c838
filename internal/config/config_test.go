package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestParse_RequiresDatabaseURI(t *testing.T) {
	_, err := parse(nil, env(nil))
	assert.ErrorIs(t, err, ErrDatabaseURIRequired)
}

func TestParse_MemoryStoreNeedsNoURI(t *testing.T) {
	cfg, err := parse([]string{"-memory"}, env(nil))
	require.NoError(t, err)

	assert.True(t, cfg.UseMemoryStore)
	assert.Equal(t, "localhost:3001", cfg.RunAddress)
	assert.False(t, cfg.SeedLessons)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.BookingAttempts)
	assert.Equal(t, "./public", cfg.StaticDir)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	cfg, err := parse(
		[]string{"-a", ":9000", "-d", "postgres://flag", "-timeout", "1s"},
		env(map[string]string{
			"RUN_ADDRESS":          ":8080",
			"DATABASE_URI":         "postgres://env",
			"SEED_LESSONS":         "true",
			"REQUEST_TIMEOUT":      "250ms",
			"BOOKING_MAX_ATTEMPTS": "5",
			"LOG_FORMAT":           "json",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddress)
	assert.Equal(t, "postgres://env", cfg.DatabaseURI)
	assert.True(t, cfg.SeedLessons)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.BookingAttempts)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_FlagsOnly(t *testing.T) {
	cfg, err := parse([]string{"-d", "postgres://flag", "-seed", "-retries", "2"}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "postgres://flag", cfg.DatabaseURI)
	assert.True(t, cfg.SeedLessons)
	assert.Equal(t, 2, cfg.BookingAttempts)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad bool", []string{"-memory"}, map[string]string{"SEED_LESSONS": "maybe"}},
		{"bad duration", []string{"-memory"}, map[string]string{"REQUEST_TIMEOUT": "soon"}},
		{"bad int", []string{"-memory"}, map[string]string{"BOOKING_MAX_ATTEMPTS": "x"}},
		{"zero attempts", []string{"-memory", "-retries", "0"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.args, env(tt.env))
			assert.Error(t, err)
		})
	}
}
