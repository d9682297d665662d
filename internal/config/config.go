// Package config resolves gotruss defaults from the environment.
//
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Environment variables
const (
	EnvCapacity   = "GOTRUSS_CAPACITY"
	EnvLoadAngle  = "GOTRUSS_LOAD_ANGLE" // degrees
	EnvLogLevel   = "GOTRUSS_LOG_LEVEL"
	EnvDuplicates = "GOTRUSS_DUPLICATES"
	EnvNoColor    = "NO_COLOR"
)

// Config holds the resolved defaults
type Config struct {
	Capacity   float64               // member force capacity
	LoadAngle  float64               // roadway load direction in degrees (-90 = down)
	LogLevel   slog.Level            // CLI log level
	Duplicates truss.DuplicatePolicy // coincident node policy for edits
	NoColor    bool
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Capacity:  analysis.DefaultCapacity,
		LoadAngle: -90,
		LogLevel:  slog.LevelInfo,
	}
}

// Load reads .env files (missing files are ignored) and then the
// environment. Invalid values are reported, not ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv resolves the configuration through lookup
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvCapacity); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("%s: must be a positive number, got %q", EnvCapacity, v)
		}
		cfg.Capacity = f
	}

	if v, ok := lookup(EnvLoadAngle); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: must be a number of degrees, got %q", EnvLoadAngle, v)
		}
		cfg.LoadAngle = f
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvDuplicates); ok {
		policy, err := truss.ParseDuplicatePolicy(strings.ToLower(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvDuplicates, err)
		}
		cfg.Duplicates = policy
	}

	if _, ok := lookup(EnvNoColor); ok {
		cfg.NoColor = true
	}

	return cfg, nil
}

// ParseLevel accepts debug, info, warn or error
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
}
