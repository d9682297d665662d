package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(nil))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, 500000.0, cfg.Capacity)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := FromEnv(lookupFrom(map[string]string{
			EnvCapacity:   "1250.5",
			EnvLoadAngle:  "-60",
			EnvLogLevel:   "DEBUG",
			EnvDuplicates: "Merge",
			EnvNoColor:    "",
		}))
		require.NoError(t, err)
		assert.Equal(t, Config{
			Capacity:   1250.5,
			LoadAngle:  -60,
			LogLevel:   slog.LevelDebug,
			Duplicates: truss.DuplicateMerge,
			NoColor:    true,
		}, cfg)
	})

	invalid := map[string]map[string]string{
		"capacity text":     {EnvCapacity: "lots"},
		"capacity negative": {EnvCapacity: "-5"},
		"angle":             {EnvLoadAngle: "down"},
		"log level":         {EnvLogLevel: "loud"},
		"duplicates":        {EnvDuplicates: "squash"},
	}
	for name, env := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOTRUSS_CAPACITY=4200\nGOTRUSS_LOG_LEVEL=warn\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv(EnvCapacity)
		os.Unsetenv(EnvLogLevel)
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4200.0, cfg.Capacity)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadMissingDotEnv(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"Info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
