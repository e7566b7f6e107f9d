package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Include manager search path
	IncludeDirs []string

	// Link checking
	StrictLinks bool

	// Source loading
	LoadWorkers int

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		IncludeDirs: envList("DOX_INCLUDE_DIRS", []string{"."}),

		StrictLinks: envBool("DOX_STRICT_LINKS", false),

		LoadWorkers: envInt("DOX_LOAD_WORKERS", 4),

		LogLevel:  strings.ToLower(envOr("DOX_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("DOX_LOG_FORMAT", "text")),
	}

	if cfg.LoadWorkers <= 0 {
		cfg.LoadWorkers = 4
	}
	if len(cfg.IncludeDirs) == 0 {
		cfg.IncludeDirs = []string{"."}
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("DOX_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.LoadWorkers <= 0 {
		return fmt.Errorf("DOX_LOAD_WORKERS must be positive, got %d", c.LoadWorkers)
	}
	for _, dir := range c.IncludeDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("include dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("include dir %s: not a directory", dir)
		}
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("DOX_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envList splits a path list using the OS list separator.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
