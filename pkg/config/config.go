// Package config reads the CLI configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-coda/pkg/validation"
)

// Config holds the environment-driven settings of the CLI.
type Config struct {
	Mode       string `env:"CODA_MODE" env-default:"development" env-description:"validation mode (development or production)"`
	Renderer   string `env:"CODA_RENDERER" env-default:"html" env-description:"output renderer name"`
	KindsDir   string `env:"CODA_KINDS_DIR" env-description:"directory of extra kind definitions"`
	TokensFile string `env:"CODA_TOKENS_FILE" env-description:"design token file (JSON or YAML)"`
	Theme      string `env:"CODA_THEME" env-description:"theme name attached to token decorations"`
	LogLevel   string `env:"CODA_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn, or error"`
}

// Load reads an optional dotenv file and then the process environment. A
// missing dotenv file is not an error; variables already set in the
// environment win over the file.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := validation.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: CODA_MODE: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: CODA_LOG_LEVEL: %w", err)
	}
	return nil
}

// ValidationMode returns the parsed mode, falling back to development.
func (c Config) ValidationMode() validation.Mode {
	mode, err := validation.ParseMode(c.Mode)
	if err != nil {
		return validation.ModeDevelopment
	}
	return mode
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Logger builds a text logger at the configured level writing to w, or to
// stderr when w is nil.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// Usage describes the environment variables understood by Config.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", raw)
	}
	return level, nil
}
