// Package config loads beansd settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables read by Load.
const (
	EnvConfigLocation = "BEANS_CONFIG"
	EnvClasspath      = "BEANS_CLASSPATH"
	EnvAddr           = "BEANS_ADDR"
	EnvLogLevel       = "BEANS_LOG_LEVEL"
	EnvLogFormat      = "BEANS_LOG_FORMAT"
)

// Config holds the settings of a beansd process.
type Config struct {
	// ConfigLocation is the declaration document, optionally prefixed with
	// "classpath:" to resolve it against Classpath.
	ConfigLocation string
	Classpath      string
	Addr           string
	Log            LogConfig
}

type LogConfig struct {
	Level  string
	Format string // text | json
}

// Load reads .env files and populates a Config from environment variables.
// Variables already set in the environment win over values in the files,
// and earlier files win over later ones. Missing files are skipped; a file
// that exists but cannot be read or parsed is an error.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return &Config{
		ConfigLocation: env(EnvConfigLocation, "classpath:beans.xml"),
		Classpath:      env(EnvClasspath, "."),
		Addr:           env(EnvAddr, ":8080"),
		Log: LogConfig{
			Level:  strings.ToLower(env(EnvLogLevel, "info")),
			Format: strings.ToLower(env(EnvLogFormat, "text")),
		},
	}, nil
}

// Configure applies the log settings to logger.
func (c LogConfig) Configure(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	switch c.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("%s: unknown log format %q", EnvLogFormat, c.Format)
	}

	logger.SetLevel(level)
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
