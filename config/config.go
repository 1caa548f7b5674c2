// Package config reads GoDeck settings from the environment, optionally
// seeded from a .env file.
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
	"github.com/sirupsen/logrus"
)

// Config holds every setting with its default applied.
type Config struct {
	Creator          string
	Company          string
	SlideNumbers     bool
	LogLevel         logrus.Level
	LogFormat        string
	MediaTimeout     time.Duration
	MediaConcurrency int
	ServerHost       string
	ServerPort       int
	DBPath           string
}

// Defaults.
const (
	DefaultCreator          = "GoDeck"
	DefaultLogFormat        = "text"
	DefaultMediaTimeout     = 15 * time.Second
	DefaultMediaConcurrency = 4
	DefaultServerHost       = "127.0.0.1"
	DefaultServerPort       = 8080
	DefaultDBPath           = "godeck.db"
)

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Creator:          DefaultCreator,
		SlideNumbers:     true,
		LogLevel:         logrus.InfoLevel,
		LogFormat:        DefaultLogFormat,
		MediaTimeout:     DefaultMediaTimeout,
		MediaConcurrency: DefaultMediaConcurrency,
		ServerHost:       DefaultServerHost,
		ServerPort:       DefaultServerPort,
		DBPath:           DefaultDBPath,
	}
}

// Load reads the configuration from the environment. Files named in
// envFiles are loaded first without overriding variables that are already
// set; a missing file is not an error. Malformed values keep their defaults
// and are reported together in the returned error alongside a usable Config.
func Load(envFiles ...string) (*Config, error) {
	var errs []error
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", f, err))
		}
	}

	cfg := Default()
	cfg.Creator = stringVar("DECK_CREATOR", cfg.Creator)
	cfg.Company = stringVar("DECK_COMPANY", cfg.Company)
	cfg.LogFormat = strings.ToLower(stringVar("LOG_FORMAT", cfg.LogFormat))
	cfg.ServerHost = stringVar("SERVER_HOST", cfg.ServerHost)
	cfg.DBPath = stringVar("DB_PATH", cfg.DBPath)

	if v, ok := lookup("DECK_SLIDE_NUMBERS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid DECK_SLIDE_NUMBERS %q: %w", v, err))
		} else {
			cfg.SlideNumbers = b
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err))
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := lookup("MEDIA_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("invalid MEDIA_TIMEOUT %q", v))
		} else {
			cfg.MediaTimeout = d
		}
	}
	if v, ok := lookup("MEDIA_CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("invalid MEDIA_CONCURRENCY %q", v))
		} else {
			cfg.MediaConcurrency = n
		}
	}
	if v, ok := lookup("SERVER_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("invalid SERVER_PORT %q", v))
		} else {
			cfg.ServerPort = n
		}
	}
	return cfg, errors.Join(errs...)
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// NewLogger builds a logger with the configured level and format.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func stringVar(key, def string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return def
}
