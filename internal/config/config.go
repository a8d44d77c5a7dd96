// Package config loads runtime settings from .env files, an optional YAML
// config file and BMI_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "BMI"

// DefaultSQLitePath is used when the sqlite driver has no DSN.
const DefaultSQLitePath = "~/.local/share/bmitracker/bmi.db"

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	Store    StoreConfig
	HTTP     HTTPConfig
	Insights InsightsConfig
	Logging  LoggingConfig
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Driver string
	DSN    string
	Prefix string
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr         string
	CORSOrigins  []string
	PasswordHash string
}

// InsightsConfig configures the text-generation client.
type InsightsConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.prefix", "bmitracker:")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{})
	v.SetDefault("http.password_hash", "")
	v.SetDefault("insights.api_key", "")
	v.SetDefault("insights.model", "")
	v.SetDefault("insights.base_url", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadDotEnv loads .env from the working directory when present. Existing
// environment variables are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load %s: %w", strings.Join(present, ", "), err)
	}
	return nil
}

// Init wires environment lookup and reads the config file into v. cfgFile
// may be empty, in which case config.yaml is searched for in
// ~/.config/bmitracker and the working directory; a missing file is fine.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bmitracker"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// FromViper resolves a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
			DSN:    v.GetString("store.dsn"),
			Prefix: v.GetString("store.prefix"),
		},
		HTTP: HTTPConfig{
			Addr:         v.GetString("http.addr"),
			CORSOrigins:  splitList(v.GetStringSlice("http.cors_origins")),
			PasswordHash: v.GetString("http.password_hash"),
		},
		Insights: InsightsConfig{
			APIKey:  v.GetString("insights.api_key"),
			Model:   v.GetString("insights.model"),
			BaseURL: v.GetString("insights.base_url"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
	}

	// The key is also accepted under the names the hosted app used.
	if cfg.Insights.APIKey == "" {
		for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
			if k := os.Getenv(name); k != "" {
				cfg.Insights.APIKey = k
				break
			}
		}
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if cfg.Store.DSN == "" {
			cfg.Store.DSN = DefaultSQLitePath
		}
		cfg.Store.DSN = ExpandPath(cfg.Store.DSN)
	case DriverPostgres, DriverRedis:
		if cfg.Store.DSN == "" {
			return nil, fmt.Errorf("store.dsn is required for the %s driver", cfg.Store.Driver)
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	if cfg.Logging.Format != "console" && cfg.Logging.Format != "json" {
		return nil, fmt.Errorf("invalid log format: %s", cfg.Logging.Format)
	}
	return cfg, nil
}

// splitList accepts both YAML lists and a single comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level: %s", level)
}

// NewLogger builds a logger writing to w in the configured format.
func (l LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch l.Format {
	case "console", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", l.Format)
	}
	return slog.New(handler), nil
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	return os.ExpandEnv(path)
}
