// Package config loads service settings from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the tracker.
type Config struct {
	// Addr is the listen address for the web server.
	Addr string `yaml:"addr"`
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`
	// SecretKey signs password-reset tokens. Override in production.
	SecretKey string `yaml:"secret_key"`
	// BaseURL is the externally reachable origin, used to build reset links.
	BaseURL string `yaml:"base_url"`
	// SessionHours is the login session lifetime in hours.
	SessionHours int `yaml:"session_hours"`

	SMTP SMTPConfig `yaml:"smtp"`
}

// SMTPConfig holds outbound-mail settings. An empty Host disables SMTP
// delivery; reset mails are then only logged.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

func defaultConfig() Config {
	return Config{
		Addr:         ":8000",
		DBPath:       "data/volunteer.db",
		SecretKey:    "you-should-override-this",
		BaseURL:      "http://localhost:8000",
		SessionHours: 12,
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), then applies environment overrides. Missing
// fields fall back to defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.Addr = envOr("VOLTRACK_ADDR", cfg.Addr)
	cfg.DBPath = envOr("VOLTRACK_DB", cfg.DBPath)
	cfg.SecretKey = envOr("VOLTRACK_SECRET_KEY", cfg.SecretKey)
	cfg.BaseURL = envOr("VOLTRACK_BASE_URL", cfg.BaseURL)
	cfg.SessionHours = envOrInt("VOLTRACK_SESSION_HOURS", cfg.SessionHours)

	cfg.SMTP.Host = envOr("VOLTRACK_SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Port = envOrInt("VOLTRACK_SMTP_PORT", cfg.SMTP.Port)
	cfg.SMTP.Username = envOr("VOLTRACK_SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = envOr("VOLTRACK_SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.From = envOr("VOLTRACK_SMTP_FROM", cfg.SMTP.From)

	// Fill zero-value fields so callers always get a usable Config even
	// from a partially filled file.
	def := defaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = def.SecretKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.SessionHours <= 0 {
		cfg.SessionHours = def.SessionHours
	}
	if cfg.SMTP.Port <= 0 {
		cfg.SMTP.Port = def.SMTP.Port
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
