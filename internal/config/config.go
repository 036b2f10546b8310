// Package config resolves runtime settings: JSON5 config file first, then
// environment overrides. A local .env is honored for the email credentials.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/suhasramanand/intern-alert/internal/guardrails"
	"github.com/suhasramanand/intern-alert/internal/recency"
)

const (
	DirName        = "intern-alert"
	ConfigFileName = "config.json"

	DefaultSeenFile = "seen_ids.txt"
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 465
)

type Config struct {
	SeenFile     string  `json:"seen_file"`
	WindowMins   int     `json:"window_mins"`
	MinHourlyPay float64 `json:"min_hourly_pay"`
	EmailTo      string  `json:"email_to"`
	EmailFrom    string  `json:"email_from"`
	SMTPHost     string  `json:"smtp_host"`
	SMTPPort     int     `json:"smtp_port"`

	// Credentials come from the environment only, never the config file.
	EmailPassword string `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		SeenFile:     DefaultSeenFile,
		WindowMins:   recency.DefaultWindowMinutes,
		MinHourlyPay: guardrails.DefaultMinHourly,
		SMTPHost:     DefaultSMTPHost,
		SMTPPort:     DefaultSMTPPort,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load resolves the effective configuration. Missing config file is fine;
// env always wins over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	case strings.TrimSpace(string(data)) != "":
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.SeenFile = envString("SEEN_FILE", cfg.SeenFile)
	cfg.WindowMins = envInt("ALERT_WINDOW_MINS", cfg.WindowMins)
	cfg.MinHourlyPay = envFloat("ALERT_MIN_HOURLY", cfg.MinHourlyPay)
	cfg.EmailTo = envString("EMAIL_TO", cfg.EmailTo)
	cfg.EmailFrom = envString("EMAIL_FROM", cfg.EmailFrom)
	cfg.SMTPHost = envString("ALERT_SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = envInt("ALERT_SMTP_PORT", cfg.SMTPPort)

	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.EmailTo
	}
	// Gmail app passwords are displayed with spaces; strip all whitespace.
	password := os.Getenv("EMAIL_APP_PASSWORD")
	cfg.EmailPassword = strings.Join(strings.Fields(password), "")
}

// HasCredentials reports whether a real send is possible; without them the
// run degrades to a console dump of the digest.
func (c Config) HasCredentials() bool {
	return c.EmailTo != "" && c.EmailPassword != ""
}

// Init writes a default config.json if one does not already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return created, err
		}
		created = append(created, path)
	}

	return created, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
