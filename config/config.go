// Package config holds the traidal configuration file and its defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"gopkg.in/yaml.v3"
)

// Config is the complete traidal configuration.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Alerts   AlertsConfig   `json:"alerts" yaml:"alerts"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Notify   NotifyConfig   `json:"notify" yaml:"notify"`
}

// DatabaseConfig locates the SQLite journal.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// AlertsConfig controls the alert monitor. Durations use time.ParseDuration
// syntax, e.g. "60s" or "168h".
type AlertsConfig struct {
	PollInterval string                `json:"poll_interval" yaml:"poll_interval"`
	Retention    string                `json:"retention" yaml:"retention"`
	Defaults     journal.AlertSettings `json:"defaults" yaml:"defaults"` // used until settings are saved
}

// Poll parses PollInterval.
func (a AlertsConfig) Poll() (time.Duration, error) {
	return parsePositive("alerts.poll_interval", a.PollInterval)
}

// RetentionPeriod parses Retention.
func (a AlertsConfig) RetentionPeriod() (time.Duration, error) {
	return parsePositive("alerts.retention", a.Retention)
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // tint, text or json
	Color  bool   `json:"color" yaml:"color"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"` // optional plain text copy
}

// MetricsConfig is where the monitor serves Prometheus metrics. Empty
// disables the endpoint.
type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// NotifyConfig picks the channels new alerts are sent to.
type NotifyConfig struct {
	Log        bool   `json:"log" yaml:"log"`
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
	Timeout    string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// WebhookTimeout parses Timeout; zero when unset.
func (n NotifyConfig) WebhookTimeout() (time.Duration, error) {
	if n.Timeout == "" {
		return 0, nil
	}
	return parsePositive("notify.timeout", n.Timeout)
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields the
// file leaves out keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// JSON field names differ from YAML for the alert defaults, so .json
	// files skip the YAML attempt
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if _, err := c.Alerts.Poll(); err != nil {
		return err
	}
	if _, err := c.Alerts.RetentionPeriod(); err != nil {
		return err
	}
	if err := ValidateSettings(c.Alerts.Defaults); err != nil {
		return fmt.Errorf("alerts.defaults: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "tint", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'tint', 'text' or 'json'")
	}
	if _, err := c.Notify.WebhookTimeout(); err != nil {
		return err
	}
	return nil
}

// ValidateSettings checks alert thresholds: each tier must lie in (0, 100]
// and escalate from warning to critical.
func ValidateSettings(s journal.AlertSettings) error {
	tiers := []struct {
		name string
		warning, danger, critical float64
	}{
		{"max drawdown", s.MaxDrawdownWarning, s.MaxDrawdownDanger, s.MaxDrawdownCritical},
		{"daily drawdown", s.DailyDrawdownWarning, s.DailyDrawdownDanger, s.DailyDrawdownCritical},
	}
	for _, t := range tiers {
		for _, v := range []float64{t.warning, t.danger, t.critical} {
			if v <= 0 || v > 100 {
				return fmt.Errorf("%s thresholds must be between 0 and 100", t.name)
			}
		}
		if t.warning > t.danger || t.danger > t.critical {
			return fmt.Errorf("%s thresholds must satisfy warning <= danger <= critical", t.name)
		}
	}
	if s.ProfitTargetInfo <= 0 || s.ProfitTargetInfo > 100 {
		return fmt.Errorf("profit target info threshold must be between 0 and 100")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./traidal.db",
		},
		Alerts: AlertsConfig{
			PollInterval: "60s",
			Retention:    "168h",
			Defaults:     journal.DefaultAlertSettings(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "tint",
			Color:  true,
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Notify: NotifyConfig{
			Log: true,
		},
	}
}

func parsePositive(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}
