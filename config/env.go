package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvDB          = "TRAIDAL_DB"
	EnvLogLevel    = "TRAIDAL_LOG_LEVEL"
	EnvMetricsAddr = "TRAIDAL_METRICS_ADDR"
	EnvWebhookURL  = "TRAIDAL_WEBHOOK_URL"
)

// ApplyEnv loads the given dotenv files (".env" when none are named) and
// copies any TRAIDAL_* overrides into c. Missing dotenv files are ignored;
// variables already set in the process environment win over the files.
func ApplyEnv(c *Config, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		c.Metrics.Addr = v
	}
	if v := os.Getenv(EnvWebhookURL); v != "" {
		c.Notify.WebhookURL = v
	}
	return nil
}
