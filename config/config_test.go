package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "./traidal.db", cfg.Database.Path)
	assert.Equal(t, journal.DefaultAlertSettings(), cfg.Alerts.Defaults)
	assert.NoError(t, cfg.Validate())

	poll, err := cfg.Alerts.Poll()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, poll)

	retention, err := cfg.Alerts.RetentionPeriod()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, retention)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
			errMsg:  "database.path is required",
		},
		{
			name:    "bad poll interval",
			mutate:  func(c *Config) { c.Alerts.PollInterval = "soon" },
			wantErr: true,
			errMsg:  "alerts.poll_interval",
		},
		{
			name:    "negative retention",
			mutate:  func(c *Config) { c.Alerts.Retention = "-1h" },
			wantErr: true,
			errMsg:  "alerts.retention must be positive",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "upper case log level",
			mutate:  func(c *Config) { c.Log.Level = "DEBUG" },
			wantErr: false,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
		{
			name:    "thresholds out of order",
			mutate:  func(c *Config) { c.Alerts.Defaults.MaxDrawdownDanger = 95 },
			wantErr: true,
			errMsg:  "warning <= danger <= critical",
		},
		{
			name:    "threshold above 100",
			mutate:  func(c *Config) { c.Alerts.Defaults.DailyDrawdownCritical = 150 },
			wantErr: true,
			errMsg:  "daily drawdown thresholds must be between 0 and 100",
		},
		{
			name:    "zero profit info",
			mutate:  func(c *Config) { c.Alerts.Defaults.ProfitTargetInfo = 0 },
			wantErr: true,
			errMsg:  "profit target info",
		},
		{
			name:    "bad webhook timeout",
			mutate:  func(c *Config) { c.Notify.Timeout = "0s" },
			wantErr: true,
			errMsg:  "notify.timeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Database.Path = "/var/lib/traidal/journal.db"
			cfg.Alerts.Defaults.MaxDrawdownWarning = 50
			cfg.Metrics.Addr = ""
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "traidal.yaml")
	data := "database:\n  path: /tmp/x.db\nalerts:\n  defaults:\n    max_drawdown_warning: 60\n    max_drawdown_danger: 75\n    max_drawdown_critical: 85\n    daily_drawdown_warning: 60\n    daily_drawdown_danger: 80\n    daily_drawdown_critical: 90\n    profit_target_info: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, 75.0, cfg.Alerts.Defaults.MaxDrawdownDanger)
	assert.Equal(t, "60s", cfg.Alerts.PollInterval)
	assert.Equal(t, "tint", cfg.Log.Format)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: \"\"\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRAIDAL_DB=/from/dotenv.db\nTRAIDAL_WEBHOOK_URL=http://hooks.local/alerts\n"), 0644))

	t.Setenv(EnvDB, "")
	t.Setenv(EnvWebhookURL, "")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvMetricsAddr, "")
	require.NoError(t, os.Unsetenv(EnvDB))
	require.NoError(t, os.Unsetenv(EnvWebhookURL))

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "/from/dotenv.db", cfg.Database.Path)
	assert.Equal(t, "http://hooks.local/alerts", cfg.Notify.WebhookURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	// set but empty disables the metrics endpoint
	assert.Equal(t, "", cfg.Metrics.Addr)
}
