package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rustyeddy/traidal/config"
	"github.com/rustyeddy/traidal/internal/logging"
	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/rustyeddy/traidal/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "traidal",
	Short: "Trading journal analytics for personal and prop firm accounts",
	Long: `Traidal keeps a journal of trading accounts and the trades placed in them.

It provides tools for:
  - Account statistics, equity curves and drawdown tracking
  - Win/loss streaks and expectancy
  - Prop firm challenge phase progression
  - Drawdown and profit target alerts with a polling monitor
  - Daily P/L calendars and CSV / Org-mode exports

Complete documentation is available at https://github.com/rustyeddy/traidal`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLog,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// loadConfig resolves the configuration in order: defaults, config file,
// environment, then command line flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	if err := config.ApplyEnv(c); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	opts := logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Color:  c.Log.Color,
		Out:    cmd.ErrOrStderr(),
	}
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		opts.File = f
	}
	l, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	cfg, logger = c, l
	slog.SetDefault(l)
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// openTracker opens the configured journal and wraps it in a Tracker.
// The returned func closes the journal.
func openTracker(opts ...tracker.Option) (*tracker.Tracker, func(), error) {
	store, err := journal.NewSQLite(cfg.Database.Path, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	store.SetDefaultSettings(cfg.Alerts.Defaults)

	retention, err := cfg.Alerts.RetentionPeriod()
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	base := []tracker.Option{
		tracker.WithLogger(logger),
		tracker.WithRetention(retention),
	}
	t := tracker.New(store, append(base, opts...)...)
	return t, func() { _ = store.Close() }, nil
}
