package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rustyeddy/traidal/internal/metrics"
	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Refresh alerts on an interval and serve metrics",
	Long: `Run alert detection every poll interval until interrupted. New alerts
go to the configured notifiers. When metrics.addr is set, Prometheus
metrics are served at /metrics.

Example:
  traidal --config traidal.yaml monitor --interval 30s`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

var monitorInterval time.Duration

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 0, "poll interval (default from config)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	interval := monitorInterval
	if interval <= 0 {
		var err error
		if interval, err = cfg.Alerts.Poll(); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	notifier, err := buildNotifier()
	if err != nil {
		return err
	}
	t, done, err := openTracker(tracker.WithMetrics(m), tracker.WithNotifier(notifier))
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "err", err)
				stop()
			}
		}()
		defer func() {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()
	}

	err = tracker.NewMonitor(t, interval).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
