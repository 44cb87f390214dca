package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rustyeddy/traidal/alerts"
)

// DefaultPollInterval is how often the monitor refreshes alerts.
const DefaultPollInterval = 60 * time.Second

// Monitor refreshes alerts on a fixed interval.
type Monitor struct {
	tracker  *Tracker
	interval time.Duration
	logger   *slog.Logger

	// OnRefresh, when set, is called after every pass.
	OnRefresh func(passes int, err error)
}

func NewMonitor(t *Tracker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		tracker:  t,
		interval: interval,
		logger:   t.logger.With(slog.String("component", "monitor")),
	}
}

// Run refreshes once immediately and then on every tick until ctx is
// done, returning ctx.Err(). A failed pass is logged and retried on the
// next tick.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	passes := 0
	for {
		passes++
		res, err := m.tracker.RefreshAlerts(ctx)
		if err != nil {
			m.logger.Error("refresh alerts", "err", err)
		} else if len(res.Added) > 0 {
			m.logger.Info("new alerts", "count", len(res.Added), "unread", alerts.UnreadCount(res.Alerts))
		}
		if m.OnRefresh != nil {
			m.OnRefresh(passes, err)
		}
		if ctx.Err() != nil {
			m.logger.Info("monitor stopped", "passes", passes)
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped", "passes", passes)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
