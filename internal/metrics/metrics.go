// Package metrics exposes Prometheus instruments for the alert monitor and
// the trade tracker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "traidal"

// Metrics groups every instrument. Build it with New against the registry
// the endpoint will serve.
type Metrics struct {
	refreshes        *prometheus.CounterVec
	refreshSeconds   prometheus.Histogram
	alerts           *prometheus.CounterVec
	unread           prometheus.Gauge
	equity           *prometheus.GaugeVec
	drawdownPct      *prometheus.GaugeVec
	tradesRecorded   *prometheus.CounterVec
	phaseTransitions *prometheus.CounterVec
}

// New registers the instruments with reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		refreshes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alert_refresh_total",
				Help:      "Alert refresh passes by result",
			},
			[]string{"result"},
		),
		refreshSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "alert_refresh_duration_seconds",
				Help:      "Duration of an alert refresh pass",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
		alerts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_raised_total",
				Help:      "New alerts raised by type and severity",
			},
			[]string{"type", "severity"},
		),
		unread: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "alerts_unread",
				Help:      "Stored alerts not yet read",
			},
		),
		equity: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "account_equity",
				Help:      "Current equity per account",
			},
			[]string{"account"},
		),
		drawdownPct: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "account_drawdown_percent",
				Help:      "Current drawdown as a percent of the max drawdown limit",
			},
			[]string{"account"},
		),
		tradesRecorded: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trades_recorded_total",
				Help:      "Trades saved through the tracker",
			},
			[]string{"account"},
		),
		phaseTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "phase_transitions_total",
				Help:      "Prop challenge phase transitions by destination phase",
			},
			[]string{"to"},
		),
	}
}

// ObserveRefresh records one refresh pass.
func (m *Metrics) ObserveRefresh(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.refreshes.WithLabelValues(result).Inc()
	m.refreshSeconds.Observe(d.Seconds())
}

func (m *Metrics) AlertRaised(typ, severity string) {
	m.alerts.WithLabelValues(typ, severity).Inc()
}

func (m *Metrics) SetUnread(n int) {
	m.unread.Set(float64(n))
}

// SetAccount publishes the equity and drawdown gauges of one account.
func (m *Metrics) SetAccount(accountID string, equity, drawdownPct float64) {
	m.equity.WithLabelValues(accountID).Set(equity)
	m.drawdownPct.WithLabelValues(accountID).Set(drawdownPct)
}

// ForgetAccount drops the gauges of a deleted account.
func (m *Metrics) ForgetAccount(accountID string) {
	m.equity.DeleteLabelValues(accountID)
	m.drawdownPct.DeleteLabelValues(accountID)
}

func (m *Metrics) TradeRecorded(accountID string) {
	m.tradesRecorded.WithLabelValues(accountID).Inc()
}

func (m *Metrics) PhaseTransition(to string) {
	m.phaseTransitions.WithLabelValues(to).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
