package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func labelled(f *dto.MetricFamily, name, value string) *dto.Metric {
	for _, m := range f.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == name && l.GetValue() == value {
				return m
			}
		}
	}
	return nil
}

func TestRefreshMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRefresh(20*time.Millisecond, nil)
	m.ObserveRefresh(10*time.Millisecond, nil)
	m.ObserveRefresh(time.Second, errors.New("db locked"))

	fams := gather(t, reg)

	refreshes := fams["traidal_alert_refresh_total"]
	require.NotNil(t, refreshes)
	assert.Equal(t, 2.0, labelled(refreshes, "result", "ok").GetCounter().GetValue())
	assert.Equal(t, 1.0, labelled(refreshes, "result", "error").GetCounter().GetValue())

	hist := fams["traidal_alert_refresh_duration_seconds"]
	require.NotNil(t, hist)
	assert.Equal(t, uint64(3), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestAlertAndAccountMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.AlertRaised("MAX_DD", "CRITICAL")
	m.AlertRaised("MAX_DD", "CRITICAL")
	m.SetUnread(4)
	m.SetAccount("acc-1", 10250.5, 42)
	m.SetAccount("acc-2", 900, 0)
	m.ForgetAccount("acc-2")
	m.TradeRecorded("acc-1")
	m.PhaseTransition("PHASE_2")

	fams := gather(t, reg)

	raised := fams["traidal_alerts_raised_total"]
	require.NotNil(t, raised)
	assert.Equal(t, 2.0, labelled(raised, "severity", "CRITICAL").GetCounter().GetValue())

	assert.Equal(t, 4.0, fams["traidal_alerts_unread"].GetMetric()[0].GetGauge().GetValue())

	equity := fams["traidal_account_equity"]
	require.Len(t, equity.GetMetric(), 1)
	assert.Equal(t, 10250.5, labelled(equity, "account", "acc-1").GetGauge().GetValue())

	assert.Equal(t, 1.0, labelled(fams["traidal_trades_recorded_total"], "account", "acc-1").GetCounter().GetValue())
	assert.Equal(t, 1.0, labelled(fams["traidal_phase_transitions_total"], "to", "PHASE_2").GetCounter().GetValue())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SetUnread(2)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "traidal_alerts_unread 2")
}
