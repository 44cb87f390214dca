package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRunsUntilCancelled(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	acct, err := f.tracker.CreateAccount(context.Background(), journal.Account{Name: "Live", Type: journal.AccountReal, InitialBalance: 10000, MaxDrawdownLimit: money.Ptr(1000)})
	require.NoError(t, err)
	_, _, err = f.tracker.RecordTrade(context.Background(), journal.Trade{AccountID: acct.ID, Pair: "EURUSD", OpenDatetime: "2024-03-14T09:00:00Z", CloseDatetime: "2024-03-14T10:00:00Z", TotalPnl: -800})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMonitor(f.tracker, 5*time.Millisecond)
	var passes int
	m.OnRefresh = func(n int, err error) {
		assert.NoError(t, err)
		passes = n
		if n == 3 {
			cancel()
		}
	}

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop")
	}

	assert.Equal(t, 3, passes)
	assert.Equal(t, 3.0, f.counter(t, "traidal_alert_refresh_total"))

	list, err := f.tracker.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, journal.SeverityDanger, list[0].Severity)
}

func TestNewMonitorDefaultInterval(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	m := NewMonitor(f.tracker, 0)
	assert.Equal(t, DefaultPollInterval, m.interval)
}
