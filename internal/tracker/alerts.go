package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/traidal/alerts"
	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/rustyeddy/traidal/stats"
)

// RefreshAlerts runs detection for every account, merges the result with
// the stored alerts and persists the merged set. Alerts past retention are
// deleted. Newly raised alerts are sent to the notifier.
func (t *Tracker) RefreshAlerts(ctx context.Context) (res alerts.MergeResult, err error) {
	start := time.Now()
	defer func() {
		if t.metrics != nil {
			t.metrics.ObserveRefresh(time.Since(start), err)
		}
	}()

	now := t.now()
	settings, err := t.store.GetAlertSettings(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh alerts: %w", err)
	}
	accounts, err := t.store.GetAccounts(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh alerts: %w", err)
	}
	trades, err := t.store.GetTrades(ctx, "")
	if err != nil {
		return res, fmt.Errorf("refresh alerts: %w", err)
	}

	var fresh []journal.TradingAlert
	for _, a := range accounts {
		owned := journal.ForAccount(trades, a.ID)
		fresh = append(fresh, alerts.DetectAt(a, owned, settings, now)...)

		if t.metrics != nil {
			s := stats.ComputeAccountStatsAt(a, owned, now)
			pct := 0.0
			if limit := money.Value(a.MaxDrawdownLimit); limit > 0 {
				pct = s.CurrentDrawdown / limit * 100
			}
			t.metrics.SetAccount(a.ID, s.CurrentEquity, pct)
		}
	}

	stored, err := t.store.GetAlerts(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh alerts: %w", err)
	}
	res = alerts.Merge(fresh, stored, now, t.retention)

	for _, a := range res.Alerts {
		if err := t.store.SaveAlert(ctx, a); err != nil {
			return res, fmt.Errorf("refresh alerts: %w", err)
		}
	}
	for _, alertID := range res.Removed {
		if err := t.store.DeleteAlert(ctx, alertID); err != nil {
			return res, fmt.Errorf("refresh alerts: %w", err)
		}
	}

	for _, a := range res.Added {
		if t.metrics != nil {
			t.metrics.AlertRaised(string(a.Type), string(a.Severity))
		}
		if settings.EnableNotifications && t.notifier != nil {
			if err := t.notifier.Send(ctx, a); err != nil {
				t.logger.Warn("send alert", "alert", a.ID, "err", err)
			}
		}
	}
	if t.metrics != nil {
		t.metrics.SetUnread(alerts.UnreadCount(res.Alerts))
	}

	t.logger.Debug("alerts refreshed",
		"accounts", len(accounts),
		"alerts", len(res.Alerts),
		"added", len(res.Added),
		"removed", len(res.Removed),
	)
	return res, nil
}

// Alerts lists stored alerts, newest first.
func (t *Tracker) Alerts(ctx context.Context) ([]journal.TradingAlert, error) {
	list, err := t.store.GetAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	alerts.SortNewestFirst(list)
	return list, nil
}

// MarkRead flags one alert as read.
func (t *Tracker) MarkRead(ctx context.Context, alertID string) error {
	list, err := t.store.GetAlerts(ctx)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	list, ok := alerts.MarkRead(list, alertID)
	if !ok {
		return fmt.Errorf("mark read: alert %s: %w", alertID, journal.ErrNotFound)
	}
	for _, a := range list {
		if a.ID == alertID {
			if err := t.store.SaveAlert(ctx, a); err != nil {
				return fmt.Errorf("mark read: %w", err)
			}
		}
	}
	t.publishUnread(list)
	return nil
}

// MarkAllRead flags every stored alert as read and returns how many
// changed.
func (t *Tracker) MarkAllRead(ctx context.Context) (int, error) {
	list, err := t.store.GetAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	n := 0
	for i, a := range alerts.MarkAllRead(list) {
		if list[i].IsRead {
			continue
		}
		if err := t.store.SaveAlert(ctx, a); err != nil {
			return n, fmt.Errorf("mark all read: %w", err)
		}
		n++
	}
	t.publishUnread(nil)
	return n, nil
}

// Dismiss deletes an alert.
func (t *Tracker) Dismiss(ctx context.Context, alertID string) error {
	list, err := t.store.GetAlerts(ctx)
	if err != nil {
		return fmt.Errorf("dismiss: %w", err)
	}
	rest, ok := alerts.Dismiss(list, alertID)
	if !ok {
		return fmt.Errorf("dismiss: alert %s: %w", alertID, journal.ErrNotFound)
	}
	if err := t.store.DeleteAlert(ctx, alertID); err != nil {
		return fmt.Errorf("dismiss: %w", err)
	}
	t.publishUnread(rest)
	return nil
}

func (t *Tracker) publishUnread(list []journal.TradingAlert) {
	if t.metrics != nil {
		t.metrics.SetUnread(alerts.UnreadCount(list))
	}
}
