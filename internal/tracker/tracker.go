// Package tracker is the application service behind the traidal CLI. It
// reads and writes the journal store and runs the analytics, phase and
// alert packages over what it finds there.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/traidal/alerts"
	"github.com/rustyeddy/traidal/internal/metrics"
	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/id"
	"github.com/rustyeddy/traidal/prop"
	"github.com/rustyeddy/traidal/risk"
)

// Tracker coordinates a journal.Store with the analytics packages. It is
// safe for concurrent use when the store is.
type Tracker struct {
	store     journal.Store
	logger    *slog.Logger
	notifier  alerts.Notifier
	metrics   *metrics.Metrics
	now       func() time.Time
	retention time.Duration
}

type Option func(*Tracker)

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithNotifier sends new alerts to n when the user has notifications on.
func WithNotifier(n alerts.Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithRetention sets how long alerts are kept.
func WithRetention(d time.Duration) Option {
	return func(t *Tracker) { t.retention = d }
}

func New(store journal.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		logger:    slog.Default(),
		now:       time.Now,
		retention: alerts.DefaultRetention,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(slog.String("component", "tracker"))
	return t
}

// CreateAccount fills in the identifier, creation time, status, starting
// phase and missing profit targets of a, then saves it.
func (t *Tracker) CreateAccount(ctx context.Context, a journal.Account) (journal.Account, error) {
	if a.ID == "" {
		a.ID = id.For(id.Account)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = t.now().UTC()
	}
	if a.Status == "" {
		a.Status = journal.StatusActive
	}
	if a.Type == journal.AccountProp && a.Phase == "" {
		a.Phase = journal.Phase1
		if a.ChallengeType == journal.ChallengeInstant {
			a.Phase = journal.PhaseInstant
		}
	}
	a = prop.ResolveTargets(a)

	if err := t.store.SaveAccount(ctx, a); err != nil {
		return journal.Account{}, fmt.Errorf("create account: %w", err)
	}
	t.logger.Info("account created", "account", a.ID, "type", a.Type, "balance", a.InitialBalance)
	return a, nil
}

// DeleteAccount removes an account with its trades and alerts.
func (t *Tracker) DeleteAccount(ctx context.Context, accountID string) error {
	if err := t.store.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if t.metrics != nil {
		t.metrics.ForgetAccount(accountID)
	}
	t.logger.Info("account deleted", "account", accountID)
	return nil
}

// RecordTrade saves tr and re-evaluates the phase of its account. Missing
// identifiers are minted and a zero risk:reward is derived from the entry,
// stop and target prices. The returned transition reports whether the
// account moved to a new phase; a PHASE_PASSED alert is stored when it did.
func (t *Tracker) RecordTrade(ctx context.Context, tr journal.Trade) (journal.Trade, prop.Transition, error) {
	if tr.ID == "" {
		tr.ID = id.For(id.Trade)
	}
	if err := tr.Validate(); err != nil {
		return journal.Trade{}, prop.Transition{}, fmt.Errorf("record trade: %w", err)
	}
	if tr.Status == "" {
		tr.Status = journal.TradeOpen
		if tr.HasValidClose() {
			tr.Status = journal.TradeClosed
		}
	}
	if tr.RiskReward == 0 {
		tr.RiskReward = risk.RR(tr.EntryPrice, tr.StopLoss, tr.TakeProfit, tr.Direction)
	}

	if _, err := t.store.GetAccount(ctx, tr.AccountID); err != nil {
		return journal.Trade{}, prop.Transition{}, fmt.Errorf("record trade: account %s: %w", tr.AccountID, err)
	}
	if err := t.store.SaveTrade(ctx, tr); err != nil {
		return journal.Trade{}, prop.Transition{}, fmt.Errorf("record trade: %w", err)
	}
	if t.metrics != nil {
		t.metrics.TradeRecorded(tr.AccountID)
	}
	t.logger.Debug("trade recorded", "trade", tr.ID, "account", tr.AccountID, "status", tr.Status, "pnl", tr.TotalPnl)

	transition, err := t.SyncPhase(ctx, tr.AccountID)
	return tr, transition, err
}

// Trades lists the trades of one account, or of every account when
// accountID is empty, ordered by effective time.
func (t *Tracker) Trades(ctx context.Context, accountID string) ([]journal.Trade, error) {
	trades, err := t.store.GetTrades(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	journal.SortByEffectiveTime(trades)
	return trades, nil
}

// CloseTrade marks a trade closed at closeAt with its final P&L.
func (t *Tracker) CloseTrade(ctx context.Context, tradeID string, exitPrice, pnl float64, closeAt time.Time) (journal.Trade, prop.Transition, error) {
	tr, err := t.store.GetTrade(ctx, tradeID)
	if err != nil {
		return journal.Trade{}, prop.Transition{}, fmt.Errorf("close trade: %w", err)
	}
	if closeAt.IsZero() {
		closeAt = t.now()
	}
	tr.ExitPrice = &exitPrice
	tr.TotalPnl = pnl
	tr.CloseDatetime = closeAt.UTC().Format(time.RFC3339)
	tr.Status = journal.TradeClosed
	return t.RecordTrade(ctx, tr)
}

// DeleteTrade removes a trade and re-evaluates its account.
func (t *Tracker) DeleteTrade(ctx context.Context, tradeID string) error {
	tr, err := t.store.GetTrade(ctx, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if err := t.store.DeleteTrade(ctx, tradeID); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	_, err = t.SyncPhase(ctx, tr.AccountID)
	return err
}

// SyncPhase runs prop.Advance for an account and persists the result.
func (t *Tracker) SyncPhase(ctx context.Context, accountID string) (prop.Transition, error) {
	acct, err := t.store.GetAccount(ctx, accountID)
	if err != nil {
		return prop.Transition{}, fmt.Errorf("sync phase: %w", err)
	}
	if !acct.IsProp() {
		return prop.Transition{From: acct.Phase, To: acct.Phase}, nil
	}
	trades, err := t.store.GetTrades(ctx, accountID)
	if err != nil {
		return prop.Transition{}, fmt.Errorf("sync phase: %w", err)
	}

	updated, tr := prop.Advance(acct, trades)
	if err := t.store.SaveAccount(ctx, updated); err != nil {
		return tr, fmt.Errorf("sync phase: %w", err)
	}
	if !tr.Passed() {
		return tr, nil
	}

	t.logger.Info("phase passed", "account", accountID, "from", tr.From, "to", tr.To, "pnl", tr.TotalPnL)
	if t.metrics != nil {
		t.metrics.PhaseTransition(string(tr.To))
	}
	if a, ok := alerts.PhasePassed(updated, tr, t.now()); ok {
		if err := t.store.SaveAlert(ctx, a); err != nil {
			return tr, fmt.Errorf("sync phase: %w", err)
		}
		t.notify(ctx, a)
	}
	return tr, nil
}

// Settings returns the saved alert settings.
func (t *Tracker) Settings(ctx context.Context) (journal.AlertSettings, error) {
	s, err := t.store.GetAlertSettings(ctx)
	if err != nil {
		return journal.AlertSettings{}, fmt.Errorf("alert settings: %w", err)
	}
	return s, nil
}

func (t *Tracker) SaveSettings(ctx context.Context, s journal.AlertSettings) error {
	if err := t.store.SaveAlertSettings(ctx, s); err != nil {
		return fmt.Errorf("save alert settings: %w", err)
	}
	return nil
}

// notify delivers a to the configured notifier when the user allows it.
// Delivery failures are logged and otherwise ignored.
func (t *Tracker) notify(ctx context.Context, a journal.TradingAlert) {
	if t.notifier == nil {
		return
	}
	s, err := t.store.GetAlertSettings(ctx)
	if err != nil {
		t.logger.Warn("read alert settings", "err", err)
		return
	}
	if !s.EnableNotifications {
		return
	}
	if err := t.notifier.Send(ctx, a); err != nil {
		t.logger.Warn("send alert", "alert", a.ID, "err", err)
	}
}

// IsNotFound reports whether err came from a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, journal.ErrNotFound)
}
