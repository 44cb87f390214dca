package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the Store backed by a single SQLite database file.
type SQLite struct {
	db       *sql.DB
	logger   *slog.Logger
	defaults AlertSettings
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{
		db:       db,
		logger:   logger.With(slog.String("component", "journal")),
		defaults: DefaultAlertSettings(),
	}, nil
}

// SetDefaultSettings replaces what GetAlertSettings returns before any
// settings have been saved.
func (j *SQLite) SetDefaultSettings(s AlertSettings) {
	j.defaults = s
}

func (j *SQLite) SaveAccount(ctx context.Context, a Account) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	if a.Status == "" {
		a.Status = StatusActive
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO accounts
		(id, name, type, broker, currency, initial_balance, status, created_at,
		 challenge_type, phase, challenge_cost, max_drawdown_limit, daily_drawdown_limit,
		 profit_split_percent, phase1_profit_target, phase2_profit_target, funded_profit_target,
		 phase1_profit_target_percent, phase2_profit_target_percent, funded_profit_target_percent,
		 current_phase_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			broker = excluded.broker,
			currency = excluded.currency,
			initial_balance = excluded.initial_balance,
			status = excluded.status,
			challenge_type = excluded.challenge_type,
			phase = excluded.phase,
			challenge_cost = excluded.challenge_cost,
			max_drawdown_limit = excluded.max_drawdown_limit,
			daily_drawdown_limit = excluded.daily_drawdown_limit,
			profit_split_percent = excluded.profit_split_percent,
			phase1_profit_target = excluded.phase1_profit_target,
			phase2_profit_target = excluded.phase2_profit_target,
			funded_profit_target = excluded.funded_profit_target,
			phase1_profit_target_percent = excluded.phase1_profit_target_percent,
			phase2_profit_target_percent = excluded.phase2_profit_target_percent,
			funded_profit_target_percent = excluded.funded_profit_target_percent,
			current_phase_pnl = excluded.current_phase_pnl`,
		a.ID, a.Name, string(a.Type), a.Broker, a.Currency, a.InitialBalance, string(a.Status), a.CreatedAt.UTC(),
		string(a.ChallengeType), string(a.Phase), nullFloat(a.ChallengeCost),
		nullFloat(a.MaxDrawdownLimit), nullFloat(a.DailyDrawdownLimit), nullFloat(a.ProfitSplitPercent),
		nullFloat(a.Phase1ProfitTarget), nullFloat(a.Phase2ProfitTarget), nullFloat(a.FundedProfitTarget),
		nullFloat(a.Phase1ProfitTargetPercent), nullFloat(a.Phase2ProfitTargetPercent), nullFloat(a.FundedProfitTargetPercent),
		nullFloat(a.CurrentPhasePnL),
	)
	if err != nil {
		return fmt.Errorf("save account %s: %w", a.ID, err)
	}
	j.logger.Debug("account saved", slog.String("account", a.ID))
	return nil
}

func (j *SQLite) DeleteAccount(ctx context.Context, id string) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM partial_closes WHERE trade_id IN (SELECT id FROM trades WHERE account_id = ?)`,
		`DELETE FROM trades WHERE account_id = ?`,
		`DELETE FROM trading_alerts WHERE account_id = ?`,
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete account %s: %w", id, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	j.logger.Info("account deleted", slog.String("account", id))
	return nil
}

// SaveTrade upserts the trade and replaces its partial closes.
func (j *SQLite) SaveTrade(ctx context.Context, t Trade) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("save trade: %w", err)
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trades
		(id, account_id, pair, direction, open_datetime, close_datetime, entry_price, exit_price,
		 stop_loss, take_profit, total_lots, total_pnl, commission, swap, risk_reward,
		 screenshot_url, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			pair = excluded.pair,
			direction = excluded.direction,
			open_datetime = excluded.open_datetime,
			close_datetime = excluded.close_datetime,
			entry_price = excluded.entry_price,
			exit_price = excluded.exit_price,
			stop_loss = excluded.stop_loss,
			take_profit = excluded.take_profit,
			total_lots = excluded.total_lots,
			total_pnl = excluded.total_pnl,
			commission = excluded.commission,
			swap = excluded.swap,
			risk_reward = excluded.risk_reward,
			screenshot_url = excluded.screenshot_url,
			notes = excluded.notes,
			status = excluded.status`,
		t.ID, t.AccountID, t.Pair, string(t.Direction), t.OpenDatetime, t.CloseDatetime,
		t.EntryPrice, nullFloat(t.ExitPrice), t.StopLoss, t.TakeProfit, t.TotalLots, t.TotalPnl,
		nullFloat(t.Commission), nullFloat(t.Swap), t.RiskReward, t.ScreenshotURL, t.Notes, string(t.Status),
	)
	if err != nil {
		return fmt.Errorf("save trade %s: %w", t.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM partial_closes WHERE trade_id = ?`, t.ID); err != nil {
		return fmt.Errorf("save trade %s partials: %w", t.ID, err)
	}
	for i, p := range t.Partials {
		if p.ID == "" {
			p.ID = fmt.Sprintf("%s-p%d", t.ID, i+1)
		}
		if p.CloseNumber == 0 {
			p.CloseNumber = i + 1
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO partial_closes
			(id, trade_id, close_number, close_datetime, exit_price, lots_closed, pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, t.ID, p.CloseNumber, p.CloseDatetime, p.ExitPrice, p.LotsClosed, p.PnL,
		)
		if err != nil {
			return fmt.Errorf("save trade %s partial %d: %w", t.ID, p.CloseNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	j.logger.Debug("trade saved", slog.String("trade", t.ID), slog.String("account", t.AccountID))
	return nil
}

func (j *SQLite) DeleteTrade(ctx context.Context, id string) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM partial_closes WHERE trade_id = ?`, id); err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trade %q: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

func (j *SQLite) SaveAlert(ctx context.Context, a TradingAlert) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trading_alerts
		(id, account_id, type, severity, message, current_value, limit_value, percentage, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			severity = excluded.severity,
			message = excluded.message,
			current_value = excluded.current_value,
			limit_value = excluded.limit_value,
			percentage = excluded.percentage,
			is_read = excluded.is_read,
			created_at = excluded.created_at`,
		a.ID, a.AccountID, string(a.Type), string(a.Severity), a.Message,
		a.CurrentValue, a.LimitValue, a.Percentage, a.IsRead, a.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save alert %s: %w", a.ID, err)
	}
	return nil
}

func (j *SQLite) DeleteAlert(ctx context.Context, id string) error {
	if _, err := j.db.ExecContext(ctx, `DELETE FROM trading_alerts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete alert %s: %w", id, err)
	}
	return nil
}

func (j *SQLite) SaveAlertSettings(ctx context.Context, s AlertSettings) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO alert_settings
		(id, max_drawdown_warning, max_drawdown_danger, max_drawdown_critical,
		 daily_drawdown_warning, daily_drawdown_danger, daily_drawdown_critical,
		 profit_target_info, enable_sounds, enable_notifications)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			max_drawdown_warning = excluded.max_drawdown_warning,
			max_drawdown_danger = excluded.max_drawdown_danger,
			max_drawdown_critical = excluded.max_drawdown_critical,
			daily_drawdown_warning = excluded.daily_drawdown_warning,
			daily_drawdown_danger = excluded.daily_drawdown_danger,
			daily_drawdown_critical = excluded.daily_drawdown_critical,
			profit_target_info = excluded.profit_target_info,
			enable_sounds = excluded.enable_sounds,
			enable_notifications = excluded.enable_notifications`,
		s.MaxDrawdownWarning, s.MaxDrawdownDanger, s.MaxDrawdownCritical,
		s.DailyDrawdownWarning, s.DailyDrawdownDanger, s.DailyDrawdownCritical,
		s.ProfitTargetInfo, s.EnableSounds, s.EnableNotifications,
	)
	if err != nil {
		return fmt.Errorf("save alert settings: %w", err)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
