package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

const accountColumns = `id, name, type, broker, currency, initial_balance, status, created_at,
	challenge_type, phase, challenge_cost, max_drawdown_limit, daily_drawdown_limit,
	profit_split_percent, phase1_profit_target, phase2_profit_target, funded_profit_target,
	phase1_profit_target_percent, phase2_profit_target_percent, funded_profit_target_percent,
	current_phase_pnl`

func scanAccount(s scanner) (Account, error) {
	var (
		a                                                     Account
		typ, status, challenge, phase                         string
		cost, maxDD, dailyDD, split                           sql.NullFloat64
		p1, p2, funded, p1Pct, p2Pct, fundedPct, currentPhase sql.NullFloat64
	)
	err := s.Scan(
		&a.ID, &a.Name, &typ, &a.Broker, &a.Currency, &a.InitialBalance, &status, &a.CreatedAt,
		&challenge, &phase, &cost, &maxDD, &dailyDD,
		&split, &p1, &p2, &funded,
		&p1Pct, &p2Pct, &fundedPct,
		&currentPhase,
	)
	if err != nil {
		return Account{}, err
	}

	a.Type = AccountType(typ)
	a.Status = AccountStatus(status)
	a.ChallengeType = ChallengeType(challenge)
	a.Phase = Phase(phase)
	a.ChallengeCost = floatPtr(cost)
	a.MaxDrawdownLimit = floatPtr(maxDD)
	a.DailyDrawdownLimit = floatPtr(dailyDD)
	a.ProfitSplitPercent = floatPtr(split)
	a.Phase1ProfitTarget = floatPtr(p1)
	a.Phase2ProfitTarget = floatPtr(p2)
	a.FundedProfitTarget = floatPtr(funded)
	a.Phase1ProfitTargetPercent = floatPtr(p1Pct)
	a.Phase2ProfitTargetPercent = floatPtr(p2Pct)
	a.FundedProfitTargetPercent = floatPtr(fundedPct)
	a.CurrentPhasePnL = floatPtr(currentPhase)
	return a, nil
}

// GetAccounts returns every account, newest first.
func (j *SQLite) GetAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAccount returns a single account by ID.
func (j *SQLite) GetAccount(ctx context.Context, id string) (Account, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
		}
		return Account{}, err
	}
	return a, nil
}

const tradeColumns = `id, account_id, pair, direction, open_datetime, close_datetime, entry_price, exit_price,
	stop_loss, take_profit, total_lots, total_pnl, commission, swap, risk_reward,
	screenshot_url, notes, status`

func scanTrade(s scanner) (Trade, error) {
	var (
		t                      Trade
		direction, status      string
		exit, commission, swap sql.NullFloat64
	)
	err := s.Scan(
		&t.ID, &t.AccountID, &t.Pair, &direction, &t.OpenDatetime, &t.CloseDatetime, &t.EntryPrice, &exit,
		&t.StopLoss, &t.TakeProfit, &t.TotalLots, &t.TotalPnl, &commission, &swap, &t.RiskReward,
		&t.ScreenshotURL, &t.Notes, &status,
	)
	if err != nil {
		return Trade{}, err
	}
	t.Direction = Direction(direction)
	t.Status = TradeStatus(status)
	t.ExitPrice = floatPtr(exit)
	t.Commission = floatPtr(commission)
	t.Swap = floatPtr(swap)
	t.Partials = []PartialClose{}
	return t, nil
}

// GetTrades returns the trades of accountID ordered by open time, or all
// trades when accountID is empty.
func (j *SQLite) GetTrades(ctx context.Context, accountID string) ([]Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades`
	var args []any
	if accountID != "" {
		query += ` WHERE account_id = ?`
		args = append(args, accountID)
	}
	query += ` ORDER BY open_datetime ASC, id ASC`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	partials, err := j.partials(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if p, ok := partials[out[i].ID]; ok {
			out[i].Partials = p
		}
	}
	return out, nil
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, id string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
		}
		return Trade{}, err
	}

	partials, err := j.partials(ctx, t.AccountID)
	if err != nil {
		return Trade{}, err
	}
	if p, ok := partials[t.ID]; ok {
		t.Partials = p
	}
	return t, nil
}

// partials loads partial closes grouped by trade ID.
func (j *SQLite) partials(ctx context.Context, accountID string) (map[string][]PartialClose, error) {
	query := `SELECT p.id, p.trade_id, p.close_number, p.close_datetime, p.exit_price, p.lots_closed, p.pnl
		FROM partial_closes p`
	var args []any
	if accountID != "" {
		query += ` JOIN trades t ON t.id = p.trade_id WHERE t.account_id = ?`
		args = append(args, accountID)
	}
	query += ` ORDER BY p.trade_id, p.close_number`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]PartialClose{}
	for rows.Next() {
		var p PartialClose
		if err := rows.Scan(&p.ID, &p.TradeID, &p.CloseNumber, &p.CloseDatetime, &p.ExitPrice, &p.LotsClosed, &p.PnL); err != nil {
			return nil, err
		}
		out[p.TradeID] = append(out[p.TradeID], p)
	}
	return out, rows.Err()
}

// GetAlerts returns every stored alert, newest first.
func (j *SQLite) GetAlerts(ctx context.Context) ([]TradingAlert, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, account_id, type, severity, message, current_value, limit_value, percentage, is_read, created_at
		FROM trading_alerts
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradingAlert
	for rows.Next() {
		var (
			a             TradingAlert
			typ, severity string
		)
		if err := rows.Scan(
			&a.ID, &a.AccountID, &typ, &severity, &a.Message,
			&a.CurrentValue, &a.LimitValue, &a.Percentage, &a.IsRead, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		a.Type = AlertType(typ)
		a.Severity = Severity(severity)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) GetAlertSettings(ctx context.Context) (AlertSettings, error) {
	var s AlertSettings
	err := j.db.QueryRowContext(ctx, `
		SELECT max_drawdown_warning, max_drawdown_danger, max_drawdown_critical,
			daily_drawdown_warning, daily_drawdown_danger, daily_drawdown_critical,
			profit_target_info, enable_sounds, enable_notifications
		FROM alert_settings WHERE id = 1`).Scan(
		&s.MaxDrawdownWarning, &s.MaxDrawdownDanger, &s.MaxDrawdownCritical,
		&s.DailyDrawdownWarning, &s.DailyDrawdownDanger, &s.DailyDrawdownCritical,
		&s.ProfitTargetInfo, &s.EnableSounds, &s.EnableNotifications,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return j.defaults, nil
	}
	if err != nil {
		return AlertSettings{}, fmt.Errorf("get alert settings: %w", err)
	}
	return s, nil
}
