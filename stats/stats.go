// Package stats derives performance analytics from an account's trades.
// Every function here is pure: it reads its arguments and returns a new
// value, so callers may share inputs across goroutines freely.
package stats

import (
	"math"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// AccountStats summarises the closed trades of one account. Amounts are in
// account currency and, like WinRate (percent), rounded to two decimals.
type AccountStats struct {
	TotalTrades     int                   `json:"totalTrades"`
	WinRate         float64               `json:"winRate"`
	ProfitFactor    float64               `json:"profitFactor"`
	TotalPnl        float64               `json:"totalPnl"`
	MaxDrawdown     float64               `json:"maxDrawdown"`
	CurrentDrawdown float64               `json:"currentDrawdown"`
	CurrentEquity   float64               `json:"currentEquity"`
	EquityCurve     []journal.EquityPoint `json:"equityCurve"`
	AvgRiskReward   float64               `json:"avgRiskReward"`
	BestTrade       float64               `json:"bestTrade"`
	WorstTrade      float64               `json:"worstTrade"`
}

// ComputeAccountStats is ComputeAccountStatsAt evaluated at the current time.
func ComputeAccountStats(acct journal.Account, trades []journal.Trade) AccountStats {
	return ComputeAccountStatsAt(acct, trades, time.Now())
}

// ComputeAccountStatsAt rebuilds the equity curve of acct from its closed
// trades (status CLOSED or a valid close time) using fee-inclusive P&L.
// now stamps the final curve point.
//
// When no trade lost money the profit factor equals the gross profit.
func ComputeAccountStatsAt(acct journal.Account, trades []journal.Trade, now time.Time) AccountStats {
	closed := journal.ClosedTrades(trades)

	var (
		wins                   int
		grossProfit, grossLoss float64
		totalPnl, totalRR      float64
		best, worst            float64
	)

	equity := acct.InitialBalance
	peak := equity
	var maxDD, currentDD float64

	start := curveStart(acct, closed, now)
	curve := make([]journal.EquityPoint, 0, len(closed)+2)
	curve = append(curve, journal.EquityPoint{Date: start, Value: money.Round2(acct.InitialBalance)})
	last := start

	for _, t := range closed {
		pnl := t.PnLWithFees()
		switch {
		case pnl > 0:
			wins++
			grossProfit += pnl
		case pnl < 0:
			grossLoss -= pnl
		}
		totalPnl += pnl
		totalRR += t.RiskReward

		best = math.Max(best, pnl)
		worst = math.Min(worst, pnl)

		equity += pnl
		if equity > peak {
			peak = equity
		}
		dd := peak - equity
		if dd > maxDD {
			maxDD = dd
		}
		currentDD = dd

		// trades without any usable timestamp sort first; keep the curve
		// ordered by pinning them to the previous point
		at := t.EffectiveTime()
		if at.Before(last) {
			at = last
		}
		curve = append(curve, journal.EquityPoint{Date: at, Value: money.Round2(equity)})
		last = at
	}

	end := now
	if end.Before(last) {
		end = last
	}
	curve = append(curve, journal.EquityPoint{Date: end, Value: money.Round2(equity)})

	s := AccountStats{
		TotalTrades:     len(closed),
		TotalPnl:        money.Round2(totalPnl),
		MaxDrawdown:     money.Round2(maxDD),
		CurrentDrawdown: money.Round2(currentDD),
		CurrentEquity:   money.Round2(equity),
		EquityCurve:     curve,
		BestTrade:       money.Round2(best),
		WorstTrade:      money.Round2(worst),
	}
	if len(closed) > 0 {
		s.WinRate = money.Round2(float64(wins) / float64(len(closed)) * 100)
		s.AvgRiskReward = money.Round2(totalRR / float64(len(closed)))
	}
	if grossLoss == 0 {
		s.ProfitFactor = money.Round2(grossProfit)
	} else {
		s.ProfitFactor = money.Round2(grossProfit / grossLoss)
	}
	return s
}

// curveStart is the account's creation time, moved back to the first trade
// when trades were back-filled before it.
func curveStart(acct journal.Account, closed []journal.Trade, now time.Time) time.Time {
	start := acct.CreatedAt
	for _, t := range closed {
		at := t.EffectiveTime()
		if at.IsZero() {
			continue
		}
		if start.IsZero() || at.Before(start) {
			start = at
		}
		break
	}
	if start.IsZero() {
		start = now
	}
	return start
}

// DrawdownPercent expresses a drawdown as a percentage of the starting
// balance.
func DrawdownPercent(drawdown, initialBalance float64) float64 {
	if drawdown == 0 || initialBalance == 0 {
		return 0
	}
	if drawdown < 0 {
		drawdown = -drawdown
	}
	return money.Round2(drawdown / initialBalance * 100)
}
