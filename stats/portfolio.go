package stats

import "github.com/rustyeddy/traidal/pkg/money"

// Totals aggregates several accounts. AvgWinRate is the unweighted mean of
// the per-account win rates.
type Totals struct {
	Accounts    int     `json:"accounts"`
	Equity      float64 `json:"equity"`
	TotalPnl    float64 `json:"totalPnl"`
	TotalTrades int     `json:"totalTrades"`
	AvgWinRate  float64 `json:"avgWinRate"`
}

func Portfolio(all []AccountStats) Totals {
	t := Totals{Accounts: len(all)}
	var equity, pnl, winRate float64
	for _, s := range all {
		equity += s.CurrentEquity
		pnl += s.TotalPnl
		winRate += s.WinRate
		t.TotalTrades += s.TotalTrades
	}
	t.Equity = money.Round2(equity)
	t.TotalPnl = money.Round2(pnl)
	if len(all) > 0 {
		t.AvgWinRate = money.Round2(winRate / float64(len(all)))
	}
	return t
}
