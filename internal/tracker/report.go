package tracker

import (
	"context"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/rustyeddy/traidal/prop"
	"github.com/rustyeddy/traidal/risk"
	"github.com/rustyeddy/traidal/stats"
)

// Report is everything the analytics packages say about one account.
type Report struct {
	Account         journal.Account     `json:"account"`
	Stats           stats.AccountStats  `json:"stats"`
	Streaks         stats.Streaks       `json:"streaks"`
	Expectancy      float64             `json:"expectancy"`
	DaysInDrawdown  int                 `json:"daysInDrawdown"`
	DaysActive      int                 `json:"daysActive"`
	DrawdownPercent float64             `json:"drawdownPercent"` // max drawdown over initial balance
	Drawdown        risk.DrawdownStatus `json:"drawdown"`        // current drawdown against the limit
	Progress        *prop.PhaseProgress `json:"progress,omitempty"`
	PhaseStatus     prop.PhaseStatus    `json:"phaseStatus"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

// BuildReport computes a Report from an account and its trades.
func BuildReport(acct journal.Account, trades []journal.Trade, now time.Time) Report {
	s := stats.ComputeAccountStatsAt(acct, trades, now)
	r := Report{
		Account:         acct,
		Stats:           s,
		Streaks:         stats.ComputeStreaks(trades),
		Expectancy:      stats.ComputeExpectancy(trades),
		DaysInDrawdown:  stats.DaysInDrawdown(acct, trades, now),
		DaysActive:      stats.DaysActive(acct, now),
		DrawdownPercent: stats.DrawdownPercent(s.MaxDrawdown, acct.InitialBalance),
		Drawdown:        risk.ClassifyDrawdown(s.CurrentDrawdown, money.Value(acct.MaxDrawdownLimit)),
		GeneratedAt:     now,
	}
	p, ok := prop.Progress(acct)
	if ok {
		r.Progress = &p
	}
	r.PhaseStatus = prop.Status(p, ok)
	return r
}

// Report loads one account and builds its report.
func (t *Tracker) Report(ctx context.Context, accountID string) (Report, error) {
	acct, err := t.store.GetAccount(ctx, accountID)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	trades, err := t.store.GetTrades(ctx, accountID)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	return BuildReport(acct, trades, t.now()), nil
}

// Reports builds a report for every account.
func (t *Tracker) Reports(ctx context.Context) ([]Report, error) {
	accounts, err := t.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: %w", err)
	}
	trades, err := t.store.GetTrades(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("reports: %w", err)
	}

	now := t.now()
	out := make([]Report, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, BuildReport(a, journal.ForAccount(trades, a.ID), now))
	}
	return out, nil
}

// Portfolio totals a set of reports.
func Portfolio(reports []Report) stats.Totals {
	all := make([]stats.AccountStats, 0, len(reports))
	for _, r := range reports {
		all = append(all, r.Stats)
	}
	return stats.Portfolio(all)
}

// Calendar buckets closed trades by day. An empty accountID covers every
// account.
func (t *Tracker) Calendar(ctx context.Context, accountID string, loc *time.Location) (map[string]stats.DayPnL, error) {
	trades, err := t.store.GetTrades(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	return stats.DailyPnL(trades, loc), nil
}

var reportOrgFuncs = template.FuncMap{
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"pct":   func(x float64) string { return fmt.Sprintf("%.2f%%", x) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "(unknown)"
		}
		return t.Format("2006-01-02 Mon 15:04")
	},
}

var reportOrg = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders reports as an Org-mode document.
func WriteOrg(w io.Writer, reports []Report) error {
	data := struct {
		Reports []Report
		Totals  stats.Totals
	}{reports, Portfolio(reports)}
	if err := reportOrg.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

const ReportOrgTemplate = `#+TITLE: Trading Journal Report
{{- with .Totals}}
* PORTFOLIO
- Accounts:      {{.Accounts}}
- Equity:        *{{money .Equity}}*
- Net P/L:       *{{money .TotalPnl}}*
- Trades:        {{.TotalTrades}}
- Avg Win Rate:  {{pct .AvgWinRate}}
{{- end}}
{{range .Reports}}
* ACCOUNT: {{.Account.Name}} ({{.Account.Type}})
:PROPERTIES:
:ACCOUNT_ID:  {{.Account.ID}}
:BROKER:      {{if .Account.Broker}}{{.Account.Broker}}{{else}}(broker?){{end}}
:CURRENCY:    {{.Account.Currency}}
:START_BAL:   {{money .Account.InitialBalance}}
:EQUITY:      {{money .Stats.CurrentEquity}}
:NET_PL:      {{money .Stats.TotalPnl}}
:TRADES:      {{.Stats.TotalTrades}}
:WIN_RATE:    {{pct .Stats.WinRate}}
:PROFIT_FAC:  {{money .Stats.ProfitFactor}}
:MAX_DD:      {{money .Stats.MaxDrawdown}}
:MAX_DD_PCT:  {{pct .DrawdownPercent}}
:CURRENT_DD:  {{money .Stats.CurrentDrawdown}}
:DD_STATUS:   {{.Drawdown.Level}}
:CREATED:     [{{date .Account.CreatedAt}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Stats.TotalPnl}}*
- Win Rate:         *{{pct .Stats.WinRate}}*
- Profit Factor:    *{{money .Stats.ProfitFactor}}*
- Expectancy:       *{{money .Expectancy}}*
- Avg R:R:          {{money .Stats.AvgRiskReward}}
- Best Trade:       {{money .Stats.BestTrade}}
- Worst Trade:      {{money .Stats.WorstTrade}}
- Days Active:      {{.DaysActive}}
- Days In Drawdown: {{.DaysInDrawdown}}

** Streaks
| Current | Type | Best Win | Worst Loss |
|---------+------+----------+------------|
| {{.Streaks.Current}} | {{.Streaks.CurrentType}} | {{.Streaks.BestWinStreak}} | {{.Streaks.WorstLossStreak}} |
{{- with .Progress}}

** Challenge
- Phase:    {{.Phase}}
- Target:   {{money .Target}}
- Current:  {{money .Current}}
- Progress: {{pct .Percent}}
{{- end}}
{{- if .Progress}}
- Status:   {{.PhaseStatus}}
{{- end}}

** Equity Curve
| Date | Equity |
|------+--------|
{{- range .Stats.EquityCurve}}
| {{date .Date}} | {{money .Value}} |
{{- end}}
{{end}}`
