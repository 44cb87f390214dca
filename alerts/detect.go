// Package alerts turns account risk and progress into TradingAlert records
// and keeps the stored alert list in step with fresh detections.
package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/rustyeddy/traidal/prop"
	"github.com/rustyeddy/traidal/stats"
)

// Detect is DetectAt evaluated at the current time.
func Detect(acct journal.Account, trades []journal.Trade, settings journal.AlertSettings) []journal.TradingAlert {
	return DetectAt(acct, trades, settings, time.Now())
}

// DetectAt evaluates three independent rules against acct:
//
//   - max drawdown, when a max drawdown limit is set
//   - daily drawdown, when a daily limit is set and today's trades lost money
//   - profit target, for prop challenges with a target for their phase
//
// Each rule yields at most one alert. Drawdown rules pick the highest tier
// reached, checking critical before danger before warning. Missing limits
// or targets silence their rule. trades are expected to belong to acct.
func DetectAt(acct journal.Account, trades []journal.Trade, settings journal.AlertSettings, now time.Time) []journal.TradingAlert {
	var out []journal.TradingAlert

	if limit := money.Value(acct.MaxDrawdownLimit); limit > 0 {
		dd := stats.ComputeAccountStatsAt(acct, trades, now).CurrentDrawdown
		if dd < 0 {
			dd = -dd
		}
		pct := dd / limit * 100
		sev, ok := tier(pct, settings.MaxDrawdownWarning, settings.MaxDrawdownDanger, settings.MaxDrawdownCritical)
		if ok {
			out = append(out, newAlert(acct, journal.AlertMaxDrawdown, sev, now, dd, limit, pct,
				fmt.Sprintf("%s: drawdown on %s is %.1f%% of the max drawdown limit (%.2f of %.2f)",
					label(sev), acct.Name, pct, dd, limit)))
		}
	}

	if limit := money.Value(acct.DailyDrawdownLimit); limit > 0 {
		daily := TodayBasePnL(trades, now)
		if daily < 0 {
			loss := -daily
			pct := loss / limit * 100
			sev, ok := tier(pct, settings.DailyDrawdownWarning, settings.DailyDrawdownDanger, settings.DailyDrawdownCritical)
			if ok {
				out = append(out, newAlert(acct, journal.AlertDailyDrawdown, sev, now, loss, limit, pct,
					fmt.Sprintf("%s: today's loss on %s is %.1f%% of the daily drawdown limit (%.2f of %.2f)",
						label(sev), acct.Name, pct, loss, limit)))
			}
		}
	}

	if acct.IsProp() {
		if target := acct.PhaseTarget(); target > 0 {
			current := money.Value(acct.CurrentPhasePnL)
			pct := current / target * 100
			switch {
			case pct >= 100:
				out = append(out, newAlert(acct, journal.AlertProfitTarget, journal.SeveritySuccess, now, current, target, pct,
					fmt.Sprintf("%s reached its %s profit target (%.2f of %.2f)", acct.Name, phaseName(acct.Phase), current, target)))
			case pct >= settings.ProfitTargetInfo:
				out = append(out, newAlert(acct, journal.AlertProfitTarget, journal.SeverityInfo, now, current, target, pct,
					fmt.Sprintf("%s is at %.1f%% of its %s profit target (%.2f of %.2f)", acct.Name, pct, phaseName(acct.Phase), current, target)))
			}
		}
	}

	return out
}

// TodayBasePnL sums the base P&L of trades whose close timestamp falls on
// the UTC calendar day of now, compared as a date prefix of the stored
// string. Close times are stored in UTC.
func TodayBasePnL(trades []journal.Trade, now time.Time) float64 {
	today := now.UTC().Format("2006-01-02")
	total := 0.0
	for _, t := range trades {
		if strings.HasPrefix(t.CloseDatetime, today) {
			total += t.TotalPnl
		}
	}
	return total
}

// PhasePassed builds the alert raised when prop.Advance moves an account
// to a new phase. ok is false when tr is not a transition.
func PhasePassed(acct journal.Account, tr prop.Transition, now time.Time) (journal.TradingAlert, bool) {
	if !tr.Passed() {
		return journal.TradingAlert{}, false
	}
	msg := fmt.Sprintf("%s passed %s and moved to %s", acct.Name, phaseName(tr.From), phaseName(tr.To))
	return newAlert(acct, journal.AlertPhasePassed, journal.SeveritySuccess, now, tr.TotalPnL, 0, 100, msg), true
}

// tier returns the highest severity whose threshold pct meets. Zero
// thresholds are treated as disabled.
func tier(pct, warning, danger, critical float64) (journal.Severity, bool) {
	switch {
	case critical > 0 && pct >= critical:
		return journal.SeverityCritical, true
	case danger > 0 && pct >= danger:
		return journal.SeverityDanger, true
	case warning > 0 && pct >= warning:
		return journal.SeverityWarning, true
	}
	return "", false
}

func newAlert(acct journal.Account, typ journal.AlertType, sev journal.Severity, now time.Time, current, limit, pct float64, msg string) journal.TradingAlert {
	return journal.TradingAlert{
		ID:           AlertID(acct.ID, typ, now),
		AccountID:    acct.ID,
		Type:         typ,
		Severity:     sev,
		Message:      msg,
		CurrentValue: money.Round2(current),
		LimitValue:   money.Round2(limit),
		Percentage:   money.Round2(pct),
		CreatedAt:    now,
	}
}

// AlertID namespaces an alert by account, kind and detection time in
// milliseconds.
func AlertID(accountID string, typ journal.AlertType, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", accountID, strings.ToLower(string(typ)), at.UnixMilli())
}

func label(sev journal.Severity) string {
	switch sev {
	case journal.SeverityCritical:
		return "Critical"
	case journal.SeverityDanger:
		return "Danger"
	}
	return "Warning"
}

func phaseName(p journal.Phase) string {
	switch p {
	case journal.Phase1:
		return "phase 1"
	case journal.Phase2:
		return "phase 2"
	case journal.PhaseFunded:
		return "funded"
	case journal.PhaseInstant:
		return "instant"
	}
	return string(p)
}
