package stats

import (
	"math"
	"time"

	"github.com/rustyeddy/traidal/journal"
)

// DaysInDrawdown counts whole days, rounded up, since the running equity of
// acct last set a new high. Equity starts at the initial balance and adds the
// base P&L of each trade whose status is CLOSED. The account creation time is
// the first peak. Zero means the account sits at its high.
func DaysInDrawdown(acct journal.Account, trades []journal.Trade, now time.Time) int {
	closed := journal.StatusClosed(trades)

	equity := acct.InitialBalance
	peak := equity
	peakAt := acct.CreatedAt
	if peakAt.IsZero() && len(closed) > 0 {
		peakAt = closed[0].EffectiveTime()
	}

	for _, t := range closed {
		equity += t.TotalPnl
		if equity > peak {
			peak = equity
			peakAt = t.EffectiveTime()
		}
	}

	if equity >= peak || peakAt.IsZero() {
		return 0
	}
	days := math.Ceil(now.Sub(peakAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// DaysActive is the number of whole days elapsed since acct was created.
func DaysActive(acct journal.Account, now time.Time) int {
	if acct.CreatedAt.IsZero() || now.Before(acct.CreatedAt) {
		return 0
	}
	return int(now.Sub(acct.CreatedAt).Hours() / 24)
}
