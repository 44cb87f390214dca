// Package risk derives risk figures from prices and drawdown limits.
package risk

import (
	"math"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// RR returns the planned reward-to-risk ratio rounded to two decimals.
// Direction is accepted for the caller's convenience; the ratio compares
// distances only. A zero price or a stop equal to the entry yields 0.
func RR(entry, stop, takeProfit float64, _ journal.Direction) float64 {
	if entry == 0 || stop == 0 || takeProfit == 0 {
		return 0
	}

	risk := math.Abs(entry - stop)
	reward := math.Abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return money.Round2(reward / risk)
}
