package stats

import (
	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// ComputeExpectancy returns the expected base P&L per trade over the trades
// whose status is CLOSED:
//
//	winRate*avgWin - (1-winRate)*avgLoss
//
// avgLoss is a magnitude. Break-even trades count toward the loss rate but
// not toward avgLoss.
func ComputeExpectancy(trades []journal.Trade) float64 {
	closed := journal.StatusClosed(trades)
	if len(closed) == 0 {
		return 0
	}

	var (
		wins, losses    int
		sumWin, sumLoss float64
	)
	for _, t := range closed {
		switch {
		case t.TotalPnl > 0:
			wins++
			sumWin += t.TotalPnl
		case t.TotalPnl < 0:
			losses++
			sumLoss -= t.TotalPnl
		}
	}

	var avgWin, avgLoss float64
	if wins > 0 {
		avgWin = sumWin / float64(wins)
	}
	if losses > 0 {
		avgLoss = sumLoss / float64(losses)
	}
	winRate := float64(wins) / float64(len(closed))
	return money.Round2(winRate*avgWin - (1-winRate)*avgLoss)
}
