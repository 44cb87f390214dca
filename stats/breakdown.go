package stats

import (
	"sort"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// PairCount is how many trades were taken on one instrument.
type PairCount struct {
	Pair  string `json:"pair"`
	Count int    `json:"count"`
}

// PairDistribution counts trades per pair, most traded first with ties by
// name. n limits the result; n <= 0 returns every pair.
func PairDistribution(trades []journal.Trade, n int) []PairCount {
	counts := make(map[string]int)
	for _, t := range trades {
		counts[t.Pair]++
	}
	out := make([]PairCount, 0, len(counts))
	for pair, c := range counts {
		out = append(out, PairCount{Pair: pair, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pair < out[j].Pair
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type WeekdayResult struct {
	Day    time.Weekday `json:"day"`
	Wins   int          `json:"wins"`
	Losses int          `json:"losses"`
}

// DayOfWeek tallies wins and losses by the weekday a trade was opened,
// Sunday first. Only trades with a non-zero base P&L count.
func DayOfWeek(trades []journal.Trade) [7]WeekdayResult {
	var out [7]WeekdayResult
	for i := range out {
		out[i].Day = time.Weekday(i)
	}
	for _, t := range trades {
		at, ok := t.OpenTime()
		if !ok {
			continue
		}
		switch {
		case t.TotalPnl > 0:
			out[at.Weekday()].Wins++
		case t.TotalPnl < 0:
			out[at.Weekday()].Losses++
		}
	}
	return out
}

type MonthPnL struct {
	Month time.Month `json:"month"`
	PnL   float64    `json:"pnl"`
}

// MonthlyPerformance sums base P&L per month of year, keyed by each trade's
// effective time.
func MonthlyPerformance(trades []journal.Trade, year int) [12]MonthPnL {
	var sums [12]float64
	for _, t := range trades {
		at := t.EffectiveTime()
		if at.IsZero() || at.Year() != year {
			continue
		}
		sums[at.Month()-1] += t.TotalPnl
	}
	var out [12]MonthPnL
	for i, v := range sums {
		out[i] = MonthPnL{Month: time.Month(i + 1), PnL: money.Round2(v)}
	}
	return out
}
