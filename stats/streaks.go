package stats

import "github.com/rustyeddy/traidal/journal"

// StreakType labels the run a streak belongs to.
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakNone StreakType = "none"
)

// Streaks records consecutive win and loss runs.
type Streaks struct {
	Current         int        `json:"currentStreak"`
	CurrentType     StreakType `json:"currentStreakType"`
	BestWinStreak   int        `json:"bestWinStreak"`
	WorstLossStreak int        `json:"worstLossStreak"`
}

// ComputeStreaks walks the trades whose status is CLOSED in chronological
// order. A trade wins when its base P&L, fees excluded, is positive; a
// break-even trade counts as a loss.
func ComputeStreaks(trades []journal.Trade) Streaks {
	closed := journal.StatusClosed(trades)
	if len(closed) == 0 {
		return Streaks{CurrentType: StreakNone}
	}

	var s Streaks
	run := 0
	kind := StreakNone
	record := func() {
		switch kind {
		case StreakWin:
			s.BestWinStreak = max(s.BestWinStreak, run)
		case StreakLoss:
			s.WorstLossStreak = max(s.WorstLossStreak, run)
		}
	}

	for _, t := range closed {
		k := StreakLoss
		if t.TotalPnl > 0 {
			k = StreakWin
		}
		if k != kind {
			record()
			kind = k
			run = 0
		}
		run++
	}
	record()

	s.Current = run
	s.CurrentType = kind
	return s
}
