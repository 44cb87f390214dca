package stats

import (
	"testing"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/stretchr/testify/assert"
)

func TestPairDistribution(t *testing.T) {
	t.Parallel()

	var trades []journal.Trade
	for _, p := range []string{"GBPUSD", "EURUSD", "XAUUSD", "EURUSD", "GBPUSD", "EURUSD", "USDJPY"} {
		trades = append(trades, journal.Trade{Pair: p})
	}

	got := PairDistribution(trades, 3)
	assert.Equal(t, []PairCount{
		{Pair: "EURUSD", Count: 3},
		{Pair: "GBPUSD", Count: 2},
		{Pair: "USDJPY", Count: 1},
	}, got)

	assert.Len(t, PairDistribution(trades, 0), 4)
	assert.Empty(t, PairDistribution(nil, 5))
}

func TestDayOfWeek(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		{OpenDatetime: "2024-03-15T10:00:00Z", TotalPnl: 50},
		{OpenDatetime: "2024-03-15T14:00:00Z", TotalPnl: -20},
		{OpenDatetime: "2024-03-18T09:00:00Z", TotalPnl: 10},
		{OpenDatetime: "2024-03-18T09:00:00Z", TotalPnl: 0},
		{OpenDatetime: "garbage", TotalPnl: 10},
	}

	got := DayOfWeek(trades)
	assert.Equal(t, WeekdayResult{Day: time.Friday, Wins: 1, Losses: 1}, got[time.Friday])
	assert.Equal(t, WeekdayResult{Day: time.Monday, Wins: 1}, got[time.Monday])
	assert.Equal(t, WeekdayResult{Day: time.Sunday}, got[time.Sunday])
}

func TestMonthlyPerformance(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		closed("t1", "2024-01-10T10:00:00Z", 100),
		closed("t2", "2024-01-20T10:00:00Z", -30.5),
		closed("t3", "2024-05-02T10:00:00Z", 12),
		closed("t4", "2023-05-02T10:00:00Z", 1000),
		{ID: "t5", OpenDatetime: "2024-07-01T10:00:00Z", TotalPnl: 7},
	}

	got := MonthlyPerformance(trades, 2024)
	assert.Equal(t, MonthPnL{Month: time.January, PnL: 69.5}, got[0])
	assert.Equal(t, 12.0, got[4].PnL)
	assert.Equal(t, 7.0, got[6].PnL)
	assert.Equal(t, time.December, got[11].Month)
	assert.Zero(t, got[11].PnL)
}
