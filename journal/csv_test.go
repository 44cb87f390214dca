package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	recs, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestCSVExporterHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	x, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)
	assert.NoError(t, x.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 1)
	assert.Equal(t, tradeHeader, trades[0])

	equity := readCSV(t, equityPath)
	require.Len(t, equity, 1)
	assert.Equal(t, []string{"date", "equity"}, equity[0])
}

func TestCSVExporterWriteTrade(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	x, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	require.NoError(t, x.WriteTrade(Trade{
		ID:            "T1",
		AccountID:     "acc-1",
		Pair:          "XAUUSD",
		Direction:     Short,
		Status:        TradeClosed,
		OpenDatetime:  "2024-01-02T03:04:05Z",
		CloseDatetime: "2024-01-02T04:05:06Z",
		EntryPrice:    2050.5,
		StopLoss:      2060,
		TakeProfit:    2030,
		TotalLots:     0.5,
		TotalPnl:      -120,
		Commission:    money.Ptr(-3.5),
		Swap:          money.Ptr(-1),
		RiskReward:    2.16,
		Notes:         "faded the open",
	}))
	require.NoError(t, x.WriteEquity(EquityPoint{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Value: 9875.5}))
	require.NoError(t, x.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 2)
	row := trades[1]
	assert.Equal(t, "T1", row[0])
	assert.Equal(t, "SHORT", row[3])
	assert.Equal(t, "", row[8]) // no exit price
	assert.Equal(t, "-120.00", row[12])
	assert.Equal(t, "-124.50", row[15])
	assert.Equal(t, "faded the open", row[17])

	equity := readCSV(t, equityPath)
	require.Len(t, equity, 2)
	assert.Equal(t, []string{"2024-01-02T00:00:00Z", "9875.50"}, equity[1])
}
