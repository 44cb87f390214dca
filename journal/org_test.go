package journal

import (
	"strings"
	"testing"

	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := Trade{
		ID:            "trade-12345678-abcd",
		AccountID:     "acc-1",
		Pair:          "EURUSD",
		Direction:     Long,
		Status:        TradeClosed,
		OpenDatetime:  "2024-03-15T10:30:45Z",
		CloseDatetime: "2024-03-15T14:20:30Z",
		EntryPrice:    1.08500,
		ExitPrice:     money.Ptr(1.08750),
		StopLoss:      1.08300,
		TakeProfit:    1.09000,
		TotalLots:     1,
		TotalPnl:      250.00,
		Commission:    money.Ptr(-7),
		RiskReward:    2.5,
		Notes:         "trend-following",
	}

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** Trade: EURUSD LONG (trade-12)")

	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: trade-12345678-abcd")
	assert.Contains(t, result, ":ACCOUNT_ID: acc-1")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.08500")
	assert.Contains(t, result, ":EXIT_PRICE: 1.08750")
	assert.Contains(t, result, ":OPEN_TIME: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":CLOSE_TIME: 2024-03-15T14:20:30Z")
	assert.Contains(t, result, ":PNL: 250.00")
	assert.Contains(t, result, ":PNL_WITH_FEES: 243.00")
	assert.Contains(t, result, ":RISK_REWARD: 2.50")
	assert.Contains(t, result, ":END:")

	assert.Contains(t, result, "*** Thesis")
	assert.Contains(t, result, "*** Execution")
	assert.Contains(t, result, "*** Review\n- trend-following")
}

func TestFormatTradeOrgOpenTrade(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Trade{ID: "short", Pair: "GBPUSD", Direction: Short, Status: TradeOpen, OpenDatetime: "2024-03-15T10:30:45Z"})
	assert.Contains(t, result, "** Trade: GBPUSD SHORT (short)")
	assert.NotContains(t, result, ":EXIT_PRICE:")
	assert.NotContains(t, result, ":CLOSE_TIME:")
}

func TestFormatTradeOrgPartials(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Trade{
		ID:   "p",
		Pair: "US100",
		Partials: []PartialClose{
			{CloseNumber: 1, LotsClosed: 0.5, ExitPrice: 18000, PnL: 120, CloseDatetime: "2024-03-15T11:00:00Z"},
		},
	})
	assert.Contains(t, result, ":PARTIALS: 1")
	assert.Contains(t, result, "- partial 1: 0.50 lots @ 18000.00000 (120.00) 2024-03-15T11:00:00Z")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{ID: "trade-001", Pair: "EURUSD"},
		{ID: "trade-002", Pair: "GBPUSD"},
	}

	result := FormatTradesOrg(trades)
	assert.Contains(t, result, "trade-001")
	assert.Contains(t, result, "trade-002")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID gets truncated", "trade-12345678-abcdef", "trade-12"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}
