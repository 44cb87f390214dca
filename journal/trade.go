package journal

import (
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/traidal/pkg/money"
)

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

type TradeStatus string

const (
	TradeOpen   TradeStatus = "OPEN"
	TradeClosed TradeStatus = "CLOSED"
)

// Trade is a single position belonging to exactly one account.
// Timestamps are kept as entered; they may be empty or unparsable and
// every consumer must tolerate that.
type Trade struct {
	ID            string         `json:"id"`
	AccountID     string         `json:"accountId"`
	Pair          string         `json:"pair"`
	Direction     Direction      `json:"direction"`
	OpenDatetime  string         `json:"openDatetime"`
	CloseDatetime string         `json:"closeDatetime,omitempty"`
	EntryPrice    float64        `json:"entryPrice"`
	ExitPrice     *float64       `json:"exitPrice,omitempty"`
	StopLoss      float64        `json:"stopLoss"`
	TakeProfit    float64        `json:"takeProfit"`
	TotalLots     float64        `json:"totalLots"`
	TotalPnl      float64        `json:"totalPnl"` // excludes commission and swap
	Commission    *float64       `json:"commission,omitempty"`
	Swap          *float64       `json:"swap,omitempty"`
	RiskReward    float64        `json:"riskReward"`
	ScreenshotURL string         `json:"screenshotUrl,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Status        TradeStatus    `json:"status"`
	Partials      []PartialClose `json:"partials"`
}

// PartialClose is a partial exit of a trade.
type PartialClose struct {
	ID            string  `json:"id"`
	TradeID       string  `json:"tradeId"`
	CloseNumber   int     `json:"closeNumber"`
	CloseDatetime string  `json:"closeDatetime"`
	ExitPrice     float64 `json:"exitPrice"`
	LotsClosed    float64 `json:"lotsClosed"`
	PnL           float64 `json:"pnl"`
}

// Validate reports structurally invalid trades.
func (t Trade) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.AccountID == "" {
		return ErrMissingAccountID
	}
	return nil
}

// PnLWithFees is the base P&L plus commission and swap.
func (t Trade) PnLWithFees() float64 {
	return t.TotalPnl + money.Value(t.Commission) + money.Value(t.Swap)
}

// CloseTime parses the close timestamp. ok is false when it is empty or
// not a recognisable date.
func (t Trade) CloseTime() (time.Time, bool) {
	return ParseTime(t.CloseDatetime)
}

func (t Trade) OpenTime() (time.Time, bool) {
	return ParseTime(t.OpenDatetime)
}

// HasValidClose reports whether the close timestamp is set and parses.
func (t Trade) HasValidClose() bool {
	_, ok := t.CloseTime()
	return ok
}

// IsClosed treats a trade as closed when either its status says so or it
// carries a valid close timestamp.
func (t Trade) IsClosed() bool {
	return t.Status == TradeClosed || t.HasValidClose()
}

// EffectiveTime is the close time when valid, else the open time. Trades
// with neither yield the zero time.
func (t Trade) EffectiveTime() time.Time {
	if ct, ok := t.CloseTime(); ok {
		return ct
	}
	ot, _ := t.OpenTime()
	return ot
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts the timestamp shapes the journal stores. Values
// without a zone are read as UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ClosedTrades returns the trades IsClosed accepts, each at most once,
// sorted ascending by effective time.
func ClosedTrades(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	SortByEffectiveTime(out)
	return out
}

// StatusClosed returns the trades whose status is CLOSED, sorted ascending
// by effective time. The close timestamp alone does not qualify a trade.
func StatusClosed(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Status == TradeClosed {
			out = append(out, t)
		}
	}
	SortByEffectiveTime(out)
	return out
}

// SortByEffectiveTime sorts in place; ties keep their input order.
func SortByEffectiveTime(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EffectiveTime().Before(trades[j].EffectiveTime())
	})
}

// ForAccount filters trades owned by accountID.
func ForAccount(trades []Trade, accountID string) []Trade {
	var out []Trade
	for _, t := range trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}
