package stats

import (
	"sort"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

const dayLayout = "2006-01-02"

// DayTrade is one closed trade listed under a calendar day.
type DayTrade struct {
	ID        string  `json:"id"`
	AccountID string  `json:"accountId"`
	Pair      string  `json:"pair"`
	PnL       float64 `json:"pnl"`
}

// DayPnL aggregates the closed trades that landed on one calendar day.
type DayPnL struct {
	Date      string             `json:"date"`
	Total     float64            `json:"total"`
	ByAccount map[string]float64 `json:"byAccount"`
	Trades    []DayTrade         `json:"trades"`
}

// DailyPnL buckets closed trades (status CLOSED or a valid close time) by
// the day they closed in loc, falling back to the open day. Amounts include
// fees. Trades with no usable timestamp are skipped. A nil loc means UTC.
func DailyPnL(trades []journal.Trade, loc *time.Location) map[string]DayPnL {
	if loc == nil {
		loc = time.UTC
	}
	days := make(map[string]DayPnL)
	for _, t := range journal.ClosedTrades(trades) {
		at := t.EffectiveTime()
		if at.IsZero() {
			continue
		}
		key := at.In(loc).Format(dayLayout)
		d, ok := days[key]
		if !ok {
			d = DayPnL{Date: key, ByAccount: make(map[string]float64)}
		}
		pnl := t.PnLWithFees()
		d.Total += pnl
		d.ByAccount[t.AccountID] += pnl
		d.Trades = append(d.Trades, DayTrade{ID: t.ID, AccountID: t.AccountID, Pair: t.Pair, PnL: money.Round2(pnl)})
		days[key] = d
	}
	for k, d := range days {
		d.Total = money.Round2(d.Total)
		for acct, v := range d.ByAccount {
			d.ByAccount[acct] = money.Round2(v)
		}
		days[k] = d
	}
	return days
}

// Days returns the buckets ordered by date.
func Days(days map[string]DayPnL) []DayPnL {
	out := make([]DayPnL, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthSummary rolls a month of DayPnL buckets up. WinRate is the share of
// active days that finished positive.
type MonthSummary struct {
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	TotalPnl       float64    `json:"totalPnl"`
	Trades         int        `json:"trades"`
	ActiveDays     int        `json:"activeDays"`
	ProfitableDays int        `json:"profitableDays"`
	LosingDays     int        `json:"losingDays"`
	WinRate        float64    `json:"winRate"`
}

func MonthlySummary(days map[string]DayPnL, year int, month time.Month) MonthSummary {
	s := MonthSummary{Year: year, Month: month}
	var total float64
	for key, d := range days {
		at, err := time.Parse(dayLayout, key)
		if err != nil || at.Year() != year || at.Month() != month {
			continue
		}
		s.ActiveDays++
		s.Trades += len(d.Trades)
		total += d.Total
		switch {
		case d.Total > 0:
			s.ProfitableDays++
		case d.Total < 0:
			s.LosingDays++
		}
	}
	s.TotalPnl = money.Round2(total)
	if s.ActiveDays > 0 {
		s.WinRate = money.Round2(float64(s.ProfitableDays) / float64(s.ActiveDays) * 100)
	}
	return s
}
