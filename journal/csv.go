package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/traidal/pkg/money"
)

// CSVExporter writes trades and an equity curve to two CSV files.
type CSVExporter struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

var (
	tradeHeader  = []string{"trade_id", "account_id", "pair", "direction", "status", "open_datetime", "close_datetime", "entry_price", "exit_price", "stop_loss", "take_profit", "lots", "pnl", "commission", "swap", "pnl_with_fees", "risk_reward", "notes"}
	equityHeader = []string{"date", "equity"}
)

func NewCSV(tradesPath, equityPath string) (*CSVExporter, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write(tradeHeader); err != nil {
		return nil, err
	}
	if err := ew.Write(equityHeader); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVExporter{tw, ew, tf, ef}, nil
}

func (x *CSVExporter) WriteTrade(t Trade) error {
	exit := ""
	if t.ExitPrice != nil {
		exit = f(*t.ExitPrice)
	}
	err := x.trades.Write([]string{
		t.ID,
		t.AccountID,
		t.Pair,
		string(t.Direction),
		string(t.Status),
		t.OpenDatetime,
		t.CloseDatetime,
		f(t.EntryPrice),
		exit,
		f(t.StopLoss),
		f(t.TakeProfit),
		f(t.TotalLots),
		f2(t.TotalPnl),
		f2(money.Value(t.Commission)),
		f2(money.Value(t.Swap)),
		f2(t.PnLWithFees()),
		f2(t.RiskReward),
		t.Notes,
	})
	if err != nil {
		return err
	}
	x.trades.Flush()
	return x.trades.Error()
}

func (x *CSVExporter) WriteEquity(p EquityPoint) error {
	err := x.equity.Write([]string{
		p.Date.Format(time.RFC3339),
		f2(p.Value),
	})
	if err != nil {
		return err
	}

	x.equity.Flush()
	return x.equity.Error()
}

func (x *CSVExporter) Close() error {
	x.trades.Flush()
	if err := x.trades.Error(); err != nil {
		return err
	}
	x.equity.Flush()
	if err := x.equity.Error(); err != nil {
		return err
	}

	if err := x.tf.Close(); err != nil {
		return err
	}
	if err := x.ef.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func f2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
