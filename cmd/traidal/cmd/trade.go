package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/prop"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and manage trades",
	Long: `Record, close, list and delete trades.

Subcommands:
  add    - Record a trade, open or already closed
  close  - Close an open trade
  list   - List trades
  delete - Delete a trade

Examples:
  traidal trade add --account acc_01HV... --pair EURUSD --dir LONG \
      --entry 1.0850 --sl 1.0820 --tp 1.0920 --lots 1
  traidal trade close trd_01HV... --exit 1.0920 --pnl 700
  traidal trade list --account acc_01HV... --org`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Close an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeClose,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var (
	tradeAccount    string
	tradePair       string
	tradeDirection  string
	tradeOpen       string
	tradeClose      string
	tradeEntry      float64
	tradeExit       float64
	tradeStop       float64
	tradeTarget     float64
	tradeLots       float64
	tradePnL        float64
	tradeCommission float64
	tradeSwap       float64
	tradeRR         float64
	tradeNotes      string
	tradeScreenshot string

	tradeListOrg  bool
	tradeListJSON bool
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeCloseCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	f := tradeAddCmd.Flags()
	f.StringVarP(&tradeAccount, "account", "a", "", "account ID (required)")
	f.StringVarP(&tradePair, "pair", "p", "", "instrument, e.g. EURUSD (required)")
	f.StringVar(&tradeDirection, "dir", "LONG", "LONG or SHORT")
	f.StringVar(&tradeOpen, "open", "", "open time, RFC3339 or \"2006-01-02 15:04\" (default now)")
	f.StringVar(&tradeClose, "close", "", "close time; a closed trade needs --pnl")
	f.Float64Var(&tradeEntry, "entry", 0, "entry price")
	f.Float64Var(&tradeExit, "exit", 0, "exit price")
	f.Float64Var(&tradeStop, "sl", 0, "stop loss")
	f.Float64Var(&tradeTarget, "tp", 0, "take profit")
	f.Float64Var(&tradeLots, "lots", 0, "position size in lots")
	f.Float64Var(&tradePnL, "pnl", 0, "realised P/L before commission and swap")
	f.Float64Var(&tradeCommission, "commission", 0, "commission, negative for a cost")
	f.Float64Var(&tradeSwap, "swap", 0, "swap, negative for a cost")
	f.Float64Var(&tradeRR, "rr", 0, "risk:reward (derived from entry, sl and tp when omitted)")
	f.StringVar(&tradeNotes, "notes", "", "free text notes")
	f.StringVar(&tradeScreenshot, "screenshot", "", "chart screenshot URL")
	tradeAddCmd.MarkFlagRequired("account")
	tradeAddCmd.MarkFlagRequired("pair")

	cf := tradeCloseCmd.Flags()
	cf.Float64Var(&tradeExit, "exit", 0, "exit price")
	cf.Float64Var(&tradePnL, "pnl", 0, "realised P/L before commission and swap (required)")
	cf.StringVar(&tradeClose, "at", "", "close time (default now)")
	tradeCloseCmd.MarkFlagRequired("pnl")

	lf := tradeListCmd.Flags()
	lf.StringVarP(&tradeAccount, "account", "a", "", "only trades of this account")
	lf.BoolVar(&tradeListOrg, "org", false, "print Org-mode entries")
	lf.BoolVar(&tradeListJSON, "json", false, "print JSON")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	opened, err := parseWhen(tradeOpen, time.Local)
	if err != nil {
		return fmt.Errorf("--open: %w", err)
	}
	tr := journal.Trade{
		AccountID:     tradeAccount,
		Pair:          strings.ToUpper(tradePair),
		Direction:     journal.Direction(strings.ToUpper(tradeDirection)),
		OpenDatetime:  opened.UTC().Format(time.RFC3339),
		EntryPrice:    tradeEntry,
		ExitPrice:     optFloat(cmd, "exit", tradeExit),
		StopLoss:      tradeStop,
		TakeProfit:    tradeTarget,
		TotalLots:     tradeLots,
		TotalPnl:      tradePnL,
		Commission:    optFloat(cmd, "commission", tradeCommission),
		Swap:          optFloat(cmd, "swap", tradeSwap),
		RiskReward:    tradeRR,
		ScreenshotURL: tradeScreenshot,
		Notes:         tradeNotes,
	}
	if tr.Direction != journal.Long && tr.Direction != journal.Short {
		return fmt.Errorf("unknown direction %q", tradeDirection)
	}
	if tradeClose != "" {
		closed, err := parseWhen(tradeClose, time.Local)
		if err != nil {
			return fmt.Errorf("--close: %w", err)
		}
		tr.CloseDatetime = closed.UTC().Format(time.RFC3339)
		tr.Status = journal.TradeClosed
	}

	tr, transition, err := t.RecordTrade(cmd.Context(), tr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Recorded trade %s (%s %s, %s)\n", tr.ID, tr.Direction, tr.Pair, tr.Status)
	if tr.RiskReward > 0 {
		fmt.Fprintf(out, "  R:R %.2f\n", tr.RiskReward)
	}
	printTransition(cmd, transition)
	return nil
}

func runTradeClose(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	at, err := parseWhen(tradeClose, time.Local)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}
	tr, transition, err := t.CloseTrade(cmd.Context(), args[0], tradeExit, tradePnL, at)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Closed trade %s at %s, P/L %s\n", tr.ID, tr.CloseDatetime, amount(tr.PnLWithFees()))
	printTransition(cmd, transition)
	return nil
}

func printTransition(cmd *cobra.Command, tr prop.Transition) {
	if !tr.Passed() {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "★ Phase passed: %s → %s (P/L %s)\n", tr.From, tr.To, amount(tr.TotalPnL))
}

func runTradeList(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	trades, err := t.Trades(cmd.Context(), tradeAccount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case tradeListJSON:
		return printJSON(out, trades)
	case tradeListOrg:
		fmt.Fprintln(out, journal.FormatTradesOrg(trades))
		return nil
	case len(trades) == 0:
		fmt.Fprintln(out, "no trades")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tACCOUNT\tPAIR\tDIR\tSTATUS\tOPENED\tCLOSED\tLOTS\tR:R\tP/L")
	for _, tr := range trades {
		closed := tr.CloseDatetime
		if closed == "" {
			closed = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
			tr.ID, tr.AccountID, tr.Pair, tr.Direction, tr.Status,
			tr.OpenDatetime, closed, tr.TotalLots, tr.RiskReward, amount(tr.PnLWithFees()))
	}
	return tw.Flush()
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	if err := t.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}
