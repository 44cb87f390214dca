package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/rustyeddy/traidal/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades and reports",
	Long: `Export the journal to other formats.

Subcommands:
  csv - Trades and the equity curve of one account as CSV
  org - Account reports, optionally with every trade, as an Org-mode document

Examples:
  traidal export csv --account acc_01HV... --trades trades.csv --equity equity.csv
  traidal export org --trades -o journal.org`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export trades and the equity curve as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExportCSV,
}

var exportOrgCmd = &cobra.Command{
	Use:   "org",
	Short: "Export reports as an Org-mode document",
	Args:  cobra.NoArgs,
	RunE:  runExportOrg,
}

var (
	exportAccount    string
	exportTradesPath string
	exportEquityPath string
	exportOutput     string
	exportWithTrades bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportOrgCmd)

	exportCmd.PersistentFlags().StringVarP(&exportAccount, "account", "a", "", "account ID")

	exportCSVCmd.Flags().StringVar(&exportTradesPath, "trades", "trades.csv", "trades CSV path")
	exportCSVCmd.Flags().StringVar(&exportEquityPath, "equity", "equity.csv", "equity curve CSV path")

	exportOrgCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportOrgCmd.Flags().BoolVar(&exportWithTrades, "trades", false, "append every trade")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	if exportAccount == "" {
		return fmt.Errorf("--account is required")
	}
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	r, err := t.Report(ctx, exportAccount)
	if err != nil {
		return err
	}
	trades, err := t.Trades(ctx, exportAccount)
	if err != nil {
		return err
	}

	x, err := journal.NewCSV(exportTradesPath, exportEquityPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	for _, tr := range trades {
		if err := x.WriteTrade(tr); err != nil {
			x.Close()
			return fmt.Errorf("write trade: %w", err)
		}
	}
	for _, p := range r.Stats.EquityCurve {
		if err := x.WriteEquity(p); err != nil {
			x.Close()
			return fmt.Errorf("write equity: %w", err)
		}
	}
	if err := x.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d trades to %s and %d equity points to %s\n",
		len(trades), exportTradesPath, len(r.Stats.EquityCurve), exportEquityPath)
	return nil
}

func runExportOrg(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	var reports []tracker.Report
	if exportAccount != "" {
		r, err := t.Report(ctx, exportAccount)
		if err != nil {
			return err
		}
		reports = []tracker.Report{r}
	} else if reports, err = t.Reports(ctx); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := tracker.WriteOrg(w, reports); err != nil {
		return err
	}
	if !exportWithTrades {
		return nil
	}
	trades, err := t.Trades(ctx, exportAccount)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n* TRADES\n%s\n", journal.FormatTradesOrg(trades))
	return err
}
