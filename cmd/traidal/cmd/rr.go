package cmd

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/risk"
	"github.com/spf13/cobra"
)

var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "Compute the risk:reward ratio of a trade plan",
	Long: `Compute reward over risk from entry, stop loss and take profit.

Example:
  traidal rr --entry 1.0850 --sl 1.0820 --tp 1.0920`,
	Args: cobra.NoArgs,
	RunE: runRR,
}

var (
	rrEntry float64
	rrStop  float64
	rrTP    float64
	rrDir   string
)

func init() {
	rootCmd.AddCommand(rrCmd)

	rrCmd.Flags().Float64Var(&rrEntry, "entry", 0, "entry price")
	rrCmd.Flags().Float64Var(&rrStop, "sl", 0, "stop loss")
	rrCmd.Flags().Float64Var(&rrTP, "tp", 0, "take profit")
	rrCmd.Flags().StringVar(&rrDir, "dir", "LONG", "LONG or SHORT")
	rrCmd.MarkFlagRequired("entry")
	rrCmd.MarkFlagRequired("sl")
	rrCmd.MarkFlagRequired("tp")
}

func runRR(cmd *cobra.Command, args []string) error {
	ratio := risk.RR(rrEntry, rrStop, rrTP, journal.Direction(strings.ToUpper(rrDir)))
	if ratio == 0 {
		return fmt.Errorf("no risk: stop loss equals entry or a price is zero")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "R:R 1:%.2f\n", ratio)
	return nil
}
