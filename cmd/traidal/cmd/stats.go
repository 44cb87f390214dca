package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/rustyeddy/traidal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [account-id]",
	Short: "Show performance statistics",
	Long: `Show win rate, profit factor, drawdown, streaks, expectancy and phase
progress for one account, or for every account followed by portfolio
totals. Pair, weekday and monthly breakdowns follow.

Examples:
  traidal stats
  traidal stats acc_01HV... --year 2024 --pairs 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var (
	statsJSON  bool
	statsPairs int
	statsYear  int
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	statsCmd.Flags().IntVar(&statsPairs, "pairs", 5, "number of pairs in the distribution (0 for all)")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "year of the monthly breakdown (default current year)")
}

type breakdown struct {
	Pairs   []stats.PairCount      `json:"pairs"`
	Weekday [7]stats.WeekdayResult `json:"weekday"`
	Monthly [12]stats.MonthPnL     `json:"monthly"`
	Totals  *stats.Totals          `json:"totals,omitempty"`
	Reports []tracker.Report       `json:"reports"`
}

func runStats(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	accountID := ""
	if len(args) == 1 {
		accountID = args[0]
	}
	reports, err := statsReports(ctx, t, accountID)
	if err != nil {
		return err
	}
	trades, err := t.Trades(ctx, accountID)
	if err != nil {
		return err
	}

	year := statsYear
	if year == 0 {
		year = time.Now().Year()
	}
	b := breakdown{
		Pairs:   stats.PairDistribution(trades, statsPairs),
		Weekday: stats.DayOfWeek(trades),
		Monthly: stats.MonthlyPerformance(trades, year),
		Reports: reports,
	}
	if len(args) == 0 {
		totals := tracker.Portfolio(reports)
		b.Totals = &totals
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		return printJSON(out, b)
	}
	for _, r := range reports {
		printReport(out, r)
	}
	if b.Totals != nil {
		fmt.Fprintf(out, "Portfolio: %d accounts, equity %s, net P/L %s, %d trades, avg win rate %.1f%%\n\n",
			b.Totals.Accounts, amount(b.Totals.Equity), amount(b.Totals.TotalPnl), b.Totals.TotalTrades, b.Totals.AvgWinRate)
	}
	return printBreakdown(out, b, year)
}

// statsReports builds the report of one account, or of all of them when
// accountID is empty.
func statsReports(ctx context.Context, t *tracker.Tracker, accountID string) ([]tracker.Report, error) {
	if accountID == "" {
		return t.Reports(ctx)
	}
	r, err := t.Report(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return []tracker.Report{r}, nil
}

func printReport(w io.Writer, r tracker.Report) {
	s := r.Stats
	fmt.Fprintf(w, "%s (%s) %s\n", r.Account.Name, r.Account.Type, r.Account.ID)
	fmt.Fprintf(w, "  Trades %d, win rate %.1f%%, profit factor %.2f, net P/L %s\n",
		s.TotalTrades, s.WinRate, s.ProfitFactor, amount(s.TotalPnl))
	fmt.Fprintf(w, "  Equity %s, best %s, worst %s, avg R:R %.2f\n",
		amount(s.CurrentEquity), amount(s.BestTrade), amount(s.WorstTrade), s.AvgRiskReward)
	fmt.Fprintf(w, "  Max DD %s (%.2f%%), current DD %s [%s]\n",
		amount(s.MaxDrawdown), r.DrawdownPercent, amount(s.CurrentDrawdown), r.Drawdown.Level)
	fmt.Fprintf(w, "  Streak %d %s, best win %d, worst loss %d\n",
		r.Streaks.Current, r.Streaks.CurrentType, r.Streaks.BestWinStreak, r.Streaks.WorstLossStreak)
	fmt.Fprintf(w, "  Expectancy %s, active %d days, in drawdown %d days\n",
		amount(r.Expectancy), r.DaysActive, r.DaysInDrawdown)
	if p := r.Progress; p != nil {
		fmt.Fprintf(w, "  %s: %s of %s (%.1f%%) %s\n",
			p.Phase, amount(p.Current), amount(p.Target), p.Percent, r.PhaseStatus)
	}
	fmt.Fprintln(w)
}

func printBreakdown(w io.Writer, b breakdown, year int) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "PAIR\tTRADES")
	for _, p := range b.Pairs {
		fmt.Fprintf(tw, "%s\t%d\n", p.Pair, p.Count)
	}
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "DAY\tWINS\tLOSSES")
	for _, d := range b.Weekday {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", d.Day.String()[:3], d.Wins, d.Losses)
	}
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "%d\tP/L\n", year)
	for _, m := range b.Monthly {
		fmt.Fprintf(tw, "%s\t%s\n", m.Month.String()[:3], amount(m.PnL))
	}
	return tw.Flush()
}
