package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/traidal/stats"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show daily P/L for a month",
	Long: `Bucket closed trades by the day they closed, fees included, and
summarise the month.

Examples:
  traidal calendar
  traidal calendar --month 2024-03 --account acc_01HV... --tz Europe/London`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var (
	calendarAccount string
	calendarMonth   string
	calendarTZ      string
	calendarJSON    bool
)

func init() {
	rootCmd.AddCommand(calendarCmd)

	calendarCmd.Flags().StringVarP(&calendarAccount, "account", "a", "", "only trades of this account")
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month as YYYY-MM (default current month)")
	calendarCmd.Flags().StringVar(&calendarTZ, "tz", "Local", "time zone the days are cut in")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "print JSON")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	loc, err := time.LoadLocation(calendarTZ)
	if err != nil {
		return fmt.Errorf("--tz: %w", err)
	}
	month := time.Now().In(loc)
	if calendarMonth != "" {
		month, err = time.ParseInLocation("2006-01", calendarMonth, loc)
		if err != nil {
			return fmt.Errorf("--month: %w", err)
		}
	}

	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	days, err := t.Calendar(cmd.Context(), calendarAccount, loc)
	if err != nil {
		return err
	}
	summary := stats.MonthlySummary(days, month.Year(), month.Month())

	var inMonth []stats.DayPnL
	prefix := month.Format("2006-01")
	for _, d := range stats.Days(days) {
		if d.Date[:7] == prefix {
			inMonth = append(inMonth, d)
		}
	}

	out := cmd.OutOrStdout()
	if calendarJSON {
		return printJSON(out, struct {
			Days    []stats.DayPnL     `json:"days"`
			Summary stats.MonthSummary `json:"summary"`
		}{inMonth, summary})
	}

	fmt.Fprintf(out, "%s %d\n", month.Month(), month.Year())
	tw := newTable(out)
	fmt.Fprintln(tw, "DATE\tTRADES\tP/L")
	for _, d := range inMonth {
		day, _ := time.Parse("2006-01-02", d.Date)
		fmt.Fprintf(tw, "%s %s\t%d\t%s\n", d.Date, day.Weekday().String()[:3], len(d.Trades), amount(d.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nNet %s over %d trades, %d active days (%d up, %d down), %.1f%% green days\n",
		amount(summary.TotalPnl), summary.Trades, summary.ActiveDays,
		summary.ProfitableDays, summary.LosingDays, summary.WinRate)
	return nil
}
