package cmd

import (
	"fmt"

	"github.com/rustyeddy/traidal/config"
	"github.com/rustyeddy/traidal/journal"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change alert thresholds",
	Long: `Alert thresholds are percentages of the drawdown limit (or profit
target) of each account. Until settings are saved the defaults from the
configuration file apply.

Examples:
  traidal settings show
  traidal settings set --max-dd-critical 95 --notifications=false`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the alert settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change alert settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var (
	setMaxWarning, setMaxDanger, setMaxCritical       float64
	setDailyWarning, setDailyDanger, setDailyCritical float64
	setProfitInfo                                     float64
	setSounds, setNotifications                       bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	f := settingsSetCmd.Flags()
	f.Float64Var(&setMaxWarning, "max-dd-warning", 0, "max drawdown warning threshold (%)")
	f.Float64Var(&setMaxDanger, "max-dd-danger", 0, "max drawdown danger threshold (%)")
	f.Float64Var(&setMaxCritical, "max-dd-critical", 0, "max drawdown critical threshold (%)")
	f.Float64Var(&setDailyWarning, "daily-dd-warning", 0, "daily drawdown warning threshold (%)")
	f.Float64Var(&setDailyDanger, "daily-dd-danger", 0, "daily drawdown danger threshold (%)")
	f.Float64Var(&setDailyCritical, "daily-dd-critical", 0, "daily drawdown critical threshold (%)")
	f.Float64Var(&setProfitInfo, "profit-info", 0, "profit target progress that raises an info alert (%)")
	f.BoolVar(&setSounds, "sounds", true, "enable alert sounds")
	f.BoolVar(&setNotifications, "notifications", true, "enable notifications")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	s, err := t.Settings(cmd.Context())
	if err != nil {
		return err
	}
	printSettings(cmd, s)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	s, err := t.Settings(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*float64{
		"max-dd-warning":    &s.MaxDrawdownWarning,
		"max-dd-danger":     &s.MaxDrawdownDanger,
		"max-dd-critical":   &s.MaxDrawdownCritical,
		"daily-dd-warning":  &s.DailyDrawdownWarning,
		"daily-dd-danger":   &s.DailyDrawdownDanger,
		"daily-dd-critical": &s.DailyDrawdownCritical,
		"profit-info":       &s.ProfitTargetInfo,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = v
		}
	}
	if flags.Changed("sounds") {
		s.EnableSounds = setSounds
	}
	if flags.Changed("notifications") {
		s.EnableNotifications = setNotifications
	}

	if err := config.ValidateSettings(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := t.SaveSettings(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved alert settings")
	printSettings(cmd, s)
	return nil
}

func printSettings(cmd *cobra.Command, s journal.AlertSettings) {
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "\tWARNING\tDANGER\tCRITICAL")
	fmt.Fprintf(tw, "Max drawdown\t%.0f%%\t%.0f%%\t%.0f%%\n", s.MaxDrawdownWarning, s.MaxDrawdownDanger, s.MaxDrawdownCritical)
	fmt.Fprintf(tw, "Daily drawdown\t%.0f%%\t%.0f%%\t%.0f%%\n", s.DailyDrawdownWarning, s.DailyDrawdownDanger, s.DailyDrawdownCritical)
	tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "Profit target info at %.0f%%, sounds %t, notifications %t\n",
		s.ProfitTargetInfo, s.EnableSounds, s.EnableNotifications)
}
