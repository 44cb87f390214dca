package cmd

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/traidal/alerts"
	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Detect and manage drawdown and profit target alerts",
	Long: `Run alert detection and manage the stored alerts.

Subcommands:
  refresh - Detect alerts for every account and store them
  list    - List stored alerts, newest first
  read    - Mark one alert, or all of them, as read
  dismiss - Delete an alert

Examples:
  traidal alerts refresh
  traidal alerts list --unread
  traidal alerts read --all`,
}

var alertsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Detect alerts for every account",
	Args:  cobra.NoArgs,
	RunE:  runAlertsRefresh,
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored alerts",
	Args:  cobra.NoArgs,
	RunE:  runAlertsList,
}

var alertsReadCmd = &cobra.Command{
	Use:   "read [alert-id]",
	Short: "Mark alerts as read",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAlertsRead,
}

var alertsDismissCmd = &cobra.Command{
	Use:   "dismiss <alert-id>",
	Short: "Delete an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsDismiss,
}

var (
	alertsUnread  bool
	alertsJSON    bool
	alertsReadAll bool
)

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsRefreshCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsReadCmd)
	alertsCmd.AddCommand(alertsDismissCmd)

	alertsListCmd.Flags().BoolVarP(&alertsUnread, "unread", "u", false, "only unread alerts")
	alertsListCmd.Flags().BoolVar(&alertsJSON, "json", false, "print JSON")
	alertsReadCmd.Flags().BoolVar(&alertsReadAll, "all", false, "mark every alert as read")
}

func runAlertsRefresh(cmd *cobra.Command, args []string) error {
	notifier, err := buildNotifier()
	if err != nil {
		return err
	}
	t, done, err := openTracker(tracker.WithNotifier(notifier))
	if err != nil {
		return err
	}
	defer done()

	res, err := t.RefreshAlerts(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %d alerts, %d new, %d removed, %d unread\n",
		len(res.Alerts), len(res.Added), len(res.Removed), alerts.UnreadCount(res.Alerts))
	for _, a := range res.Added {
		fmt.Fprintf(out, "  [%s] %s\n", a.Severity, a.Message)
	}
	return nil
}

func runAlertsList(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	list, err := t.Alerts(cmd.Context())
	if err != nil {
		return err
	}
	if alertsUnread {
		unread := list[:0]
		for _, a := range list {
			if !a.IsRead {
				unread = append(unread, a)
			}
		}
		list = unread
	}

	out := cmd.OutOrStdout()
	if alertsJSON {
		return printJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "no alerts")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, " \tID\tSEVERITY\tTYPE\tCREATED\tMESSAGE")
	for _, a := range list {
		mark := "•"
		if a.IsRead {
			mark = " "
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, a.ID, a.Severity, a.Type, a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Message)
	}
	return tw.Flush()
}

func runAlertsRead(cmd *cobra.Command, args []string) error {
	if alertsReadAll == (len(args) == 1) {
		return errors.New("give an alert ID or --all")
	}

	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	if alertsReadAll {
		n, err := t.MarkAllRead(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Marked %d alerts as read\n", n)
		return nil
	}

	if err := t.MarkRead(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Marked %s as read\n", args[0])
	return nil
}

func runAlertsDismiss(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	if err := t.Dismiss(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Dismissed %s\n", args[0])
	return nil
}

// buildNotifier assembles the notification channels named in the config.
func buildNotifier() (alerts.Notifier, error) {
	svc := alerts.NewService(logger)
	if cfg.Notify.Log {
		svc.Add(alerts.LogNotifier{Logger: logger})
	}
	if cfg.Notify.WebhookURL != "" {
		timeout, err := cfg.Notify.WebhookTimeout()
		if err != nil {
			return nil, err
		}
		hook, err := alerts.NewWebhookNotifier(cfg.Notify.WebhookURL, timeout)
		if err != nil {
			return nil, fmt.Errorf("webhook: %w", err)
		}
		svc.Add(hook)
	}
	return svc, nil
}
