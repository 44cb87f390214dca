package cmd

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/traidal/internal/tracker"
	"github.com/rustyeddy/traidal/journal"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage trading accounts",
	Long: `Create, list, inspect and delete trading accounts.

Subcommands:
  add    - Create an account
  list   - List accounts with their equity and P/L
  show   - Show the full report of one account
  delete - Delete an account with its trades and alerts

Examples:
  traidal account add --name "FTMO 100k" --type PROP --balance 100000 \
      --challenge TWO_PHASE --max-dd 10000 --daily-dd 5000 --p1-pct 10 --p2-pct 5
  traidal account list
  traidal account show acc_01HV...`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountShowCmd = &cobra.Command{
	Use:   "show <account-id>",
	Short: "Show the report of one account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountShow,
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete an account with its trades and alerts",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountDelete,
}

var (
	accountName      string
	accountType      string
	accountBroker    string
	accountCurrency  string
	accountBalance   float64
	accountChallenge string
	accountPhase     string

	accountCost, accountSplit         float64
	accountMaxDD, accountDailyDD      float64
	accountP1Target, accountP1Pct     float64
	accountP2Target, accountP2Pct     float64
	accountFundTarget, accountFundPct float64

	accountJSON bool
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountDeleteCmd)

	f := accountAddCmd.Flags()
	f.StringVarP(&accountName, "name", "n", "", "account name (required)")
	f.StringVarP(&accountType, "type", "t", "REAL", "REAL, DEMO, PROP or FUNDED")
	f.StringVar(&accountBroker, "broker", "", "broker or prop firm")
	f.StringVar(&accountCurrency, "currency", "USD", "account currency")
	f.Float64VarP(&accountBalance, "balance", "b", 0, "initial balance (required)")
	f.StringVar(&accountChallenge, "challenge", "", "ONE_PHASE, TWO_PHASE or INSTANT (PROP only)")
	f.StringVar(&accountPhase, "phase", "", "starting phase (PROP only, default PHASE_1)")
	f.Float64Var(&accountCost, "cost", 0, "challenge cost")
	f.Float64Var(&accountSplit, "split", 0, "profit split percent")
	f.Float64Var(&accountMaxDD, "max-dd", 0, "max drawdown limit")
	f.Float64Var(&accountDailyDD, "daily-dd", 0, "daily drawdown limit")
	f.Float64Var(&accountP1Target, "p1-target", 0, "phase 1 profit target")
	f.Float64Var(&accountP1Pct, "p1-pct", 0, "phase 1 profit target in percent of balance")
	f.Float64Var(&accountP2Target, "p2-target", 0, "phase 2 profit target")
	f.Float64Var(&accountP2Pct, "p2-pct", 0, "phase 2 profit target in percent of balance")
	f.Float64Var(&accountFundTarget, "funded-target", 0, "funded profit target")
	f.Float64Var(&accountFundPct, "funded-pct", 0, "funded profit target in percent of balance")
	accountAddCmd.MarkFlagRequired("name")
	accountAddCmd.MarkFlagRequired("balance")

	accountListCmd.Flags().BoolVar(&accountJSON, "json", false, "print JSON")
	accountShowCmd.Flags().BoolVar(&accountJSON, "json", false, "print JSON")
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	a := journal.Account{
		Name:           accountName,
		Type:           journal.AccountType(strings.ToUpper(accountType)),
		Broker:         accountBroker,
		Currency:       strings.ToUpper(accountCurrency),
		InitialBalance: accountBalance,
		ChallengeType:  journal.ChallengeType(strings.ToUpper(accountChallenge)),
		Phase:          journal.Phase(strings.ToUpper(accountPhase)),

		ChallengeCost:             optFloat(cmd, "cost", accountCost),
		ProfitSplitPercent:        optFloat(cmd, "split", accountSplit),
		MaxDrawdownLimit:          optFloat(cmd, "max-dd", accountMaxDD),
		DailyDrawdownLimit:        optFloat(cmd, "daily-dd", accountDailyDD),
		Phase1ProfitTarget:        optFloat(cmd, "p1-target", accountP1Target),
		Phase1ProfitTargetPercent: optFloat(cmd, "p1-pct", accountP1Pct),
		Phase2ProfitTarget:        optFloat(cmd, "p2-target", accountP2Target),
		Phase2ProfitTargetPercent: optFloat(cmd, "p2-pct", accountP2Pct),
		FundedProfitTarget:        optFloat(cmd, "funded-target", accountFundTarget),
		FundedProfitTargetPercent: optFloat(cmd, "funded-pct", accountFundPct),
	}
	switch a.Type {
	case journal.AccountReal, journal.AccountDemo, journal.AccountProp, journal.AccountFunded:
	default:
		return fmt.Errorf("unknown account type %q", accountType)
	}
	if a.Type == journal.AccountProp && a.ChallengeType == "" {
		a.ChallengeType = journal.ChallengeTwoPhase
	}

	a, err = t.CreateAccount(cmd.Context(), a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created account %s\n", a.ID)
	fmt.Fprintf(out, "  %s (%s) %s %s\n", a.Name, a.Type, amount(a.InitialBalance), a.Currency)
	if a.IsProp() {
		fmt.Fprintf(out, "  Challenge: %s, phase %s, target %s\n", a.ChallengeType, a.Phase, amount(a.PhaseTarget()))
	}
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	reports, err := t.Reports(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if accountJSON {
		return printJSON(out, reports)
	}
	if len(reports) == 0 {
		fmt.Fprintln(out, "no accounts")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tPHASE\tBALANCE\tEQUITY\tP/L\tTRADES\tWIN%\tDD")
	for _, r := range reports {
		phase := string(r.Account.Phase)
		if phase == "" {
			phase = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.1f\t%s\n",
			r.Account.ID, r.Account.Name, r.Account.Type, phase,
			amount(r.Account.InitialBalance), amount(r.Stats.CurrentEquity), amount(r.Stats.TotalPnl),
			r.Stats.TotalTrades, r.Stats.WinRate, r.Drawdown.Level)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	totals := tracker.Portfolio(reports)
	fmt.Fprintf(out, "\n%d accounts, equity %s, net P/L %s, %d trades, avg win rate %.1f%%\n",
		totals.Accounts, amount(totals.Equity), amount(totals.TotalPnl), totals.TotalTrades, totals.AvgWinRate)
	return nil
}

func runAccountShow(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	r, err := t.Report(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if accountJSON {
		return printJSON(cmd.OutOrStdout(), r)
	}
	return tracker.WriteOrg(cmd.OutOrStdout(), []tracker.Report{r})
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	t, done, err := openTracker()
	if err != nil {
		return err
	}
	defer done()

	if err := t.DeleteAccount(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted account %s\n", args[0])
	return nil
}
