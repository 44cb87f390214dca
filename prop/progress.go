package prop

import (
	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// PhaseStatus labels how close an account is to its phase target.
type PhaseStatus string

const (
	StatusNA         PhaseStatus = "N/A"
	StatusEarlyStage PhaseStatus = "Early Stage"
	StatusInProgress PhaseStatus = "In Progress"
	StatusOnTrack    PhaseStatus = "On Track"
	StatusCompleted  PhaseStatus = "Completed"
)

// PhaseProgress is the current phase P&L measured against its target.
// Percent is capped at 100.
type PhaseProgress struct {
	Phase   journal.Phase `json:"phase"`
	Target  float64       `json:"target"`
	Current float64       `json:"current"`
	Percent float64       `json:"percent"`
}

// Progress reports the progress of a prop challenge. ok is false for
// accounts that are not prop challenges with a phase.
func Progress(acct journal.Account) (PhaseProgress, bool) {
	if !acct.IsProp() {
		return PhaseProgress{}, false
	}
	p := PhaseProgress{
		Phase:   acct.Phase,
		Target:  acct.PhaseTarget(),
		Current: money.Value(acct.CurrentPhasePnL),
	}
	if p.Target > 0 {
		p.Percent = money.Round2(min(p.Current/p.Target*100, 100))
	}
	return p, true
}

// Status buckets progress: Completed at 100, On Track from 70, In Progress
// from 40 and Early Stage below that.
func Status(p PhaseProgress, ok bool) PhaseStatus {
	switch {
	case !ok:
		return StatusNA
	case p.Percent >= 100:
		return StatusCompleted
	case p.Percent >= 70:
		return StatusOnTrack
	case p.Percent >= 40:
		return StatusInProgress
	}
	return StatusEarlyStage
}

// TargetFromPercent converts a profit target given as a percentage of the
// starting balance into an amount.
func TargetFromPercent(initialBalance, percent float64) float64 {
	return money.Round2(initialBalance * percent / 100)
}

// ResolveTargets completes each phase target pair. A missing amount is
// derived from its percentage and a missing percentage from its amount.
// Values already set are left alone.
func ResolveTargets(acct journal.Account) journal.Account {
	if acct.InitialBalance <= 0 {
		return acct
	}
	resolve(acct.InitialBalance, &acct.Phase1ProfitTarget, &acct.Phase1ProfitTargetPercent)
	resolve(acct.InitialBalance, &acct.Phase2ProfitTarget, &acct.Phase2ProfitTargetPercent)
	resolve(acct.InitialBalance, &acct.FundedProfitTarget, &acct.FundedProfitTargetPercent)
	return acct
}

func resolve(balance float64, amount, percent **float64) {
	switch {
	case *amount == nil && *percent != nil && **percent > 0:
		*amount = money.Ptr(TargetFromPercent(balance, **percent))
	case *percent == nil && *amount != nil && **amount > 0:
		*percent = money.Ptr(money.Round2(**amount / balance * 100))
	}
}
