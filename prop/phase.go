// Package prop moves prop-firm challenge accounts through their phases and
// reports how far each phase has progressed.
package prop

import (
	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
)

// Transition describes the outcome of one Advance call.
type Transition struct {
	From     journal.Phase
	To       journal.Phase
	TotalPnL float64
}

// Passed reports whether the account left its phase.
func (t Transition) Passed() bool {
	return t.To != t.From
}

// Advance evaluates acct against its closed trades and returns the updated
// account. The base P&L of every trade whose status is CLOSED is summed from
// scratch on each call and compared with the target of the current phase.
//
//	PHASE_1 -> PHASE_2  two phase challenge, total >= phase 1 target
//	PHASE_1 -> FUNDED   one phase challenge, total >= phase 1 target
//	PHASE_2 -> FUNDED   total >= phase 2 target
//
// Reaching FUNDED also turns the account type to FUNDED. A transition resets
// CurrentPhasePnL to zero, otherwise it is set to the recomputed total.
// Accounts that are not prop challenges with a phase come back untouched.
// Advance never persists anything; trades are expected to belong to acct.
func Advance(acct journal.Account, trades []journal.Trade) (journal.Account, Transition) {
	if !acct.IsProp() {
		return acct, Transition{From: acct.Phase, To: acct.Phase}
	}

	total := 0.0
	for _, t := range journal.StatusClosed(trades) {
		total += t.TotalPnl
	}
	total = money.Round2(total)

	tr := Transition{From: acct.Phase, To: acct.Phase, TotalPnL: total}
	target := acct.PhaseTarget()

	switch acct.Phase {
	case journal.Phase1:
		if !reached(total, target) {
			break
		}
		switch acct.ChallengeType {
		case journal.ChallengeTwoPhase:
			tr.To = journal.Phase2
		case journal.ChallengeOnePhase:
			tr.To = journal.PhaseFunded
		}
	case journal.Phase2:
		if reached(total, target) {
			tr.To = journal.PhaseFunded
		}
	}

	if !tr.Passed() {
		acct.CurrentPhasePnL = money.Ptr(total)
		return acct, tr
	}

	acct.Phase = tr.To
	if tr.To == journal.PhaseFunded {
		acct.Type = journal.AccountFunded
	}
	acct.CurrentPhasePnL = money.Ptr(0)
	return acct, tr
}

// reached treats an unset target as unreachable so an account without a
// configured goal never advances.
func reached(total, target float64) bool {
	return target > 0 && total >= target
}
