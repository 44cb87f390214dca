// Package journal holds the records a trader keeps: accounts, the trades
// placed in them and the alerts derived from both. It also provides the
// SQLite-backed Store and the CSV and Org-mode exporters.
package journal

import (
	"time"

	"github.com/rustyeddy/traidal/pkg/money"
)

type AccountType string

const (
	AccountReal   AccountType = "REAL"
	AccountDemo   AccountType = "DEMO"
	AccountProp   AccountType = "PROP"
	AccountFunded AccountType = "FUNDED"
)

type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusFailed   AccountStatus = "FAILED"
	StatusPassed   AccountStatus = "PASSED"
)

// ChallengeType is the structure of a prop firm evaluation.
type ChallengeType string

const (
	ChallengeOnePhase ChallengeType = "ONE_PHASE"
	ChallengeTwoPhase ChallengeType = "TWO_PHASE"
	ChallengeInstant  ChallengeType = "INSTANT"
)

// Phase is where a prop account currently sits in its challenge.
type Phase string

const (
	Phase1       Phase = "PHASE_1"
	Phase2       Phase = "PHASE_2"
	PhaseFunded  Phase = "FUNDED"
	PhaseInstant Phase = "INSTANT"
)

// Account is a trading account being tracked. The pointer fields are
// optional; consumers treat a nil amount as zero (see money.Value).
type Account struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           AccountType   `json:"type"`
	Broker         string        `json:"broker"`
	Currency       string        `json:"currency"`
	InitialBalance float64       `json:"initialBalance"`
	Status         AccountStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`

	// Prop challenge fields, only meaningful when Type is PROP.
	ChallengeType      ChallengeType `json:"challengeType,omitempty"`
	Phase              Phase         `json:"phase,omitempty"`
	ChallengeCost      *float64      `json:"challengeCost,omitempty"`
	MaxDrawdownLimit   *float64      `json:"maxDrawdownLimit,omitempty"`
	DailyDrawdownLimit *float64      `json:"dailyDrawdownLimit,omitempty"`
	ProfitSplitPercent *float64      `json:"profitSplitPercent,omitempty"`

	Phase1ProfitTarget        *float64 `json:"phase1ProfitTarget,omitempty"`
	Phase2ProfitTarget        *float64 `json:"phase2ProfitTarget,omitempty"`
	FundedProfitTarget        *float64 `json:"fundedProfitTarget,omitempty"`
	Phase1ProfitTargetPercent *float64 `json:"phase1ProfitTargetPercent,omitempty"`
	Phase2ProfitTargetPercent *float64 `json:"phase2ProfitTargetPercent,omitempty"`
	FundedProfitTargetPercent *float64 `json:"fundedProfitTargetPercent,omitempty"`

	// CurrentPhasePnL is the P&L made inside the current phase only and
	// is reset on every phase transition.
	CurrentPhasePnL *float64 `json:"currentPhasePnL,omitempty"`
}

// Validate reports structurally invalid accounts.
func (a Account) Validate() error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.InitialBalance <= 0 {
		return ErrInvalidBalance
	}
	return nil
}

// IsProp reports whether the account is a prop challenge with a phase set.
func (a Account) IsProp() bool {
	return a.Type == AccountProp && a.Phase != ""
}

// PhaseTarget returns the absolute profit target of the current phase,
// zero when none is configured.
func (a Account) PhaseTarget() float64 {
	switch a.Phase {
	case Phase1:
		return money.Value(a.Phase1ProfitTarget)
	case Phase2:
		return money.Value(a.Phase2ProfitTarget)
	case PhaseFunded:
		return money.Value(a.FundedProfitTarget)
	}
	return 0
}

// EquityPoint is one sample of an account's equity curve.
type EquityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
