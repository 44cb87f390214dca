package prop

import (
	"testing"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func challenge(kind journal.ChallengeType, phase journal.Phase) journal.Account {
	return journal.Account{
		ID:                 "acc-1",
		Type:               journal.AccountProp,
		InitialBalance:     10000,
		ChallengeType:      kind,
		Phase:              phase,
		Phase1ProfitTarget: money.Ptr(1000),
		Phase2ProfitTarget: money.Ptr(500),
	}
}

func trades(pnls ...float64) []journal.Trade {
	out := make([]journal.Trade, 0, len(pnls))
	for _, p := range pnls {
		out = append(out, journal.Trade{
			AccountID:     "acc-1",
			CloseDatetime: "2024-02-01T10:00:00Z",
			TotalPnl:      p,
			Status:        journal.TradeClosed,
		})
	}
	return out
}

func TestAdvanceTwoPhaseToPhase2(t *testing.T) {
	t.Parallel()

	acct := challenge(journal.ChallengeTwoPhase, journal.Phase1)
	got, tr := Advance(acct, trades(700, 500))

	assert.True(t, tr.Passed())
	assert.Equal(t, journal.Phase1, tr.From)
	assert.Equal(t, journal.Phase2, tr.To)
	assert.Equal(t, 1200.0, tr.TotalPnL)

	assert.Equal(t, journal.Phase2, got.Phase)
	assert.Equal(t, journal.AccountProp, got.Type)
	require.NotNil(t, got.CurrentPhasePnL)
	assert.Zero(t, *got.CurrentPhasePnL)

	// input is not modified
	assert.Equal(t, journal.Phase1, acct.Phase)
	assert.Nil(t, acct.CurrentPhasePnL)
}

func TestAdvanceToFunded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		acct  journal.Account
		pnls  []float64
		phase journal.Phase
	}{
		{"one phase", challenge(journal.ChallengeOnePhase, journal.Phase1), []float64{1000}, journal.PhaseFunded},
		{"phase 2", challenge(journal.ChallengeTwoPhase, journal.Phase2), []float64{250, 250}, journal.PhaseFunded},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, tr := Advance(tt.acct, trades(tt.pnls...))
			assert.True(t, tr.Passed())
			assert.Equal(t, tt.phase, got.Phase)
			assert.Equal(t, journal.AccountFunded, got.Type)
			assert.Zero(t, money.Value(got.CurrentPhasePnL))
		})
	}
}

func TestAdvanceBelowTargetUpdatesPhasePnL(t *testing.T) {
	t.Parallel()

	acct := challenge(journal.ChallengeTwoPhase, journal.Phase1)

	open := trades(5000)
	open[0].Status = journal.TradeOpen

	got, tr := Advance(acct, append(trades(400, -100, 50.5), open...))

	assert.False(t, tr.Passed())
	assert.Equal(t, journal.Phase1, got.Phase)
	assert.Equal(t, 350.5, money.Value(got.CurrentPhasePnL))
}

func TestAdvanceIgnoresFees(t *testing.T) {
	t.Parallel()

	ts := trades(1000)
	ts[0].Commission = money.Ptr(-10)

	got, tr := Advance(challenge(journal.ChallengeTwoPhase, journal.Phase1), ts)
	assert.True(t, tr.Passed())
	assert.Equal(t, journal.Phase2, got.Phase)
}

func TestAdvanceNoop(t *testing.T) {
	t.Parallel()

	live := journal.Account{ID: "r", Type: journal.AccountReal, InitialBalance: 1000}
	got, tr := Advance(live, trades(5000))
	assert.Equal(t, live, got)
	assert.False(t, tr.Passed())

	noPhase := challenge(journal.ChallengeTwoPhase, "")
	got, _ = Advance(noPhase, trades(5000))
	assert.Equal(t, noPhase, got)

	noTarget := challenge(journal.ChallengeTwoPhase, journal.Phase1)
	noTarget.Phase1ProfitTarget = nil
	got, tr = Advance(noTarget, trades(5000))
	assert.False(t, tr.Passed())
	assert.Equal(t, 5000.0, money.Value(got.CurrentPhasePnL))

	for _, phase := range []journal.Phase{journal.PhaseFunded, journal.PhaseInstant} {
		acct := challenge(journal.ChallengeInstant, phase)
		got, tr := Advance(acct, trades(100000))
		assert.False(t, tr.Passed())
		assert.Equal(t, phase, got.Phase)
		assert.Equal(t, 100000.0, money.Value(got.CurrentPhasePnL))
	}
}
