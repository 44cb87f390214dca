package stats

import (
	"testing"
	"time"

	"github.com/rustyeddy/traidal/journal"
	"github.com/rustyeddy/traidal/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestDaysInDrawdown(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		trades []journal.Trade
		want   int
	}{
		{"no trades", nil, 0},
		{"at peak", sequence(100, 50), 0},
		{
			"below peak",
			[]journal.Trade{
				closed("t1", "2024-01-05T00:00:00Z", 200),
				closed("t2", "2024-01-10T00:00:00Z", -300),
			},
			16,
		},
		{
			"never above initial",
			[]journal.Trade{closed("t1", "2024-01-10T00:00:00Z", -50)},
			20,
		},
		{
			"equal high is not a new peak",
			[]journal.Trade{
				closed("t1", "2024-01-05T00:00:00Z", 100),
				closed("t2", "2024-01-08T00:00:00Z", -100),
				closed("t3", "2024-01-15T00:00:00Z", 100),
				closed("t4", "2024-01-16T00:00:00Z", -1),
			},
			16,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DaysInDrawdown(account(1000), tt.trades, at))
		})
	}
}

func TestDaysInDrawdownUsesBasePnL(t *testing.T) {
	t.Parallel()

	tr := closed("t1", "2024-01-05T00:00:00Z", 10)
	tr.Commission = money.Ptr(-20)

	assert.Zero(t, DaysInDrawdown(account(1000), []journal.Trade{tr}, now))
}

func TestDaysActive(t *testing.T) {
	t.Parallel()

	acct := account(1000)
	assert.Equal(t, 90, DaysActive(acct, now))
	assert.Zero(t, DaysActive(acct, acct.CreatedAt.Add(-time.Hour)))
	assert.Zero(t, DaysActive(journal.Account{}, now))
}
