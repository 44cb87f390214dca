package id

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorMonotonic(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	g := NewGenerator(rand.New(rand.NewSource(1)), func() time.Time { return at })

	prev := g.New()
	for i := 0; i < 100; i++ {
		next := g.New()
		require.Len(t, next, 26)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestFor(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 0, 0, 123e6, time.UTC)
	g := NewGenerator(nil, func() time.Time { return at })

	s := g.For(Trade)
	assert.True(t, strings.HasPrefix(s, "trd_"))

	got, ok := Time(s)
	require.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestPackageGenerator(t *testing.T) {
	t.Parallel()

	a, b := For(Account), For(Account)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "acc_"))

	ts, ok := Time(New())
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestTimeRejectsForeignIDs(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "acc-1", "trd_not-a-ulid", "01HV"} {
		_, ok := Time(s)
		assert.False(t, ok, s)
	}
}
