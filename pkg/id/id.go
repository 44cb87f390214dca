// Package id mints time-sortable identifiers for journal records.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind prefixes an identifier with the record type it names.
type Kind string

const (
	Account Kind = "acc"
	Trade   Kind = "trd"
	Partial Kind = "pc"
)

// Generator produces ULIDs. IDs minted in the same millisecond stay
// lexicographically increasing.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator builds a generator over entropy and clock. A nil entropy
// source is seeded from crypto/rand; a nil clock uses time.Now.
func NewGenerator(entropy io.Reader, now func() time.Time) *Generator {
	if entropy == nil {
		var seed int64
		_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		entropy = rand.New(rand.NewSource(seed))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{mono: ulid.Monotonic(entropy, 0), now: now}
}

// New returns a bare ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// only when the clock runs backwards past the epoch or entropy fails
		panic(err)
	}
	return id.String()
}

// For returns a ULID prefixed with its kind, e.g. "trd_01HV...".
func (g *Generator) For(k Kind) string {
	return string(k) + "_" + g.New()
}

var std = NewGenerator(nil, nil)

// New returns a ULID from the package generator.
func New() string { return std.New() }

// For returns a kind-prefixed ULID from the package generator.
func For(k Kind) string { return std.For(k) }

// Time extracts the creation time encoded in an identifier minted here.
// ok is false for identifiers that are not ULIDs.
func Time(s string) (time.Time, bool) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()).UTC(), true
}
