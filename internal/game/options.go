// internal/game/options.go
//
// Construction options shared by Classic/Advanced games and Oracle sessions:
// injectable randomness, clock, identifiers and a fixed secret for tests or
// the daily challenge.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/mindreader/go-server/internal/tiles"
)

// Source picks uniformly in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG generator seeded from crypto/rand.
func NewSource() Source {
	var b [16]byte
	_, _ = crand.Read(b[:])
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// NewSeededSource returns a deterministic source, mostly for tests.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type config struct {
	source Source
	now    func() time.Time
	id     string
	secret *tiles.Tile
}

// Option customises a new session.
type Option func(*config)

// WithSource sets the randomness used for the secret and fallback guesses.
func WithSource(src Source) Option {
	return func(c *config) { c.source = src }
}

// WithClock sets the clock used to timestamp records.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithID fixes the session identifier.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithSecret fixes the secret tile of a Classic/Advanced game.
// Oracle sessions ignore it.
func WithSecret(t tiles.Tile) Option {
	return func(c *config) { c.secret = &t }
}

func newConfig(opts []Option) config {
	c := config{now: time.Now}
	for _, o := range opts {
		o(&c)
	}
	if c.source == nil {
		c.source = NewSource()
	}
	if c.id == "" {
		c.id = randomID()
	}
	return c
}

func newRecord(c config, mode Mode, count, score int, target tiles.Tile) Record {
	return Record{
		ID:                uuid.NewString(),
		AttemptCount:      count,
		Mode:              mode,
		Score:             score,
		Timestamp:         c.now().UTC(),
		TargetDescription: target.String(),
	}
}

// randomID returns a compact 16-hex-char session identifier.
func randomID() string {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return hex.EncodeToString(b[:])
}
