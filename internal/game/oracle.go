// internal/game/oracle.go
//
// Oracle mode: the engine deduces the tile the player is thinking of.
//
// State transitions:
//   asking ⇄ (answer) → guessing → confirmed | rejected
//   asking → contradicted   (answers left no candidate; terminal)
//
// The question counter increases every time the engine produces a step,
// including the final guess. When no question can split the candidates the
// engine guesses a random remaining tile instead of asking.

package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mindreader/go-server/internal/tiles"
)

var (
	// ErrContradiction means the answers given are inconsistent with every
	// tile. The session cannot continue and must be discarded.
	ErrContradiction = errors.New("answers contradict every candidate")
	ErrNotAsking     = errors.New("no question pending")
	ErrNotGuessing   = errors.New("no guess pending")
)

// OracleStatus is the lifecycle of an Oracle session.
type OracleStatus string

const (
	OracleAsking       OracleStatus = "asking"
	OracleGuessing     OracleStatus = "guessing"
	OracleConfirmed    OracleStatus = "confirmed"
	OracleRejected     OracleStatus = "rejected"
	OracleContradicted OracleStatus = "contradicted"
)

// Step is the observable state after each transition: either a question to
// answer or the engine's guess.
type Step struct {
	Question  *Question   `json:"question,omitempty"`
	Guess     *tiles.Tile `json:"guess,omitempty"`
	Count     int         `json:"count"`
	Remaining int         `json:"remaining"`
}

// Oracle is a single Oracle-mode session.
type Oracle struct {
	cfg        config
	id         string
	candidates []tiles.Tile
	count      int
	status     OracleStatus
	question   Question
	guess      tiles.Tile
	fallback   bool
	score      int
	record     *Record
}

// NewOracle starts a session over the full catalog and prepares the first
// question.
func NewOracle(catalog *tiles.Catalog, opts ...Option) (*Oracle, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", tiles.ErrInvalidCatalog)
	}
	cfg := newConfig(opts)
	o := &Oracle{
		cfg:        cfg,
		id:         cfg.id,
		candidates: catalog.Tiles(),
	}
	o.advance()
	return o, nil
}

func (o *Oracle) ID() string           { return o.id }
func (o *Oracle) Mode() Mode           { return ModeOracle }
func (o *Oracle) Status() OracleStatus { return o.status }
func (o *Oracle) Count() int           { return o.count }
func (o *Oracle) Score() int           { return o.score }

// Done reports whether the session reached a terminal status.
func (o *Oracle) Done() bool {
	switch o.status {
	case OracleConfirmed, OracleRejected, OracleContradicted:
		return true
	}
	return false
}

// Candidates returns a copy of the tiles still consistent with the answers.
func (o *Oracle) Candidates() []tiles.Tile {
	return append([]tiles.Tile(nil), o.candidates...)
}

// Fallback reports whether the current guess was a random pick made because
// no question could split the candidates.
func (o *Oracle) Fallback() bool { return o.fallback }

// Record returns the finished record, or false before confirmation.
func (o *Oracle) Record() (Record, bool) {
	if o.record == nil {
		return Record{}, false
	}
	return *o.record, true
}

// Current returns the pending step.
func (o *Oracle) Current() Step {
	st := Step{Count: o.count, Remaining: len(o.candidates)}
	switch o.status {
	case OracleAsking:
		q := o.question
		st.Question = &q
	case OracleGuessing, OracleConfirmed, OracleRejected:
		g := o.guess
		st.Guess = &g
	}
	return st
}

// Answer applies a yes/no answer to the pending question.
func (o *Oracle) Answer(yes bool) (Step, error) {
	if o.status == OracleContradicted {
		return o.Current(), ErrContradiction
	}
	if o.status != OracleAsking {
		return o.Current(), ErrNotAsking
	}

	matched, rest := o.question.Split(o.candidates)
	next := rest
	if yes {
		next = matched
	}
	if len(next) == 0 {
		log.Warn().Str("session", o.id).Str("question", o.question.Text()).Bool("yes", yes).
			Msg("oracle answers contradict every candidate")
		o.status = OracleContradicted
		return o.Current(), ErrContradiction
	}
	o.candidates = next
	o.advance()
	return o.Current(), nil
}

// Confirm closes the session: correct means the engine's guess was right.
func (o *Oracle) Confirm(correct bool) (Record, error) {
	if o.status == OracleContradicted {
		return Record{}, ErrContradiction
	}
	if o.status != OracleGuessing {
		return Record{}, ErrNotGuessing
	}
	outcome := OutcomeRejected
	o.status = OracleRejected
	if correct {
		outcome = OutcomeConfirmed
		o.status = OracleConfirmed
	}
	o.score = Score(ModeOracle, o.count, outcome)
	rec := newRecord(o.cfg, ModeOracle, o.count, o.score, o.guess)
	o.record = &rec
	return rec, nil
}

// advance produces the next step: a question, or a guess once one candidate
// remains or no question can split the set.
func (o *Oracle) advance() {
	o.count++
	if len(o.candidates) == 1 {
		o.reveal(o.candidates[0], false)
		return
	}
	if q, ok := SelectQuestion(o.candidates); ok {
		o.question = q
		o.status = OracleAsking
		return
	}
	log.Debug().Str("session", o.id).Int("remaining", len(o.candidates)).
		Msg("oracle fallback to random guess")
	o.reveal(o.candidates[o.cfg.source.IntN(len(o.candidates))], true)
}

func (o *Oracle) reveal(t tiles.Tile, fallback bool) {
	o.guess = t
	o.fallback = fallback
	o.question = Question{}
	o.status = OracleGuessing
}
