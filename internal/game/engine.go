// internal/game/engine.go
//
// Classic and Advanced deduction sessions.
// Responsibilities:
//   - Pick a secret tile uniformly from the session's catalog slice.
//   - Apply guesses: count the attempt, evaluate feedback, detect the win.
//   - Track what the player has learned (suit / number) in Advanced mode.
//   - Score the session and build its Record once the secret is identified.
//
// State transitions:
//   in_progress → identified (terminal). Playing again means a new Game.

package game

import (
	"errors"
	"fmt"

	"github.com/mindreader/go-server/internal/tiles"
)

var (
	ErrSessionFinished      = errors.New("session finished")
	ErrTileNotInCatalog     = errors.New("tile not in catalog")
	ErrCatalogNotSingleSuit = errors.New("classic mode needs a single-suit catalog")
)

// Turn is a guess together with the feedback it received.
type Turn struct {
	Guess    tiles.Tile `json:"guess"`
	Feedback Feedback   `json:"feedback"`
}

// Knowledge is what the player has pinned down so far.
type Knowledge struct {
	Suit   tiles.Suit `json:"suit,omitempty"`
	Number int        `json:"number,omitempty"`
}

// Game is a single Classic or Advanced session.
type Game struct {
	cfg     config
	id      string
	mode    Mode
	catalog *tiles.Catalog
	secret  tiles.Tile

	attempts int
	status   Status
	history  []Turn
	known    Knowledge
	score    int
	record   *Record
}

// NewGame starts a session over catalog. Classic needs a single-suit slice.
func NewGame(mode Mode, catalog *tiles.Catalog, opts ...Option) (*Game, error) {
	if mode != ModeClassic && mode != ModeAdvanced {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: empty", tiles.ErrInvalidCatalog)
	}
	if mode == ModeClassic && len(catalog.Suits()) != 1 {
		return nil, ErrCatalogNotSingleSuit
	}

	cfg := newConfig(opts)
	var secret tiles.Tile
	if cfg.secret != nil {
		if !catalog.Contains(*cfg.secret) {
			return nil, fmt.Errorf("%w: secret %s", ErrTileNotInCatalog, cfg.secret)
		}
		secret = *cfg.secret
	} else {
		secret = catalog.At(cfg.source.IntN(catalog.Len()))
	}

	return &Game{
		cfg:     cfg,
		id:      cfg.id,
		mode:    mode,
		catalog: catalog,
		secret:  secret,
		status:  StatusInProgress,
	}, nil
}

func (g *Game) ID() string              { return g.id }
func (g *Game) Mode() Mode              { return g.mode }
func (g *Game) Done() bool              { return g.status == StatusIdentified }
func (g *Game) Status() Status          { return g.status }
func (g *Game) Attempts() int           { return g.attempts }
func (g *Game) Catalog() *tiles.Catalog { return g.catalog }
func (g *Game) Knowledge() Knowledge    { return g.known }

// History returns a copy of the turns played so far.
func (g *Game) History() []Turn { return append([]Turn(nil), g.history...) }

// Secret reveals the target. Callers should only expose it once Done.
func (g *Game) Secret() tiles.Tile { return g.secret }

// Score is zero until the game is identified.
func (g *Game) Score() int { return g.score }

// Record returns the finished record, or false while in progress.
func (g *Game) Record() (Record, bool) {
	if g.record == nil {
		return Record{}, false
	}
	return *g.record, true
}

// ApplyGuess counts an attempt and evaluates it against the secret.
// Tiles outside the session catalog are rejected without counting.
func (g *Game) ApplyGuess(guess tiles.Tile) (Feedback, error) {
	if g.Done() {
		return Feedback{}, ErrSessionFinished
	}
	if !g.catalog.Contains(guess) {
		return Feedback{}, fmt.Errorf("%w: %s", ErrTileNotInCatalog, guess)
	}

	g.attempts++
	fb := Evaluate(guess, g.secret, g.mode)
	g.history = append(g.history, Turn{Guess: guess, Feedback: fb})

	switch fb.Result {
	case ResultExact:
		g.status = StatusIdentified
		g.score = Score(g.mode, g.attempts, OutcomeIdentified)
		rec := newRecord(g.cfg, g.mode, g.attempts, g.score, g.secret)
		g.record = &rec
		g.known = Knowledge{Suit: g.secret.Suit, Number: g.secret.Number}
	case ResultNumberOnly:
		g.known.Number = guess.Number
	case ResultSuitOnly:
		g.known.Suit = guess.Suit
	}
	return fb, nil
}
