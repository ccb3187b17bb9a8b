// internal/game/types.go
//
// Core type definitions for the deduction engine.
// Defines:
//   - Mode: which of the three games a session plays.
//   - Status: lifecycle of a Classic/Advanced session.
//   - Outcome: how a session ended (used by scoring).
//   - Session: the common surface of every live session.
//   - Record: the result handed to persistence when a session ends.

package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects the game being played.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeAdvanced Mode = "advanced"
	ModeOracle   Mode = "oracle"
)

var ErrUnsupportedMode = errors.New("unsupported mode")

// ParseMode accepts the mode names in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeClassic, ModeAdvanced, ModeOracle:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Label is the human-facing name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeClassic:
		return "Classic Iteration"
	case ModeAdvanced:
		return "Enigmatic Iteration"
	case ModeOracle:
		return "Oracle Mode"
	}
	return string(m)
}

// Status is the lifecycle of a guessing session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusIdentified Status = "identified"
)

// Outcome is how a session terminated.
type Outcome string

const (
	OutcomeIdentified Outcome = "identified" // player found the secret
	OutcomeConfirmed  Outcome = "confirmed"  // oracle guessed right
	OutcomeRejected   Outcome = "rejected"   // oracle guessed wrong
)

// Session is implemented by both *Game and *Oracle.
type Session interface {
	ID() string
	Mode() Mode
	Done() bool
}

// Record is emitted once per finished session.
type Record struct {
	ID                string    `json:"id"`
	AttemptCount      int       `json:"attemptCount"`
	Mode              Mode      `json:"mode"`
	Score             int       `json:"score"`
	Timestamp         time.Time `json:"timestamp"`
	TargetDescription string    `json:"targetDescription"`
}
