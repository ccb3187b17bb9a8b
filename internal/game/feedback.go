// internal/game/feedback.go
//
// Feedback evaluation for Classic and Advanced guesses.
//
// Classic compares numbers only (the session restricts guesses to one suit).
// Advanced compares suit and number with a fixed precedence:
//   1. both match        → Exact
//   2. number only       → NumberOnly
//   3. suit only         → SuitOnly + direction of the target
//   4. neither           → NoMatch
//
// Hints always describe where the TARGET lies relative to the guess: a guess
// above the target yields TooHigh with hint Lower ("target is LOWER").

package game

import "github.com/mindreader/go-server/internal/tiles"

// Result is the kind of feedback produced for a guess.
type Result string

const (
	ResultExact      Result = "exact"
	ResultTooHigh    Result = "too_high"
	ResultTooLow     Result = "too_low"
	ResultNumberOnly Result = "number_only"
	ResultSuitOnly   Result = "suit_only"
	ResultNoMatch    Result = "no_match"
)

// Hint is the direction of the target number relative to the guess.
type Hint string

const (
	HintNone   Hint = ""
	HintHigher Hint = "higher"
	HintLower  Hint = "lower"
)

// Feedback is what the player sees after a guess.
type Feedback struct {
	Result Result `json:"result"`
	Hint   Hint   `json:"hint,omitempty"`
	Text   string `json:"text"`
}

// Exact reports whether the guess identified the secret.
func (f Feedback) Exact() bool { return f.Result == ResultExact }

// Evaluate compares guess against secret. Any mode other than Classic is
// evaluated with the Advanced rules.
func Evaluate(guess, secret tiles.Tile, mode Mode) Feedback {
	if mode == ModeClassic {
		return evaluateClassic(guess, secret)
	}
	return evaluateAdvanced(guess, secret)
}

func evaluateClassic(guess, secret tiles.Tile) Feedback {
	switch direction(guess, secret) {
	case HintLower:
		return Feedback{Result: ResultTooHigh, Hint: HintLower, Text: "The target is LOWER"}
	case HintHigher:
		return Feedback{Result: ResultTooLow, Hint: HintHigher, Text: "The target is HIGHER"}
	}
	return Feedback{Result: ResultExact, Text: "Exact! You found " + secret.String()}
}

func evaluateAdvanced(guess, secret tiles.Tile) Feedback {
	sameSuit := guess.Suit == secret.Suit
	sameNumber := guess.Number == secret.Number

	switch {
	case sameSuit && sameNumber:
		return Feedback{Result: ResultExact, Text: "Exact! You found " + secret.String()}
	case sameNumber:
		return Feedback{Result: ResultNumberOnly, Text: "Number matches, suit does not"}
	case sameSuit:
		h := direction(guess, secret)
		return Feedback{Result: ResultSuitOnly, Hint: h, Text: "Suit matches, target is " + hintWord(h)}
	}
	return Feedback{Result: ResultNoMatch, Text: "Neither suit nor number match"}
}

// direction tells where secret's number lies relative to guess's.
func direction(guess, secret tiles.Tile) Hint {
	switch {
	case guess.Number > secret.Number:
		return HintLower
	case guess.Number < secret.Number:
		return HintHigher
	}
	return HintNone
}

func hintWord(h Hint) string {
	if h == HintHigher {
		return "HIGHER"
	}
	return "LOWER"
}
