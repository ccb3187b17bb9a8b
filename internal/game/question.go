// internal/game/question.go
//
// Question selection for Oracle mode.
//
// A Question is a tagged predicate over tiles (by suit, number threshold or
// exact number) so it can be inspected, compared and serialised.
//
// SelectQuestion applies a fixed priority heuristic:
//   1. Several suits left → ask about the most common suit
//      (ties: Bamboo, Character, Dot).
//   2. One suit left → split at the median number (sorted[n/2]) asking
//      "≥ median".
//   3. Degenerate median → try thresholds 5, 3, 7, 4, 6 in that order.
//   4. At most 3 distinct numbers → ask for the middle distinct number.
//   5. Nothing applies → no question; the caller guesses at random.
//
// Every question returned splits the candidates into two non-empty groups.

package game

import (
	"fmt"
	"slices"

	"github.com/mindreader/go-server/internal/tiles"
)

// QuestionKind tags the predicate a question evaluates.
type QuestionKind string

const (
	BySuit            QuestionKind = "by_suit"
	ByNumberThreshold QuestionKind = "by_number_threshold"
	ByExactNumber     QuestionKind = "by_exact_number"
)

// Question is a yes/no predicate over tiles.
type Question struct {
	Kind   QuestionKind `json:"kind"`
	Suit   tiles.Suit   `json:"suit,omitempty"`
	Number int          `json:"number,omitempty"`
}

// fallbackSplits are tried in order when the median split is degenerate.
var fallbackSplits = []int{5, 3, 7, 4, 6}

// Text renders the question for the player.
func (q Question) Text() string {
	switch q.Kind {
	case BySuit:
		return fmt.Sprintf("Is it %s?", q.Suit)
	case ByNumberThreshold:
		return fmt.Sprintf("Is the number %d or higher?", q.Number)
	case ByExactNumber:
		return fmt.Sprintf("Is it number %d?", q.Number)
	}
	return ""
}

// Matches evaluates the predicate for t.
func (q Question) Matches(t tiles.Tile) bool {
	switch q.Kind {
	case BySuit:
		return t.Suit == q.Suit
	case ByNumberThreshold:
		return t.Number >= q.Number
	case ByExactNumber:
		return t.Number == q.Number
	}
	return false
}

// Split partitions set into tiles answering yes and tiles answering no,
// preserving order.
func (q Question) Split(set []tiles.Tile) (yes, no []tiles.Tile) {
	for _, t := range set {
		if q.Matches(t) {
			yes = append(yes, t)
		} else {
			no = append(no, t)
		}
	}
	return yes, no
}

// SelectQuestion picks the question that best narrows candidates.
// It returns false when fewer than two candidates remain or when no rule
// can produce a split.
func SelectQuestion(candidates []tiles.Tile) (Question, bool) {
	if len(candidates) < 2 {
		return Question{}, false
	}

	if q, ok := suitQuestion(candidates); ok {
		return q, true
	}

	numbers := make([]int, len(candidates))
	for i, t := range candidates {
		numbers[i] = t.Number
	}
	slices.Sort(numbers)
	distinct := slices.Compact(slices.Clone(numbers))
	if len(distinct) < 2 {
		return Question{}, false
	}

	median := numbers[len(numbers)/2]
	if splits(numbers, median) {
		return Question{Kind: ByNumberThreshold, Number: median}, true
	}
	for _, p := range fallbackSplits {
		if splits(numbers, p) {
			return Question{Kind: ByNumberThreshold, Number: p}, true
		}
	}
	if len(distinct) <= 3 {
		return Question{Kind: ByExactNumber, Number: distinct[len(distinct)/2]}, true
	}
	return Question{}, false
}

// suitQuestion asks about the most common suit when more than one is left.
func suitQuestion(candidates []tiles.Tile) (Question, bool) {
	counts := make(map[tiles.Suit]int, len(tiles.Suits))
	for _, t := range candidates {
		counts[t.Suit]++
	}
	if len(counts) < 2 {
		return Question{}, false
	}
	var best tiles.Suit
	for _, s := range tiles.Suits {
		if counts[s] > counts[best] {
			best = s
		}
	}
	if best == "" {
		return Question{}, false
	}
	return Question{Kind: BySuit, Suit: best}, true
}

// splits reports whether threshold leaves numbers on both sides.
// numbers must be sorted.
func splits(numbers []int, threshold int) bool {
	return numbers[0] < threshold && numbers[len(numbers)-1] >= threshold
}
