// internal/tiles/tile.go
//
// Tile value types for the deduction game.
// Defines:
//   - Suit: the closed set Bamboo / Character / Dot.
//   - Tile: a (suit, number) pair, number 1..9.
//
// Tiles are plain values; two tiles with the same suit and number are
// interchangeable and compare equal with ==.

package tiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Suit names one of the three numbered mahjong suits.
type Suit string

const (
	Bamboo    Suit = "Bamboo"
	Character Suit = "Character"
	Dot       Suit = "Dot"
)

// Suits lists every suit in precedence order. Ties between suits are always
// broken in this order.
var Suits = []Suit{Bamboo, Character, Dot}

const (
	MinNumber = 1
	MaxNumber = 9
)

var (
	ErrUnknownSuit   = errors.New("unknown suit")
	ErrInvalidNumber = errors.New("tile number out of range")
	ErrInvalidTile   = errors.New("invalid tile")
)

// Valid reports whether s is one of the known suits.
func (s Suit) Valid() bool {
	switch s {
	case Bamboo, Character, Dot:
		return true
	}
	return false
}

// Rank returns the precedence position of s (Bamboo=0), or -1 if unknown.
func (s Suit) Rank() int {
	for i, x := range Suits {
		if x == s {
			return i
		}
	}
	return -1
}

// ParseSuit accepts full suit names (any case) and the one-letter
// abbreviations b, c and d.
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bamboo", "b":
		return Bamboo, nil
	case "character", "c":
		return Character, nil
	case "dot", "d":
		return Dot, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSuit, s)
}

// Tile is a single numbered tile.
type Tile struct {
	Suit   Suit `json:"suit"`
	Number int  `json:"number"`
}

// String renders the display form, e.g. "5 Bamboo".
func (t Tile) String() string {
	return strconv.Itoa(t.Number) + " " + string(t.Suit)
}

// Validate checks the suit and number range.
func (t Tile) Validate() error {
	if !t.Suit.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSuit, string(t.Suit))
	}
	if t.Number < MinNumber || t.Number > MaxNumber {
		return fmt.Errorf("%w: %d", ErrInvalidNumber, t.Number)
	}
	return nil
}

// ParseTile reads "5 Bamboo", "5b" or "b5".
func ParseTile(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tile{}, fmt.Errorf("%w: empty", ErrInvalidTile)
	}

	var numPart, suitPart string
	if fields := strings.Fields(s); len(fields) == 2 {
		numPart, suitPart = fields[0], fields[1]
	} else if len(fields) == 1 && len(s) == 2 {
		switch {
		case s[0] >= '0' && s[0] <= '9':
			numPart, suitPart = s[:1], s[1:]
		default:
			suitPart, numPart = s[:1], s[1:]
		}
	} else {
		return Tile{}, fmt.Errorf("%w: %q", ErrInvalidTile, s)
	}

	n, err := strconv.Atoi(numPart)
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %q", ErrInvalidTile, s)
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Tile{}, err
	}
	t := Tile{Suit: suit, Number: n}
	if err := t.Validate(); err != nil {
		return Tile{}, err
	}
	return t, nil
}
