package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindreader/go-server/internal/tiles"
)

func bamboos(numbers ...int) []tiles.Tile {
	out := make([]tiles.Tile, len(numbers))
	for i, n := range numbers {
		out[i] = tile(tiles.Bamboo, n)
	}
	return out
}

func TestSelectQuestion(t *testing.T) {
	full := defaultCatalog(t).Tiles()

	tests := []struct {
		name string
		set  []tiles.Tile
		want Question
	}{
		{"full catalog asks bamboo", full, Question{Kind: BySuit, Suit: tiles.Bamboo}},
		{"character and dot tie", full[9:], Question{Kind: BySuit, Suit: tiles.Character}},
		{
			"most common suit wins",
			append(bamboos(1, 2), tile(tiles.Dot, 1), tile(tiles.Dot, 2), tile(tiles.Dot, 3)),
			Question{Kind: BySuit, Suit: tiles.Dot},
		},
		{"single suit median", bamboos(1, 2, 3, 4, 5, 6, 7, 8, 9), Question{Kind: ByNumberThreshold, Number: 5}},
		{"upper median of two", bamboos(8, 9), Question{Kind: ByNumberThreshold, Number: 9}},
		{"upper half", bamboos(5, 6, 7, 8, 9), Question{Kind: ByNumberThreshold, Number: 7}},
		{"degenerate median uses split points", bamboos(3, 3, 3, 5), Question{Kind: ByNumberThreshold, Number: 5}},
		{"degenerate median second split point", bamboos(2, 2, 2, 4), Question{Kind: ByNumberThreshold, Number: 3}},
		{"exact number fallback", bamboos(1, 1, 1, 2), Question{Kind: ByExactNumber, Number: 2}},
		{"exact number fallback high", bamboos(8, 8, 8, 9), Question{Kind: ByExactNumber, Number: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := SelectQuestion(tt.set)
			require.True(t, ok)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestSelectQuestionNone(t *testing.T) {
	for name, set := range map[string][]tiles.Tile{
		"empty":         nil,
		"single":        bamboos(4),
		"one number":    bamboos(5, 5),
		"one number x3": bamboos(2, 2, 2),
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := SelectQuestion(set)
			assert.False(t, ok)
		})
	}
}

func TestQuestionText(t *testing.T) {
	assert.Equal(t, "Is it Bamboo?", Question{Kind: BySuit, Suit: tiles.Bamboo}.Text())
	assert.Equal(t, "Is the number 5 or higher?", Question{Kind: ByNumberThreshold, Number: 5}.Text())
	assert.Equal(t, "Is it number 2?", Question{Kind: ByExactNumber, Number: 2}.Text())
	assert.Empty(t, Question{}.Text())
}

func TestQuestionMatches(t *testing.T) {
	q := Question{Kind: ByNumberThreshold, Number: 5}
	assert.True(t, q.Matches(tile(tiles.Dot, 5)))
	assert.True(t, q.Matches(tile(tiles.Dot, 9)))
	assert.False(t, q.Matches(tile(tiles.Dot, 4)))

	q = Question{Kind: BySuit, Suit: tiles.Character}
	assert.True(t, q.Matches(tile(tiles.Character, 1)))
	assert.False(t, q.Matches(tile(tiles.Dot, 1)))

	q = Question{Kind: ByExactNumber, Number: 3}
	assert.True(t, q.Matches(tile(tiles.Bamboo, 3)))
	assert.False(t, q.Matches(tile(tiles.Bamboo, 4)))

	assert.False(t, Question{}.Matches(tile(tiles.Bamboo, 4)))
}

// Every selected question must split random subsets of the catalog into two
// non-empty groups, and must be the same question for the same input.
func TestSelectQuestionAlwaysSplits(t *testing.T) {
	full := defaultCatalog(t).Tiles()
	src := NewSeededSource(2026)
	for i := 0; i < 2000; i++ {
		var set []tiles.Tile
		for _, x := range full {
			if src.IntN(2) == 0 {
				set = append(set, x)
			}
		}
		if len(set) < 2 {
			continue
		}
		q, ok := SelectQuestion(set)
		require.True(t, ok, "no question for %v", set)
		yes, no := q.Split(set)
		require.NotEmpty(t, yes, "question %s on %v", q.Text(), set)
		require.NotEmpty(t, no, "question %s on %v", q.Text(), set)
		assert.Equal(t, len(set), len(yes)+len(no))

		again, _ := SelectQuestion(set)
		assert.Equal(t, q, again)
	}
}
