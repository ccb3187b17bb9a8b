package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileString(t *testing.T) {
	assert.Equal(t, "5 Bamboo", Tile{Suit: Bamboo, Number: 5}.String())
	assert.Equal(t, "9 Dot", Tile{Suit: Dot, Number: 9}.String())
}

func TestParseTile(t *testing.T) {
	tests := []struct {
		in   string
		want Tile
		err  error
	}{
		{in: "5 Bamboo", want: Tile{Suit: Bamboo, Number: 5}},
		{in: " 3 character ", want: Tile{Suit: Character, Number: 3}},
		{in: "7d", want: Tile{Suit: Dot, Number: 7}},
		{in: "B1", want: Tile{Suit: Bamboo, Number: 1}},
		{in: "", err: ErrInvalidTile},
		{in: "0 Dot", err: ErrInvalidNumber},
		{in: "10 Dot", err: ErrInvalidNumber},
		{in: "4 Wind", err: ErrUnknownSuit},
		{in: "x Dot", err: ErrInvalidTile},
		{in: "5 Bamboo extra", err: ErrInvalidTile},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTile(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTileRoundTrip(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	for _, tile := range c.Tiles() {
		got, err := ParseTile(tile.String())
		require.NoError(t, err)
		assert.Equal(t, tile, got)
	}
}

func TestSuitRank(t *testing.T) {
	assert.Equal(t, 0, Bamboo.Rank())
	assert.Equal(t, 1, Character.Rank())
	assert.Equal(t, 2, Dot.Rank())
	assert.Equal(t, -1, Suit("Wind").Rank())
	assert.False(t, Suit("").Valid())
}
