// internal/tiles/catalog.go
//
// Tile catalog management.
//
// Responsibilities:
//   - Build an immutable, ordered catalog from a list of tiles.
//   - Enforce catalog invariants (no duplicates, every number 1–9 present for
//     each included suit).
//   - Load the catalog from a file or fall back to the embedded default.
//   - Hand out per-suit slices for Classic games.
//
// The catalog is built once at startup and passed to every consumer; it is
// never mutated afterwards, so it is safe to share between goroutines.

package tiles

import (
	"errors"
	"fmt"
	"os"

	"github.com/mindreader/go-server/assets"
)

var ErrInvalidCatalog = errors.New("invalid tile catalog")

// Catalog is an ordered, read-only set of tiles.
type Catalog struct {
	tiles []Tile
	index map[Tile]int
	suits []Suit
}

// NewCatalog validates list and returns a catalog preserving its order.
func NewCatalog(list []Tile) (*Catalog, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCatalog)
	}
	c := &Catalog{
		tiles: make([]Tile, 0, len(list)),
		index: make(map[Tile]int, len(list)),
	}
	perSuit := make(map[Suit]int)
	for _, t := range list {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.index[t]; dup {
			return nil, fmt.Errorf("%w: duplicate tile %s", ErrInvalidCatalog, t)
		}
		c.index[t] = len(c.tiles)
		c.tiles = append(c.tiles, t)
		perSuit[t.Suit]++
	}
	for _, s := range Suits {
		n, ok := perSuit[s]
		if !ok {
			continue
		}
		// Duplicates are already rejected, so a full suit has exactly 9 tiles.
		if n != MaxNumber-MinNumber+1 {
			return nil, fmt.Errorf("%w: suit %s has %d of 9 numbers", ErrInvalidCatalog, s, n)
		}
		c.suits = append(c.suits, s)
	}
	return c, nil
}

// Default returns the embedded 27-tile catalog.
func Default() (*Catalog, error) {
	lines, err := assets.TileLines()
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

// Load reads a catalog file (one tile per line, '#' comments allowed).
// An empty path returns the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseLines(lines)
}

func parseLines(lines []string) (*Catalog, error) {
	list := make([]Tile, 0, len(lines))
	for i, line := range lines {
		t, err := ParseTile(line)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i+1, err)
		}
		list = append(list, t)
	}
	return NewCatalog(list)
}

// Tiles returns a copy of the catalog in order.
func (c *Catalog) Tiles() []Tile {
	return append([]Tile(nil), c.tiles...)
}

// Len is the number of tiles.
func (c *Catalog) Len() int { return len(c.tiles) }

// At returns the i-th tile.
func (c *Catalog) At(i int) Tile { return c.tiles[i] }

// Contains reports whether t is part of the catalog.
func (c *Catalog) Contains(t Tile) bool {
	_, ok := c.index[t]
	return ok
}

// Suits lists the suits present, in precedence order.
func (c *Catalog) Suits() []Suit {
	return append([]Suit(nil), c.suits...)
}

// ForSuit returns the nine-tile slice of a single suit.
func (c *Catalog) ForSuit(s Suit) (*Catalog, error) {
	var list []Tile
	for _, t := range c.tiles {
		if t.Suit == s {
			list = append(list, t)
		}
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: suit %s not in catalog", ErrUnknownSuit, s)
	}
	return NewCatalog(list)
}
