// internal/daily/daily.go
//
// Daily challenge: every player gets the same Advanced-mode secret for a
// given UTC date. The secret index is HMAC-SHA256(salt, YYYY-MM-DD) modulo
// the catalog size, so it is stable for the day and unguessable without the
// salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/mindreader/go-server/internal/tiles"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index in [0, n) for a date.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret returns the day's tile from catalog.
func Secret(date time.Time, salt string, catalog *tiles.Catalog) tiles.Tile {
	return catalog.At(Index(date, salt, catalog.Len()))
}

// Source is a game.Source that always draws the day's index, so a session
// built with it picks the daily secret.
type Source struct {
	Date time.Time
	Salt string
}

// IntN implements game.Source.
func (s Source) IntN(n int) int { return Index(s.Date, s.Salt, n) }
