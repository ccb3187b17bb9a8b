package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed tiles.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// TileLines returns the embedded default catalog, one tile per line.
func TileLines() ([]string, error) {
	f, err := FS.Open("tiles.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}
