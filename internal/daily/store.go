package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily challenge.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Tile      string `json:"tile"`
	Attempts  int    `json:"attempts"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r; a second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (user_id, date, tile, attempts, score, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Date, r.Tile, r.Attempts, r.Score, r.ElapsedMs,
	)
	return err
}

// LBRow is one daily leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Attempts  int    `json:"attempts"`
	Score     int    `json:"score"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard ranks a date's results: fewest attempts, then fastest, then
// earliest submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, attempts, score, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY attempts ASC, elapsed_ms ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Attempts, &r.Score, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
