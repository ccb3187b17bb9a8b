// internal/records/store.go
//
// SQLite persistence for finished game records.
//
// Each record belongs to an owner: a player ID when signed in, otherwise the
// anonymous cookie ID. Records are listed newest first and can be deleted one
// at a time or all at once. The engine only writes records; reading them back
// is for the records/leaderboard endpoints.

package records

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mindreader/go-server/internal/game"
)

var ErrNotFound = errors.New("record not found")

const defaultLimit = 50

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store reads and writes the records table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r for owner.
func (s *Store) Insert(ctx context.Context, owner string, r game.Record) error {
	return insert(ctx, s.db, owner, r)
}

// InsertTx stores r inside an open transaction.
func (s *Store) InsertTx(ctx context.Context, tx *sql.Tx, owner string, r game.Record) error {
	return insert(ctx, tx, owner, r)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, ex execer, owner string, r game.Record) error {
	_, err := ex.ExecContext(ctx, `
        INSERT INTO records (id, owner_id, mode, attempt_count, score, target, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, owner, string(r.Mode), r.AttemptCount, r.Score, r.TargetDescription,
		r.Timestamp.UTC().Format(timeLayout),
	)
	return err
}

// List returns owner's records, newest first. limit <= 0 means 50.
func (s *Store) List(ctx context.Context, owner string, limit int) ([]game.Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, mode, attempt_count, score, target, created_at
        FROM records
        WHERE owner_id=?
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?`, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]game.Record, 0)
	for rows.Next() {
		var r game.Record
		var mode, created string
		if err := rows.Scan(&r.ID, &mode, &r.AttemptCount, &r.Score, &r.TargetDescription, &created); err != nil {
			return nil, err
		}
		r.Mode = game.Mode(mode)
		r.Timestamp, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes one of owner's records.
func (s *Store) Delete(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id=? AND owner_id=?`, id, owner)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every record of owner and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context, owner string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE owner_id=?`, owner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Claim moves records from one owner to another (anonymous → signed-in).
func (s *Store) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE records SET owner_id=? WHERE owner_id=?`, to, from)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	OwnerID      string    `json:"ownerId"`
	Score        int       `json:"score"`
	AttemptCount int       `json:"attemptCount"`
	Timestamp    time.Time `json:"timestamp"`
}

// Leaderboard lists the best records of a mode: score DESC, attempts ASC,
// then oldest first.
func (s *Store) Leaderboard(ctx context.Context, mode game.Mode, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT owner_id, score, attempt_count, created_at
        FROM records
        WHERE mode=?
        ORDER BY score DESC, attempt_count ASC, created_at ASC
        LIMIT ?`, string(mode), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		var created string
		if err := rows.Scan(&r.OwnerID, &r.Score, &r.AttemptCount, &created); err != nil {
			return nil, err
		}
		r.Timestamp, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ModeSummary aggregates an owner's records for one mode.
type ModeSummary struct {
	Mode       game.Mode `json:"mode"`
	Games      int       `json:"games"`
	BestScore  int       `json:"bestScore"`
	TotalScore int       `json:"totalScore"`
}

// Summary aggregates owner's records per mode, in mode order
// classic, advanced, oracle. Modes never played are omitted.
func (s *Store) Summary(ctx context.Context, owner string) ([]ModeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT mode, COUNT(1), MAX(score), SUM(score)
        FROM records
        WHERE owner_id=?
        GROUP BY mode`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMode := make(map[game.Mode]ModeSummary)
	for rows.Next() {
		var m ModeSummary
		var mode string
		if err := rows.Scan(&mode, &m.Games, &m.BestScore, &m.TotalScore); err != nil {
			return nil, err
		}
		m.Mode = game.Mode(mode)
		byMode[m.Mode] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ModeSummary, 0, len(byMode))
	for _, mode := range []game.Mode{game.ModeClassic, game.ModeAdvanced, game.ModeOracle} {
		if m, ok := byMode[mode]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
