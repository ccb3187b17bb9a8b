// internal/auth/auth.go
//
// Player accounts: signup/login with bcrypt password hashes, HS256 JWTs
// carrying id + username, and per-player aggregate stats kept alongside
// the records table.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("player not found")

	ErrInvalidUsername = errors.New("username must be 3-24 letters, numbers or underscores")
	ErrInvalidPassword = errors.New("password must be 8-100 chars")
)

// Player is a row of the players table.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	BestScore    int       `json:"bestScore"`
	TotalScore   int       `json:"totalScore"`
}

// Claims is what a token carries.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService builds a Service signing tokens with secret that live for ttl.
func NewService(db *sql.DB, secret string, ttl time.Duration) *Service {
	return &Service{db: db, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Validate enforces the username/password rules.
func Validate(username, password string) error {
	if len(username) < 3 || len(username) > 24 {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrInvalidUsername
		}
	}
	if len(password) < 8 || len(password) > 100 {
		return ErrInvalidPassword
	}
	return nil
}

// Signup creates a player.
func (s *Service) Signup(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if err := Validate(username, password); err != nil {
		return nil, err
	}
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	p := &Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Username, p.PasswordHash, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		// lost a race on the UNIQUE index
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return p, nil
}

// Login checks credentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Player, error) {
	p, err := s.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

const playerColumns = `id, username, password_hash, created_at, games_played, best_score, total_score`

func (s *Service) FindByUsername(ctx context.Context, username string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE username=?`, username)
	return scanPlayer(row)
}

func (s *Service) FindByID(ctx context.Context, id string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id=?`, id)
	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var created string
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created, &p.GamesPlayed, &p.BestScore, &p.TotalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

// Sign issues a token for p and returns it with its expiry.
func (s *Service) Sign(p *Player) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:       p.ID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// Parse verifies a token and returns its claims.
func (s *Service) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// BumpStats folds one finished game into the player's aggregates.
func (s *Service) BumpStats(ctx context.Context, tx *sql.Tx, playerID string, score int) error {
	res, err := tx.ExecContext(ctx, `
        UPDATE players
        SET games_played = games_played + 1,
            best_score   = MAX(best_score, ?),
            total_score  = total_score + ?
        WHERE id=?`, score, score, playerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
