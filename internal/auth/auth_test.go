package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindreader/go-server/internal/db"
)

func newService(t *testing.T) *Service {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewService(sqlDB, "test-secret", 24*time.Hour)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"ok", "mei_ling", "password1", nil},
		{"short username", "ab", "password1", ErrInvalidUsername},
		{"long username", "abcdefghijklmnopqrstuvwxy", "password1", ErrInvalidUsername},
		{"bad char", "mei-ling", "password1", ErrInvalidUsername},
		{"short password", "mei_ling", "pass", ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.username, tt.password), tt.want)
		})
	}
}

func TestSignupLogin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	p, err := s.Signup(ctx, "  tilefan ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "tilefan", p.Username)
	assert.NotEmpty(t, p.ID)

	_, err = s.Signup(ctx, "TileFan", "another pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := s.Login(ctx, "TILEFAN", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.Login(ctx, "tilefan", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokens(t *testing.T) {
	s := newService(t)
	p := &Player{ID: "p-1", Username: "tilefan"}

	tok, exp, err := s.Sign(p)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	c, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "p-1", c.ID)
	assert.Equal(t, "tilefan", c.Username)

	other := NewService(nil, "other-secret", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")
}

func TestBumpStats(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	p, err := s.Signup(ctx, "scorer", "password1")
	require.NoError(t, err)

	for _, score := range []int{90, 180, 40} {
		tx, err := s.db.BeginTx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, s.BumpStats(ctx, tx, p.ID, score))
		require.NoError(t, tx.Commit())
	}

	got, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.GamesPlayed)
	assert.Equal(t, 180, got.BestScore)
	assert.Equal(t, 310, got.TotalScore)

	tx, err := s.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	assert.ErrorIs(t, s.BumpStats(ctx, tx, "ghost", 10), ErrNotFound)
}
