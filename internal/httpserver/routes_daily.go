// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's Advanced game (creates or reuses session)
//   - POST /daily/guess       → submit a tile for today's game
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=)
//
// Everyone gets the same secret for a UTC date. Each owner plays once per
// day: the result is persisted on the hit and later /daily/new calls report
// played=true. Daily sessions live here rather than in the main session
// store so /game/guess cannot finish them.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/mindreader/go-server/internal/daily"
	"github.com/mindreader/go-server/internal/game"
	"github.com/mindreader/go-server/internal/tiles"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // keyed by owner|date
	mu       sync.Mutex               // guards sessions and the games in them
}

// dailySession is an in-progress daily game.
type dailySession struct {
	game  *game.Game
	date  string
	start time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	d := s.daily
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", d.handleNew)
		r.Post("/guess", d.handleGuess)
		r.Get("/leaderboard", d.handleLeaderboard)
	})
}

// sweep drops daily sessions started before cutoff or on an earlier date.
func (d *dailyServer) sweep(cutoff time.Time) int {
	today := daily.DateKey(d.srv.now())
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for k, sess := range d.sessions {
		if sess.start.Before(cutoff) || sess.date != today {
			delete(d.sessions, k)
			n++
		}
	}
	return n
}

type dailyNewRes struct {
	GameID string       `json:"gameId"`
	Date   string       `json:"date"`
	Played bool         `json:"played"`
	Tiles  []tiles.Tile `json:"tiles,omitempty"`
}

// handleNew creates or reuses the caller's session for today.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner, _ := d.srv.owner(w, r)
	now := d.srv.now()
	date := daily.DateKey(now)

	played, err := d.store.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		d.srv.fail(w, r, err)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess, ok := d.sessions[key]; ok && !sess.game.Done() {
		writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.game.ID(), Date: date, Tiles: d.srv.catalog.Tiles()})
		return
	}
	g, err := game.NewGame(game.ModeAdvanced, d.srv.catalog,
		game.WithSecret(daily.Secret(now, d.salt, d.srv.catalog)),
		game.WithClock(d.srv.now),
	)
	if err != nil {
		d.srv.fail(w, r, err)
		return
	}
	d.sessions[key] = &dailySession{game: g, date: date, start: now}
	hlog.FromRequest(r).Debug().Str("date", date).Str("gameId", g.ID()).Msg("daily session started")
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID(), Date: date, Tiles: d.srv.catalog.Tiles()})
}

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Tile   string `json:"tile"`
}

type dailyGuessRes struct {
	Event    string        `json:"event"` // feedback | terminal
	Feedback game.Feedback `json:"feedback"`
	Attempts int           `json:"attempts"`
	Score    int           `json:"score,omitempty"`
}

// handleGuess applies a tile to the caller's daily session and persists the
// result on the hit.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner, _ := d.srv.owner(w, r)

	var p dailyGuessReq
	if !decode(w, r, &p) {
		return
	}
	t, err := tiles.ParseTile(p.Tile)
	if err != nil {
		d.srv.fail(w, r, err)
		return
	}

	now := d.srv.now()
	date := daily.DateKey(now)
	key := owner + "|" + date

	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.game.ID() != p.GameID {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	fb, err := sess.game.ApplyGuess(t)
	attempts := sess.game.Attempts()
	score := sess.game.Score()
	if err == nil && fb.Exact() {
		delete(d.sessions, key)
	}
	d.mu.Unlock()
	if err != nil {
		d.srv.fail(w, r, err)
		return
	}

	res := dailyGuessRes{Event: "feedback", Feedback: fb, Attempts: attempts}
	if fb.Exact() {
		res.Event = "terminal"
		res.Score = score
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    owner,
			Date:      date,
			Tile:      t.String(),
			Attempts:  attempts,
			Score:     score,
			ElapsedMs: int(now.Sub(sess.start).Milliseconds()),
		})
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		d.srv.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
