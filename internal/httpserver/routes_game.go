// internal/httpserver/routes_game.go
//
// Classic and Advanced sessions:
//   - POST   /game/new    {mode, suit?} → session ID and the tiles in play
//   - POST   /game/guess  {gameId, tile} → feedback, or terminal on a hit
//   - DELETE /game/{id}   → discard any live session (reset)
//
// A finished session stays in the store (so further guesses get
// session_finished) until swept; its record is written once, at the hit.

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/mindreader/go-server/internal/game"
	"github.com/mindreader/go-server/internal/tiles"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Delete("/game/{id}", s.handleReset)
}

type newGameReq struct {
	Mode string `json:"mode"`
	Suit string `json:"suit"` // classic only; random when empty
}

type newGameRes struct {
	GameID string       `json:"gameId"`
	Mode   game.Mode    `json:"mode"`
	Label  string       `json:"label"`
	Suit   tiles.Suit   `json:"suit,omitempty"`
	Tiles  []tiles.Tile `json:"tiles"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decode(w, r, &req) {
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if mode == game.ModeOracle {
		s.startOracle(w, r)
		return
	}

	cat := s.catalog
	var suit tiles.Suit
	if mode == game.ModeClassic {
		s.play.Lock()
		suit, err = s.classicSuit(req.Suit)
		s.play.Unlock()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if cat, err = s.catalog.ForSuit(suit); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	s.play.Lock()
	g, err := game.NewGame(mode, cat, s.sessionOpts()...)
	s.play.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		s.fail(w, r, err)
		return
	}
	s.ensureAnonID(w, r)

	hlog.FromRequest(r).Debug().Str("gameId", g.ID()).Str("mode", string(mode)).Msg("session started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID: g.ID(),
		Mode:   mode,
		Label:  mode.Label(),
		Suit:   suit,
		Tiles:  cat.Tiles(),
	})
}

// classicSuit resolves the requested suit, drawing one when empty.
func (s *Server) classicSuit(raw string) (tiles.Suit, error) {
	if raw != "" {
		return tiles.ParseSuit(raw)
	}
	suits := s.catalog.Suits()
	return suits[s.intn(len(suits))], nil
}

type guessReq struct {
	GameID string `json:"gameId"`
	Tile   string `json:"tile"`
}

// guessRes is a feedback event, or a terminal event once the secret is hit.
type guessRes struct {
	Event     string         `json:"event"` // feedback | terminal
	Feedback  game.Feedback  `json:"feedback"`
	Attempts  int            `json:"attempts"`
	Status    game.Status    `json:"status"`
	Knowledge game.Knowledge `json:"knowledge"`
	Record    *game.Record   `json:"record,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	t, err := tiles.ParseTile(req.Tile)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.play.Lock()
	g, err := s.getGame(r.Context(), req.GameID)
	var fb game.Feedback
	if err == nil {
		fb, err = g.ApplyGuess(t)
	}
	var res guessRes
	if err == nil {
		res = guessRes{
			Event:     "feedback",
			Feedback:  fb,
			Attempts:  g.Attempts(),
			Status:    g.Status(),
			Knowledge: g.Knowledge(),
		}
		if rec, ok := g.Record(); ok {
			res.Event = "terminal"
			res.Record = &rec
		}
		err = s.store.Save(r.Context(), g)
	}
	s.play.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if res.Record != nil {
		owner, me := s.owner(w, r)
		s.persist(r, owner, me, *res.Record)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getGame(ctx context.Context, id string) (*game.Game, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g, ok := sess.(*game.Game)
	if !ok {
		return nil, errWrongMode
	}
	return g, nil
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// persist writes a finished record and, for players, bumps their aggregate
// stats in the same transaction. Failures are logged; the player still sees
// their result.
func (s *Server) persist(r *http.Request, owner string, me *authUser, rec game.Record) {
	logger := hlog.FromRequest(r)
	ctx := r.Context()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("begin record tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.records.InsertTx(ctx, tx, owner, rec); err != nil {
		logger.Warn().Err(err).Str("record", rec.ID).Msg("insert record")
		return
	}
	if me != nil {
		if err := s.auth.BumpStats(ctx, tx, me.ID, rec.Score); err != nil {
			logger.Warn().Err(err).Str("player", me.ID).Msg("bump stats")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Msg("commit record")
	}
}
