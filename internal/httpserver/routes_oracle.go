// internal/httpserver/routes_oracle.go
//
// Oracle sessions, where the server does the deducing:
//   - POST /oracle/new      → first question
//   - POST /oracle/answer   {gameId, yes} → next question, or the reveal
//   - POST /oracle/confirm  {gameId, correct} → terminal event with record
//
// Answers that leave no candidate discard the session and answer 409
// contradictory_answers; the player has to start over.

package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/mindreader/go-server/internal/game"
	"github.com/mindreader/go-server/internal/tiles"
)

func (s *Server) mountOracle(r chi.Router) {
	r.Post("/oracle/new", func(w http.ResponseWriter, r *http.Request) { s.startOracle(w, r) })
	r.Post("/oracle/answer", s.handleAnswer)
	r.Post("/oracle/confirm", s.handleConfirm)
}

type questionView struct {
	game.Question
	Text string `json:"text"`
}

// stepRes is a question event, a reveal event, or a terminal event.
type stepRes struct {
	GameID    string        `json:"gameId"`
	Event     string        `json:"event"` // question | reveal | terminal
	Question  *questionView `json:"question,omitempty"`
	Guess     *tiles.Tile   `json:"guess,omitempty"`
	Fallback  bool          `json:"fallback,omitempty"`
	Count     int           `json:"count"`
	Remaining int           `json:"remaining"`
	Record    *game.Record  `json:"record,omitempty"`
}

func stepView(o *game.Oracle) stepRes {
	st := o.Current()
	res := stepRes{
		GameID:    o.ID(),
		Count:     st.Count,
		Remaining: st.Remaining,
		Guess:     st.Guess,
	}
	switch {
	case st.Question != nil:
		res.Event = "question"
		res.Question = &questionView{Question: *st.Question, Text: st.Question.Text()}
	case o.Done():
		res.Event = "terminal"
	default:
		res.Event = "reveal"
		res.Fallback = o.Fallback()
	}
	if rec, ok := o.Record(); ok {
		res.Record = &rec
	}
	return res
}

func (s *Server) startOracle(w http.ResponseWriter, r *http.Request) {
	s.play.Lock()
	o, err := game.NewOracle(s.catalog, s.sessionOpts()...)
	s.play.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), o); err != nil {
		s.fail(w, r, err)
		return
	}
	s.ensureAnonID(w, r)
	hlog.FromRequest(r).Debug().Str("gameId", o.ID()).Msg("oracle session started")
	writeJSON(w, http.StatusOK, stepView(o))
}

type answerReq struct {
	GameID string `json:"gameId"`
	Yes    *bool  `json:"yes"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if !decode(w, r, &req) {
		return
	}
	if req.Yes == nil {
		writeError(w, http.StatusBadRequest, "missing_answer")
		return
	}

	s.play.Lock()
	o, err := s.getOracle(r.Context(), req.GameID)
	var res stepRes
	if err == nil {
		if _, err = o.Answer(*req.Yes); err == nil {
			res = stepView(o)
			err = s.store.Save(r.Context(), o)
		} else if errors.Is(err, game.ErrContradiction) {
			_ = s.store.Delete(r.Context(), o.ID())
		}
	}
	s.play.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type confirmReq struct {
	GameID  string `json:"gameId"`
	Correct *bool  `json:"correct"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmReq
	if !decode(w, r, &req) {
		return
	}
	if req.Correct == nil {
		writeError(w, http.StatusBadRequest, "missing_answer")
		return
	}

	s.play.Lock()
	o, err := s.getOracle(r.Context(), req.GameID)
	var res stepRes
	var rec game.Record
	if err == nil {
		if rec, err = o.Confirm(*req.Correct); err == nil {
			res = stepView(o)
			err = s.store.Save(r.Context(), o)
		}
	}
	s.play.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	owner, me := s.owner(w, r)
	s.persist(r, owner, me, rec)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getOracle(ctx context.Context, id string) (*game.Oracle, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	o, ok := sess.(*game.Oracle)
	if !ok {
		return nil, errWrongMode
	}
	return o, nil
}
