package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mindreader/go-server/internal/auth"
)

// mountAuthRoutes registers authentication and gated routes (/auth/*, /stats/me).
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r))
	})
	s.r.With(s.requireAuth).Get("/stats/me", s.handleStats)
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if !decode(w, r, &body) {
		return
	}
	p, err := s.auth.Signup(r.Context(), body.Username, body.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.signIn(w, r, p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if !decode(w, r, &body) {
		return
	}
	p, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.signIn(w, r, p)
}

// signIn sets the auth cookie and moves any anonymous records to the player.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, p *auth.Player) {
	tok, exp, err := s.auth.Sign(p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.setAuthCookie(w, tok, exp)
	if err := s.records.Claim(r.Context(), anonID(r), p.ID); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("claim anonymous records")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        p.ID,
		"username":  p.Username,
		"createdAt": p.CreatedAt,
		"token":     tok,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	p, err := s.auth.FindByID(r.Context(), me.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	modes, err := s.records.Summary(r.Context(), me.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          p.ID,
		"username":    p.Username,
		"gamesPlayed": p.GamesPlayed,
		"bestScore":   p.BestScore,
		"totalScore":  p.TotalScore,
		"modes":       modes,
	})
}
