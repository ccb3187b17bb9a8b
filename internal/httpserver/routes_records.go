package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mindreader/go-server/internal/game"
)

// mountRecords registers the record history routes. Records belong to the
// signed-in player or, for guests, to the anonymous cookie.
func (s *Server) mountRecords(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.handleListRecords)
		r.Delete("/", s.handleDeleteAllRecords)
		r.Get("/leaderboard", s.handleRecordLeaderboard)
		r.Delete("/{id}", s.handleDeleteRecord)
	})
}

func queryLimit(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return n
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.owner(w, r)
	list, err := s.records.List(r.Context(), owner, queryLimit(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.owner(w, r)
	if err := s.records.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDeleteAllRecords(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.owner(w, r)
	n, err := s.records.DeleteAll(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (s *Server) handleRecordLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, err := game.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	top, err := s.records.Leaderboard(r.Context(), mode, queryLimit(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": mode, "top": top})
}
