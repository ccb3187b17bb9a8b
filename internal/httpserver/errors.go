package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mindreader/go-server/internal/auth"
	"github.com/mindreader/go-server/internal/game"
	"github.com/mindreader/go-server/internal/records"
	"github.com/mindreader/go-server/internal/store"
	"github.com/mindreader/go-server/internal/tiles"
)

// errWrongMode is returned when a session ID refers to the other kind of
// session (e.g. an Oracle ID sent to /game/guess).
var errWrongMode = errors.New("session belongs to another mode")

// errorCodes maps sentinel errors to a status and a stable JSON code.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{store.ErrNotFound, http.StatusNotFound, "session_not_found"},
	{records.ErrNotFound, http.StatusNotFound, "record_not_found"},
	{errWrongMode, http.StatusConflict, "wrong_mode"},
	{game.ErrSessionFinished, http.StatusConflict, "session_finished"},
	{game.ErrContradiction, http.StatusConflict, "contradictory_answers"},
	{game.ErrNotAsking, http.StatusConflict, "no_question_pending"},
	{game.ErrNotGuessing, http.StatusConflict, "no_guess_pending"},
	{game.ErrTileNotInCatalog, http.StatusBadRequest, "tile_not_in_catalog"},
	{game.ErrUnsupportedMode, http.StatusBadRequest, "unsupported_mode"},
	{tiles.ErrUnknownSuit, http.StatusBadRequest, "unknown_suit"},
	{tiles.ErrInvalidNumber, http.StatusBadRequest, "invalid_tile"},
	{tiles.ErrInvalidTile, http.StatusBadRequest, "invalid_tile"},
	{auth.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "unauthorized"},
	{auth.ErrInvalidUsername, http.StatusBadRequest, "invalid_username"},
	{auth.ErrInvalidPassword, http.StatusBadRequest, "invalid_password"},
}

// fail writes the JSON error for err. Unknown errors are logged and become 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code)
			return
		}
	}
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decode reads a JSON body into v, answering 400 bad_json on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
