// internal/httpserver/server.go
//
// HTTP server wiring for the Mindreader backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON content type, credentialed CORS).
//   - Public endpoints: "/", "/health", "/catalog".
//   - Deduction endpoints (optional auth): /game/*, /oracle/*.
//   - Daily challenge endpoints (optional auth): mounted under /daily.
//   - Auth, records and stats endpoints: /auth/*, /records*, /stats/me.
//   - Finished sessions are persisted as records owned by the player or by
//     the anonymous cookie.
//
// Live sessions stay in the store.Store between requests and are swept once
// idle for longer than SESSION_TTL.

package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/mindreader/go-server/internal/auth"
	"github.com/mindreader/go-server/internal/config"
	"github.com/mindreader/go-server/internal/game"
	"github.com/mindreader/go-server/internal/records"
	"github.com/mindreader/go-server/internal/store"
	"github.com/mindreader/go-server/internal/tiles"
)

// Server bundles the router with the session store and persistence.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	catalog *tiles.Catalog
	store   store.Store
	db      *sql.DB
	records *records.Store
	auth    *auth.Service
	daily   *dailyServer

	// play serialises mutations of live sessions, which are not safe for
	// concurrent use.
	play sync.Mutex

	src game.Source
	now func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithSource fixes the randomness handed to new sessions. The source is
// shared, so it is only used under the play lock.
func WithSource(src game.Source) Option { return func(s *Server) { s.src = src } }

// WithClock sets the clock for records, daily dates and sweeping.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, catalog *tiles.Catalog, st store.Store, db *sql.DB, opts ...Option) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		catalog: catalog,
		store:   st,
		db:      db,
		records: records.NewStore(db),
		auth:    auth.NewService(db, cfg.JWTSecret, cfg.TokenTTL()),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "mindreader-go",
			"endpoints": []string{
				"/health", "/catalog",
				"POST /game/new", "POST /game/guess", "DELETE /game/{id}",
				"POST /oracle/new", "POST /oracle/answer", "POST /oracle/confirm",
				"/daily/*", "/auth/*", "/records", "/stats/me",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/catalog", s.handleCatalog)

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		s.mountGame(r)
		s.mountOracle(r)
		s.mountDaily(r)
		s.mountRecords(r)
	})
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Sweep drops sessions idle for longer than the configured TTL.
func (s *Server) Sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)
	n := s.store.Sweep(ctx, cutoff) + s.daily.sweep(cutoff)
	if n > 0 {
		log.Debug().Int("removed", n).Msg("swept idle sessions")
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}

// sessionOpts are the game options every new session gets.
func (s *Server) sessionOpts() []game.Option {
	opts := []game.Option{game.WithClock(s.now)}
	if s.src != nil {
		opts = append(opts, game.WithSource(s.src))
	}
	return opts
}

// intn draws from the server source, or a fresh one when none is set.
func (s *Server) intn(n int) int {
	if s.src != nil {
		return s.src.IntN(n)
	}
	return game.NewSource().IntN(n)
}

// ------------------------------ catalog -------------------------------------

type catalogRes struct {
	Suits []tiles.Suit `json:"suits"`
	Tiles []tiles.Tile `json:"tiles"`
}

// handleCatalog lists the tiles, optionally restricted to ?suit=.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog
	if q := r.URL.Query().Get("suit"); q != "" {
		suit, err := tiles.ParseSuit(q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if cat, err = s.catalog.ForSuit(suit); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, catalogRes{Suits: cat.Suits(), Tiles: cat.Tiles()})
}
