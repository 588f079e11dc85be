// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logs, per-client rate limiting).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, GET /game, POST /game/input, POST /game/guess.
//   - Session cookie handling (see session.go) and periodic session sweeping.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the session cookie works
//     from the browser front end.
//   - Rejected guesses are normal outcomes and are answered with 200; the
//     outcome kind tells the client what happened.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-clone/internal/config"
	"github.com/robalobadob/wordle-clone/internal/dictionary"
	"github.com/robalobadob/wordle-clone/internal/game"
	"github.com/robalobadob/wordle-clone/internal/store"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server bundles the router with the game collaborators.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	store    store.Store
	words    game.TargetSource
	dict     dictionary.Checker
	limiters *limiterSet
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, words game.TargetSource, dict dictionary.Checker) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		words:    words,
		dict:     dict,
		limiters: newLimiterSet(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.HandlerTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-clone","endpoints":["/health","POST /game/new","GET /game","POST /game/input","POST /game/guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- game ---
	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.With(s.rateLimit).Post("/new", s.handleNewGame)
		r.With(s.rateLimit).Post("/input", s.handleInput)
		r.With(s.rateLimit).Post("/guess", s.handleGuess)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.cfg.HandlerTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// sweep periodically drops idle sessions and idle rate limiters.
func (s *Server) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.store.Sweep(now); n > 0 {
				log.Info().Int("removed", n).Int("live", s.store.Len()).Msg("swept idle sessions")
			}
			s.limiters.prune()
		}
	}
}

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("requestId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	Token string `json:"token"`
	boardView
}

// handleNewGame restarts the caller's game, or creates a session when the
// request carries none.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, err := s.engineFor(r)
	if err == nil {
		e.StartNewGame(ctx)
	} else {
		e = game.New(ctx, s.words, s.dict)
		if err := s.store.Save(ctx, e); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("save session")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}

	tok, err := s.issueSession(w, e.ID())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("session", e.ID()).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{Token: tok, boardView: newBoardView(e.Snapshot())})
}

// handleState returns the caller's board.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	e, err := s.engineFor(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	writeJSON(w, http.StatusOK, newBoardView(e.Snapshot()))
}

type inputReq struct {
	Text string `json:"text"`
}

type inputRes struct {
	Accepted bool   `json:"accepted"`
	Input    string `json:"input"`
}

// handleInput replaces the input buffer; rejected text leaves it unchanged.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	e, err := s.engineFor(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	res := e.UpdateInput(req.Text)
	writeJSON(w, http.StatusOK, inputRes{Accepted: res.Accepted, Input: res.Input})
}

type guessReq struct {
	Word string `json:"word"`
}

type guessRes struct {
	Outcome outcomeView `json:"outcome"`
	Board   boardView   `json:"board"`
}

// handleGuess submits the input buffer. An optional word in the body is fed
// through the input filter and submitted in one step.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	e, err := s.engineFor(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_session")
		return
	}
	var out game.Outcome
	if req.Word != "" {
		var in game.InputResult
		if in, out = e.SubmitWord(r.Context(), req.Word); !in.Accepted {
			writeError(w, http.StatusBadRequest, "invalid_input")
			return
		}
	} else {
		out = e.SubmitGuess(r.Context())
	}
	snap := e.Snapshot()
	if out.Kind == game.OutcomeAccepted && out.GameOver {
		hlog.FromRequest(r).Info().
			Str("session", snap.ID).
			Str("status", string(snap.Status)).
			Int("guesses", len(snap.Guesses)).
			Msg("game finished")
	}
	writeJSON(w, http.StatusOK, guessRes{Outcome: newOutcomeView(out), Board: newBoardView(snap)})
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
