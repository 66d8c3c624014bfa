// internal/httpserver/server.go
//
// HTTP server wiring for the kana match backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game creation: POST /game/new, plus the daily board under /daily.
//   - Game actions (require a game token): GET /game, POST /game/swap,
//     POST /game/settle, GET /game/hint.
//
// Notes:
//   - Each game is single-player. The token returned on creation is the only
//     way to act on a game; it carries the game ID as a signed claim.
//   - Player actions on one game are serialised by the game itself.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanamatch/internal/board"
	"github.com/robalobadob/kanamatch/internal/game"
	"github.com/robalobadob/kanamatch/internal/store"
	"github.com/robalobadob/kanamatch/internal/words"
)

// Config carries the server's tunables, filled from the environment by main.
type Config struct {
	Rows         int           // default board height
	Cols         int           // default board width
	Secret       string        // HMAC key for game tokens
	TokenTTL     time.Duration // game token lifetime
	DailySalt    string        // key for daily board seeds
	ClientOrigin string        // allowed CORS origin
}

// Server bundles router, game store and dictionary.
type Server struct {
	r     *chi.Mux
	store store.Store
	dict  *words.Dictionary
	cfg   Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict *words.Dictionary, cfg Config) *Server {
	if cfg.Rows == 0 {
		cfg.Rows = 8
	}
	if cfg.Cols == 0 {
		cfg.Cols = 8
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))   // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"kanamatch","endpoints":["/health","POST /game/new","GET /game","POST /game/swap","POST /game/settle","GET /game/hint","POST /daily/new","GET /daily/board"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		n, syms := s.dict.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"words": n, "symbols": syms, "sessions": s.store.Len()})
	})

	// --- game ---
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Group(func(r chi.Router) {
			r.Use(s.requireGame)
			r.Get("/", s.handleGetGame)
			r.Post("/swap", s.handleSwap)
			r.Post("/settle", s.handleSettle)
			r.Get("/hint", s.handleHint)
		})
	})

	// --- daily board ---
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin. Game tokens travel in the
// Authorization header, so no credentials mode is needed.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
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

func accessLog(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= 500 {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new and POST /daily/new.
type newGameReq struct {
	Rows int `json:"rows"` // optional, defaults to Config.Rows
	Cols int `json:"cols"` // optional, defaults to Config.Cols
}
type newGameRes struct {
	game.Snapshot
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewGame creates a game with a fresh random board.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Rows == 0 {
		req.Rows = s.cfg.Rows
	}
	if req.Cols == 0 {
		req.Cols = s.cfg.Cols
	}

	g, err := game.New(req.Rows, req.Cols, s.dict.Lexicon(), s.dict.Alphabet(), nil)
	if err != nil {
		if errors.Is(err, game.ErrInvalidSize) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	s.startGame(w, r, g)
}

// startGame stores g and responds with its snapshot and token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, g *game.Game) {
	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(g.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", g.ID).Int("rows", g.Rows).Int("cols", g.Cols).Str("daily", g.Daily).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{Snapshot: g.Snapshot(), Token: tok, ExpiresAt: exp})
}

// handleGetGame returns the current board.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gameFrom(r).Snapshot())
}

// swapReq/Res payloads for POST /game/swap.
type swapReq struct {
	From *board.Pos `json:"from"`
	To   *board.Pos `json:"to"`
}
type swapRes struct {
	game.Outcome
	Entries []words.Entry `json:"entries,omitempty"` // meanings of Outcome.Words
}

// handleSwap applies a swap. A swap that spells nothing is a normal
// response with accepted=false, not an error.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, http.StatusBadRequest, "from_and_to_required")
		return
	}
	g := gameFrom(r)
	out, err := g.Swap(*req.From, *req.To)
	if err != nil {
		if errors.Is(err, game.ErrOutOfBounds) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("gameId", g.ID).Msg("swap")
		writeError(w, http.StatusInternalServerError, "swap_failed")
		return
	}

	res := swapRes{Outcome: out}
	for _, kana := range out.Words {
		e, ok := s.dict.Lookup(kana)
		if !ok {
			e = words.Entry{Kana: kana}
		}
		res.Entries = append(res.Entries, e)
	}
	if out.Accepted {
		hlog.FromRequest(r).Debug().
			Str("gameId", g.ID).
			Strs("words", out.Words).
			Int("cascades", out.CascadeCount).
			Bool("regenerated", out.Regenerated).
			Msg("swap accepted")
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSettle clears the "new" flags once the client has animated a refill.
func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]board.Grid{"board": gameFrom(r).Settle()})
}

// handleHint returns one legal move, or 404 when the board has none.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	m, ok := gameFrom(r).Hint()
	if !ok {
		writeError(w, http.StatusNotFound, "no_move")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
