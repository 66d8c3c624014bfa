// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Board" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new   → start a game on today's board
//   - GET  /daily/board → preview today's starting board
//
// Everyone gets the same starting board for a UTC date; refills are drawn
// from the same seeded source, so identical move sequences play out
// identically. Board size is fixed to the server defaults.

package httpserver

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/kanamatch/internal/board"
	"github.com/robalobadob/kanamatch/internal/daily"
	"github.com/robalobadob/kanamatch/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv  *Server
	salt string
	now  func() time.Time // replaced in tests
}

// mountDaily registers /daily routes on the given router.
func (s *Server) mountDaily(r chi.Router) {
	ds := &dailyServer{srv: s, salt: s.cfg.DailySalt, now: time.Now}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", ds.handleNew)
		r.Get("/board", ds.handleBoard)
	})
}

// newGame builds today's game from the date-derived seed.
func (ds *dailyServer) newGame() (*game.Game, error) {
	now := ds.now()
	s1, s2 := daily.Seed(now, ds.salt)
	rnd := rand.New(rand.NewPCG(s1, s2))
	cfg := ds.srv.cfg
	g, err := game.New(cfg.Rows, cfg.Cols, ds.srv.dict.Lexicon(), ds.srv.dict.Alphabet(), rnd)
	if err != nil {
		return nil, err
	}
	g.Daily = daily.DateKey(now)
	return g, nil
}

// handleNew starts a session on today's board.
func (ds *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	g, err := ds.newGame()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily new")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	ds.srv.startGame(w, r, g)
}

// dailyBoardRes is the payload for GET /daily/board.
type dailyBoardRes struct {
	Date  string     `json:"date"`
	Kana  [][]string `json:"kana"`
	Board board.Grid `json:"board"`
}

// handleBoard returns today's starting board without creating a session.
// Tile IDs differ between calls; the symbols do not.
func (ds *dailyServer) handleBoard(w http.ResponseWriter, r *http.Request) {
	g, err := ds.newGame()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily board")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	snap := g.Snapshot()
	writeJSON(w, http.StatusOK, dailyBoardRes{Date: snap.Daily, Kana: snap.Board.Symbols(), Board: snap.Board})
}
