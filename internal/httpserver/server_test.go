package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/kanamatch/internal/board"
	"github.com/robalobadob/kanamatch/internal/lexicon"
	"github.com/robalobadob/kanamatch/internal/store"
	"github.com/robalobadob/kanamatch/internal/words"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	dict, err := words.New([]words.Entry{
		{Kana: "あい", Romaji: "ai", English: "love"},
		{Kana: "いう", Romaji: "iu", English: "to say"},
	}, []lexicon.Symbol{"あ", "い", "う", "え", "お", "か", "き", "く"})
	if err != nil {
		t.Fatalf("words.New: %v", err)
	}
	st, err := store.NewMemoryStore(16)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	srv := New(st, dict, Config{Rows: 6, Cols: 6, Secret: testSecret, TokenTTL: time.Hour, DailySalt: "salt"})
	return srv, st
}

func do(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type newGameBody struct {
	GameID string     `json:"gameId"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Daily  string     `json:"daily"`
	Token  string     `json:"token"`
	Board  board.Grid `json:"board"`
}

// startFixedGame creates a game through the API and replaces its board.
func startFixedGame(t *testing.T, srv *Server, st store.Store, grid [][]string) string {
	t.Helper()
	body := `{"rows":` + strconv.Itoa(len(grid)) + `,"cols":` + strconv.Itoa(len(grid[0])) + `}`
	rec := do(t, srv, http.MethodPost, "/game/new", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /game/new = %d %s", rec.Code, rec.Body)
	}
	res := decode[newGameBody](t, rec)
	g, err := st.Get(context.Background(), res.GameID)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	g.Board = board.FromSymbols(grid)
	return res.Token
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	res := decode[map[string]string](t, rec)
	if res["error"] != "not_found" {
		t.Errorf("body = %v", res)
	}
}

func TestDebugWords(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/debug/words", "", "")
	res := decode[map[string]int](t, rec)
	if res["words"] != 2 || res["symbols"] != 8 {
		t.Errorf("body = %v", res)
	}
}

func TestNewGame(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/game/new", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	res := decode[newGameBody](t, rec)
	if res.GameID == "" || res.Token == "" {
		t.Fatalf("missing id or token: %+v", res)
	}
	if res.Rows != 6 || res.Cols != 6 || res.Board.Rows() != 6 || res.Board.Cols() != 6 {
		t.Errorf("board is %dx%d, want 6x6", res.Board.Rows(), res.Board.Cols())
	}
	if st.Len() != 1 {
		t.Errorf("store holds %d games, want 1", st.Len())
	}

	rec = do(t, srv, http.MethodPost, "/game/new", "", `{"rows":3,"cols":4}`)
	res = decode[newGameBody](t, rec)
	if res.Board.Rows() != 3 || res.Board.Cols() != 4 {
		t.Errorf("board is %dx%d, want 3x4", res.Board.Rows(), res.Board.Cols())
	}
}

func TestNewGameRejectsBadSize(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, body := range []string{`{"rows":1}`, `{"cols":17}`, `{"rows":-3}`} {
		rec := do(t, srv, http.MethodPost, "/game/new", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestNewGameRejectsMalformedBody(t *testing.T) {
	srv, st := newTestServer(t)
	for _, body := range []string{`{"rows":"x"}`, `{`, `[1,2]`} {
		rec := do(t, srv, http.MethodPost, "/game/new", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
			continue
		}
		if res := decode[map[string]string](t, rec); res["error"] != "bad_json" {
			t.Errorf("%s: body = %v", body, res)
		}
	}
	if st.Len() != 0 {
		t.Errorf("store holds %d games, want 0", st.Len())
	}
}

func TestGameRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	if rec := do(t, srv, http.MethodGet, "/game", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/game", "garbage", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"gid": "x"}).SignedString([]byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, srv, http.MethodGet, "/game", forged, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rec.Code)
	}

	unknown, _, err := srv.signGameToken("no-such-game")
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, srv, http.MethodGet, "/game", unknown, ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown game: status = %d, want 404", rec.Code)
	}
}

func TestExpiredToken(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.cfg.TokenTTL = -time.Minute
	tok, _, err := srv.signGameToken("g")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := srv.parseGameToken(tok); err == nil {
		t.Error("expired token accepted")
	}
}

func TestGetGame(t *testing.T) {
	srv, st := newTestServer(t)
	grid := [][]string{{"い", "あ", "え"}, {"お", "か", "き"}}
	tok := startFixedGame(t, srv, st, grid)

	rec := do(t, srv, http.MethodGet, "/game", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	res := decode[newGameBody](t, rec)
	if diff := cmp.Diff(grid, res.Board.Symbols()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

type swapBody struct {
	Accepted     bool          `json:"accepted"`
	Words        []string      `json:"words"`
	Entries      []words.Entry `json:"entries"`
	Swapped      board.Grid    `json:"swapped"`
	Board        board.Grid    `json:"board"`
	CascadeCount int           `json:"cascadeCount"`
}

func TestSwap(t *testing.T) {
	srv, st := newTestServer(t)
	tok := startFixedGame(t, srv, st, [][]string{{"い", "あ", "え"}, {"お", "か", "き"}})

	t.Run("bad json", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/game/swap", tok, `{`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing positions", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/game/swap", tok, `{"from":{"r":0,"c":0}}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("off board", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/game/swap", tok, `{"from":{"r":0,"c":2},"to":{"r":0,"c":3}}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("no word", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/game/swap", tok, `{"from":{"r":0,"c":1},"to":{"r":0,"c":2}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d %s", rec.Code, rec.Body)
		}
		if res := decode[swapBody](t, rec); res.Accepted {
			t.Errorf("swap accepted: %+v", res)
		}
	})

	t.Run("accepted", func(t *testing.T) {
		rec := do(t, srv, http.MethodPost, "/game/swap", tok, `{"from":{"r":0,"c":0},"to":{"r":0,"c":1}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d %s", rec.Code, rec.Body)
		}
		res := decode[swapBody](t, rec)
		if !res.Accepted {
			t.Fatalf("swap rejected: %s", rec.Body)
		}
		if diff := cmp.Diff([]string{"あい"}, res.Words); diff != "" {
			t.Errorf("words mismatch (-want +got):\n%s", diff)
		}
		if len(res.Entries) != 1 || res.Entries[0].English != "love" {
			t.Errorf("entries = %+v", res.Entries)
		}
		want := [][]string{{"あ", "い", "え"}, {"お", "か", "き"}}
		if diff := cmp.Diff(want, res.Swapped.Symbols()); diff != "" {
			t.Errorf("swapped board mismatch (-want +got):\n%s", diff)
		}
		if res.Board.Rows() != 2 || res.Board.Cols() != 3 {
			t.Errorf("board is %dx%d", res.Board.Rows(), res.Board.Cols())
		}
	})

	t.Run("moves counted", func(t *testing.T) {
		res := decode[map[string]any](t, do(t, srv, http.MethodGet, "/game", tok, ""))
		if res["moves"] != float64(1) {
			t.Errorf("moves = %v, want 1", res["moves"])
		}
	})
}

func TestSettle(t *testing.T) {
	srv, st := newTestServer(t)
	tok := startFixedGame(t, srv, st, [][]string{{"い", "あ", "え"}, {"お", "か", "き"}})
	do(t, srv, http.MethodPost, "/game/swap", tok, `{"from":{"r":0,"c":0},"to":{"r":0,"c":1}}`)

	rec := do(t, srv, http.MethodPost, "/game/settle", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	res := decode[map[string]board.Grid](t, rec)
	for _, row := range res["board"] {
		for _, tile := range row {
			if tile.IsNew {
				t.Fatalf("tile %s still new after settle", tile.ID)
			}
		}
	}
}

func TestHint(t *testing.T) {
	srv, st := newTestServer(t)

	tok := startFixedGame(t, srv, st, [][]string{{"い", "あ", "え"}, {"お", "か", "き"}})
	rec := do(t, srv, http.MethodGet, "/game/hint", tok, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	m := decode[board.Move](t, rec)
	want := board.Move{From: board.Pos{R: 0, C: 0}, To: board.Pos{R: 0, C: 1}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("hint mismatch (-want +got):\n%s", diff)
	}

	dead := startFixedGame(t, srv, st, [][]string{{"え", "お", "か"}, {"き", "く", "え"}})
	if rec := do(t, srv, http.MethodGet, "/game/hint", dead, ""); rec.Code != http.StatusNotFound {
		t.Errorf("dead board: status = %d, want 404", rec.Code)
	}
}

func TestDaily(t *testing.T) {
	srv, _ := newTestServer(t)

	a := decode[dailyBoardRes](t, do(t, srv, http.MethodGet, "/daily/board", "", ""))
	b := decode[dailyBoardRes](t, do(t, srv, http.MethodGet, "/daily/board", "", ""))
	if a.Date == "" {
		t.Fatal("missing date")
	}
	if diff := cmp.Diff(a.Kana, b.Kana); diff != "" {
		t.Errorf("daily board not stable (-first +second):\n%s", diff)
	}

	rec := do(t, srv, http.MethodPost, "/daily/new", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	res := decode[newGameBody](t, rec)
	if res.Daily != a.Date {
		t.Errorf("daily = %q, want %q", res.Daily, a.Date)
	}
	if diff := cmp.Diff(a.Kana, res.Board.Symbols()); diff != "" {
		t.Errorf("daily game board differs from preview (-want +got):\n%s", diff)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodOptions, "/game/swap", "", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}
}
