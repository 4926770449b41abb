package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/api/ws"
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/room"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

type tapResponse struct {
	Outcome  string         `json:"outcome"`
	Match    string         `json:"match"`
	GameOver bool           `json:"gameOver"`
	ResultID string         `json:"resultId"`
	Game     blast.Snapshot `json:"game"`
}

type testAPI struct {
	router *gin.Engine
	rooms  *room.Manager
	hub    *ws.Hub
	store  *storage.Store
}

func newTestAPI(t *testing.T, cfg config.BlastConfig, withStore bool) testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "results.db"))
		if err != nil {
			t.Fatalf("storage.Open: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	rooms := room.NewManager(cfg, store, nil)
	hub := ws.NewHub(rooms, nil)
	return testAPI{
		router: NewRouter(rooms, hub, store, nil),
		rooms:  rooms,
		hub:    hub,
		store:  store,
	}
}

func winLayout() config.BlastConfig {
	cfg := config.DefaultBlastConfig()
	cfg.Board.Layout = []string{"00", "##"}
	return cfg
}

func (a testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (a testAPI) create(t *testing.T, body string) room.View {
	t.Helper()
	w := a.do(t, http.MethodPost, "/games", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /games = %d: %s", w.Code, w.Body.String())
	}
	var v room.View
	decode(t, w, &v)
	return v
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)
	w := api.do(t, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}

func TestCreateAndGetGame(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)

	v := api.create(t, "")
	if v.ID == "" || v.Mode != "blast" || v.Difficulty != "normal" {
		t.Errorf("created = %+v", v)
	}
	if v.Game.Board.Rows != 9 || v.Game.MovesLeft != 200 {
		t.Errorf("board %d rows, %d moves", v.Game.Board.Rows, v.Game.MovesLeft)
	}

	w := api.do(t, http.MethodGet, "/games/"+v.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET = %d", w.Code)
	}
	var got room.View
	decode(t, w, &got)
	if got.ID != v.ID || got.Seed != v.Seed {
		t.Errorf("got %s/%d, want %s/%d", got.ID, got.Seed, v.ID, v.Seed)
	}

	zen := api.create(t, `{"mode":"blast_zen","difficulty":"hard","seed":5,"player":"ann"}`)
	if zen.Mode != "blast_zen" || zen.Difficulty != "hard" || zen.Seed != 5 || zen.Player != "ann" {
		t.Errorf("zen = %+v", zen)
	}

	w = api.do(t, http.MethodGet, "/games", "")
	var list struct {
		Games []room.View `json:"games"`
	}
	decode(t, w, &list)
	if len(list.Games) != 2 {
		t.Errorf("listed %d games, want 2", len(list.Games))
	}
}

func TestCreateGameErrors(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"mode":`},
		{"unknown mode", `{"mode":"tetris"}`},
		{"unknown difficulty", `{"difficulty":"nightmare"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/games", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			decode(t, w, &body)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestMissingGame(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/games/nope", ""},
		{http.MethodDelete, "/games/nope", ""},
		{http.MethodGet, "/games/nope/hint", ""},
		{http.MethodPost, "/games/nope/tap", `{"row":0,"col":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if w := api.do(t, tt.method, tt.path, tt.body); w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", w.Code)
			}
		})
	}
}

func TestTapValidation(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)
	v := api.create(t, "")

	for _, body := range []string{"", `{"row":1}`, `{"col":1}`, `not json`} {
		if w := api.do(t, http.MethodPost, "/games/"+v.ID+"/tap", body); w.Code != http.StatusBadRequest {
			t.Errorf("tap %q = %d, want 400", body, w.Code)
		}
	}
}

func TestTapToWinAndScores(t *testing.T) {
	api := newTestAPI(t, winLayout(), true)
	v := api.create(t, `{"player":"ann"}`)

	w := api.do(t, http.MethodGet, "/games/"+v.ID+"/hint", "")
	var hint room.HintView
	decode(t, w, &hint)
	if !hint.Found || hint.Row != 0 {
		t.Errorf("hint = %+v", hint)
	}

	w = api.do(t, http.MethodPost, "/games/"+v.ID+"/tap", `{"row":0,"col":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("tap = %d: %s", w.Code, w.Body.String())
	}
	var res tapResponse
	decode(t, w, &res)
	if res.Outcome != "cleared" || !res.GameOver || res.Game.State != blast.StateWon {
		t.Errorf("tap result = %+v", res)
	}
	if res.ResultID == "" {
		t.Error("winning tap should save a result")
	}

	if w := api.do(t, http.MethodPost, "/games/"+v.ID+"/tap", `{"row":0,"col":1}`); w.Code != http.StatusConflict {
		t.Errorf("tap after the end = %d, want 409", w.Code)
	}

	w = api.do(t, http.MethodGet, "/scores?game=blast&limit=5", "")
	var scores struct {
		Game    string           `json:"game"`
		Results []storage.Result `json:"results"`
	}
	decode(t, w, &scores)
	if len(scores.Results) != 1 || scores.Results[0].Score != 1017 || scores.Results[0].Source != "api" {
		t.Errorf("scores = %+v", scores)
	}

	w = api.do(t, http.MethodGet, "/scores/"+res.ResultID, "")
	if w.Code != http.StatusOK {
		t.Errorf("GET result = %d", w.Code)
	}
	if w := api.do(t, http.MethodGet, "/scores/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET missing result = %d, want 404", w.Code)
	}

	w = api.do(t, http.MethodGet, "/stats", "")
	var stats struct {
		Games map[string]storage.GameStats `json:"games"`
	}
	decode(t, w, &stats)
	if s := stats.Games["blast"]; s.GamesCount != 1 || s.Wins != 1 {
		t.Errorf("stats = %+v", stats.Games)
	}
}

func TestScoresErrors(t *testing.T) {
	disabled := newTestAPI(t, config.DefaultBlastConfig(), false)
	if w := disabled.do(t, http.MethodGet, "/scores", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("scores without store = %d, want 503", w.Code)
	}

	api := newTestAPI(t, config.DefaultBlastConfig(), true)
	for _, q := range []string{"limit=0", "limit=-3", "limit=abc"} {
		if w := api.do(t, http.MethodGet, "/scores?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("scores?%s = %d, want 400", q, w.Code)
		}
	}

	w := api.do(t, http.MethodGet, "/scores", "")
	var empty struct {
		Game    string           `json:"game"`
		Results []storage.Result `json:"results"`
	}
	decode(t, w, &empty)
	if empty.Game != "blast" || empty.Results == nil || len(empty.Results) != 0 {
		t.Errorf("empty scores = %s", w.Body.String())
	}
}

func TestDeleteGame(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)
	v := api.create(t, "")

	if w := api.do(t, http.MethodDelete, "/games/"+v.ID, ""); w.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", w.Code)
	}
	if w := api.do(t, http.MethodGet, "/games/"+v.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", w.Code)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestWebSocketStreamsTaps(t *testing.T) {
	api := newTestAPI(t, winLayout(), false)
	v := api.create(t, "")

	srv := httptest.NewServer(api.router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game_id=" + v.ID

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if msg := readMessage(t, conn); msg.Action != ws.ActionSnapshot {
		t.Fatalf("first message = %q, want snapshot", msg.Action)
	}
	if api.hub.Clients(v.ID) != 1 {
		t.Errorf("clients = %d, want 1", api.hub.Clients(v.ID))
	}

	if err := conn.WriteJSON(map[string]any{"action": "hint"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	msg := readMessage(t, conn)
	var hint room.HintView
	if err := json.Unmarshal(msg.Data, &hint); err != nil || msg.Action != ws.ActionHint || !hint.Found {
		t.Fatalf("hint message = %s %s", msg.Action, msg.Data)
	}

	if err := conn.WriteJSON(map[string]any{"action": "tap", "data": map[string]int{"row": 0, "col": 0}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	msg = readMessage(t, conn)
	if msg.Action != ws.ActionTap {
		t.Fatalf("action = %q, want tap", msg.Action)
	}
	var res tapResponse
	if err := json.Unmarshal(msg.Data, &res); err != nil {
		t.Fatalf("decode tap: %v", err)
	}
	if !res.GameOver || res.Game.State != blast.StateWon {
		t.Errorf("broadcast = %+v, want a won game", res)
	}

	if err := conn.WriteJSON(map[string]any{"action": "tap", "data": map[string]int{"row": 0, "col": 0}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if msg := readMessage(t, conn); msg.Action != ws.ActionError {
		t.Errorf("tap after the end = %q, want error", msg.Action)
	}
}

func TestWebSocketRejectsUnknownGame(t *testing.T) {
	api := newTestAPI(t, config.DefaultBlastConfig(), false)

	if w := api.do(t, http.MethodGet, "/ws", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing game_id = %d, want 400", w.Code)
	}
	if w := api.do(t, http.MethodGet, "/ws?game_id=nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown game = %d, want 404", w.Code)
	}
}
