package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/room"
)

func newTestHub(t *testing.T) (*Hub, *room.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	games := room.NewManager(config.DefaultBlastConfig(), nil, nil)
	hub := NewHub(games, nil)
	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, games, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game_id="
}

func join(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if msg := read(t, conn); msg.Action != ActionSnapshot {
		t.Fatalf("first message = %q, want snapshot", msg.Action)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestStalledWriteDoesNotBlockOtherGames(t *testing.T) {
	hub, games, base := newTestHub(t)
	slow, err := games.Create(room.CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	fast, err := games.Create(room.CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	join(t, base+slow.ID)
	conn := join(t, base+fast.ID)

	stalled := hub.watchers(slow.ID)
	if len(stalled) != 1 {
		t.Fatalf("watchers = %d, want 1", len(stalled))
	}
	// Hold the slow client's writer as if a write to it were in flight.
	stalled[0].mu.Lock()
	defer stalled[0].mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Broadcast(fast.ID, ActionClosed, gin.H{"id": fast.ID})
		if n := hub.Clients(slow.ID); n != 1 {
			t.Errorf("clients = %d, want 1", n)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub blocked behind another game's write")
	}
	if msg := read(t, conn); msg.Action != ActionClosed {
		t.Errorf("action = %q, want %q", msg.Action, ActionClosed)
	}
}

func TestCloseGameDisconnectsClients(t *testing.T) {
	hub, games, base := newTestHub(t)
	r, err := games.Create(room.CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	conn := join(t, base+r.ID)

	hub.CloseGame(r.ID)
	if msg := read(t, conn); msg.Action != ActionClosed {
		t.Errorf("action = %q, want %q", msg.Action, ActionClosed)
	}
	if n := hub.Clients(r.ID); n != 0 {
		t.Errorf("clients = %d, want 0", n)
	}
}
