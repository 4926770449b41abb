// Package ws streams live game updates to WebSocket clients. Clients join a
// game with /ws?game_id=<id>, receive a snapshot, and may tap through the
// socket as well as through the HTTP API.
package ws

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/room"
)

// Actions sent to clients.
const (
	ActionSnapshot = "snapshot"
	ActionTap      = "tap"
	ActionHint     = "hint"
	ActionError    = "error"
	ActionClosed   = "closed"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outgoing struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// TapRequest is the payload of a client "tap" action.
type TapRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// writeWait bounds a single socket write.
const writeWait = 5 * time.Second

// client is one socket. A connection allows only one writer at a time, so
// writes go through its own lock instead of the hub's.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(msg outgoing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Hub tracks the sockets watching each game. The hub lock guards only the
// room sets; it is never held during a socket write.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[*client]struct{}
	games  *room.Manager
	logger *log.Logger
}

// NewHub creates a hub backed by the room manager.
func NewHub(games *room.Manager, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		games:  games,
		logger: logger,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades the request and serves one client until it disconnects.
func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}
	view, err := h.games.Snapshot(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game", gameID, "error", err)
		return
	}
	h.logger.Debug("client joined", "game", gameID, "remote", conn.RemoteAddr().String())

	cl := &client{conn: conn}
	h.mu.Lock()
	if _, ok := h.rooms[gameID]; !ok {
		h.rooms[gameID] = make(map[*client]struct{})
	}
	h.rooms[gameID][cl] = struct{}{}
	h.mu.Unlock()

	defer h.remove(gameID, cl)

	h.send(cl, ActionSnapshot, view)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("client read failed", "game", gameID, "error", err)
			}
			return
		}

		switch msg.Action {
		case ActionTap:
			h.handleTap(gameID, cl, msg.Data)
		case ActionHint:
			h.handleHint(gameID, cl)
		case ActionSnapshot:
			if view, err := h.games.Snapshot(gameID); err == nil {
				h.send(cl, ActionSnapshot, view)
			} else {
				h.send(cl, ActionError, gin.H{"error": err.Error()})
			}
		default:
			h.send(cl, ActionError, gin.H{"error": "unknown action " + msg.Action})
		}
	}
}

func (h *Hub) handleTap(gameID string, cl *client, data json.RawMessage) {
	var req TapRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.send(cl, ActionError, gin.H{"error": "invalid tap"})
		return
	}

	res, err := h.games.Tap(gameID, req.Row, req.Col)
	if err != nil {
		h.send(cl, ActionError, gin.H{"error": err.Error()})
		return
	}
	h.Broadcast(gameID, ActionTap, res)
}

func (h *Hub) handleHint(gameID string, cl *client) {
	r, ok := h.games.Get(gameID)
	if !ok {
		h.send(cl, ActionError, gin.H{"error": room.ErrNotFound.Error()})
		return
	}
	h.send(cl, ActionHint, r.Hint())
}

// watchers copies the clients of a game so they can be written to unlocked.
func (h *Hub) watchers(gameID string) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*client, 0, len(h.rooms[gameID]))
	for cl := range h.rooms[gameID] {
		clients = append(clients, cl)
	}
	return clients
}

// Broadcast sends an action to every client watching a game. Clients whose
// write fails are dropped.
func (h *Hub) Broadcast(gameID, action string, data any) {
	msg := outgoing{Action: action, Data: data}
	for _, cl := range h.watchers(gameID) {
		if err := cl.write(msg); err != nil {
			h.logger.Debug("dropping client", "game", gameID, "error", err)
			h.remove(gameID, cl)
		}
	}
}

// CloseGame tells every client the game is gone and disconnects them.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	clients := h.rooms[gameID]
	delete(h.rooms, gameID)
	h.mu.Unlock()

	for cl := range clients {
		_ = cl.write(outgoing{Action: ActionClosed, Data: gin.H{"id": gameID}})
		_ = cl.conn.Close()
	}
}

// Clients returns the number of sockets watching a game.
func (h *Hub) Clients(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gameID])
}

// send writes to a single client.
func (h *Hub) send(cl *client, action string, data any) {
	if err := cl.write(outgoing{Action: action, Data: data}); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		h.logger.Debug("write failed", "error", err)
	}
}

func (h *Hub) remove(gameID string, cl *client) {
	h.mu.Lock()
	if clients, ok := h.rooms[gameID]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, gameID)
		}
	}
	h.mu.Unlock()
	_ = cl.conn.Close()
}
