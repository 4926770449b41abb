package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-blast/internal/api/ws"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/room"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// ListGamesHandler returns every live game.
func ListGamesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := rm.List()
		views := make([]room.View, 0, len(rooms))
		for _, r := range rooms {
			views = append(views, r.View())
		}
		c.JSON(http.StatusOK, gin.H{"games": views})
	}
}

// CreateGameHandler starts a game. An empty body creates a classic game on
// normal difficulty.
func CreateGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		r, err := rm.Create(room.CreateOptions{
			Mode:       req.Mode,
			Difficulty: req.Difficulty,
			Player:     req.Player,
			Seed:       req.Seed,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, r.View())
	}
}

// GetGameHandler returns one game.
func GetGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := rm.Snapshot(c.Param("id"))
		if err != nil {
			writeRoomError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DeleteGameHandler drops a game and disconnects its watchers.
func DeleteGameHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !rm.Delete(id) {
			writeRoomError(c, room.ErrNotFound)
			return
		}
		hub.CloseGame(id)
		c.Status(http.StatusNoContent)
	}
}

// TapHandler plays a cell, settles the cascade and broadcasts the result.
func TapHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TapRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Row == nil || req.Col == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col required"})
			return
		}

		id := c.Param("id")
		res, err := rm.Tap(id, *req.Row, *req.Col)
		if err != nil {
			writeRoomError(c, err)
			return
		}
		hub.Broadcast(id, ws.ActionTap, res)
		c.JSON(http.StatusOK, res)
	}
}

// HintHandler suggests a cell to tap.
func HintHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := rm.Get(c.Param("id"))
		if !ok {
			writeRoomError(c, room.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, r.Hint())
	}
}

// ScoresHandler lists the best results for a mode.
func ScoresHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are disabled"})
			return
		}

		gameID := c.DefaultQuery("game", string(blast.ModeClassic))
		limit := defaultScoreLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = min(n, maxScoreLimit)
		}

		results, err := store.TopResults(gameID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if results == nil {
			results = []storage.Result{}
		}
		c.JSON(http.StatusOK, gin.H{"game": gameID, "results": results})
	}
}

// ResultHandler returns one stored result.
func ResultHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are disabled"})
			return
		}
		r, err := store.ResultByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if r == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// StatsHandler aggregates stored results per mode.
func StatsHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scores are disabled"})
			return
		}
		stats, err := store.GetAllGamesStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"games": stats})
	}
}

func writeRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, room.ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": "game is over"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
