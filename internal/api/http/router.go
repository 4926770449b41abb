// Package http serves the Blast REST API with gin.
package http

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-blast/internal/api/ws"
	"github.com/vovakirdan/tui-blast/internal/room"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

const maxJSONBodyBytes int64 = 1 << 20

// NewRouter wires the game, score and WebSocket endpoints. store may be nil,
// in which case the score endpoints answer 503.
func NewRouter(rm *room.Manager, hub *ws.Hub, store *storage.Store, logger *log.Logger) *gin.Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), limitBody(maxJSONBodyBytes))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// WebSocket for live updates
	r.GET("/ws", hub.HandleWS)

	// --- GAME ENDPOINTS ---
	r.GET("/games", ListGamesHandler(rm))
	r.POST("/games", CreateGameHandler(rm))
	r.GET("/games/:id", GetGameHandler(rm))
	r.DELETE("/games/:id", DeleteGameHandler(rm, hub))
	r.POST("/games/:id/tap", TapHandler(rm, hub))
	r.GET("/games/:id/hint", HintHandler(rm))

	// --- SCORE ENDPOINTS ---
	r.GET("/scores", ScoresHandler(store))
	r.GET("/scores/:id", ResultHandler(store))
	r.GET("/stats", StatsHandler(store))

	return r
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
