package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpapi "github.com/vovakirdan/tui-blast/internal/api/http"
	"github.com/vovakirdan/tui-blast/internal/api/ws"
	"github.com/vovakirdan/tui-blast/internal/room"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	flagAPIAddr string
	flagNoStore bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP/WebSocket API",
	Long: `Start an HTTP server for remote clients.

Endpoints:
  POST   /games             - Start a game {mode, difficulty, player, seed}
  GET    /games             - List live games
  GET    /games/:id         - Game snapshot
  DELETE /games/:id         - Drop a game
  POST   /games/:id/tap     - Tap a cell {row, col}
  GET    /games/:id/hint    - Suggested cell
  GET    /scores            - Top results (?game=blast&limit=10)
  GET    /scores/:id        - One stored result
  GET    /stats             - Per-mode statistics
  GET    /ws?game_id=<id>   - Live updates over WebSocket

Examples:
  blast api
  blast api --addr :9000 --difficulty hard
  blast api --no-store`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not record finished games")
}

func runAPI(_ *cobra.Command, _ []string) error {
	apiLogger := logger.WithPrefix("api")

	var store *storage.Store
	if !flagNoStore {
		store = optionalResults()
	}
	if store != nil {
		defer store.Close()
	}

	rooms := room.NewManager(baseConfig, store, apiLogger)
	if flagDifficulty != "" {
		if err := rooms.SetDefaultDifficulty(flagDifficulty); err != nil {
			return err
		}
	}
	gin.SetMode(gin.ReleaseMode)
	hub := ws.NewHub(rooms, apiLogger)
	srv := httpapi.NewServer(flagAPIAddr, httpapi.NewRouter(rooms, hub, store, apiLogger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		apiLogger.Info("listening", "address", srv.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	apiLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
