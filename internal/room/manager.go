package room

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// Errors returned by the manager.
var (
	ErrNotFound    = errors.New("room: game not found")
	ErrUnknownMode = errors.New("room: unknown mode")
	ErrGameOver    = errors.New("room: game is over")
)

// virtualScreen is large enough that remote games never report a small window.
const virtualScreen = 512

// CreateOptions describes a new remote game.
type CreateOptions struct {
	Mode       string
	Difficulty string
	Player     string
	Seed       int64 // 0 picks a time-based seed
}

// Manager owns the live rooms.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	cfg    config.BlastConfig
	preset config.DifficultyPreset
	store  *storage.Store
	logger *log.Logger
}

// NewManager creates a manager. Finished games are saved to store when it is
// not nil.
func NewManager(cfg config.BlastConfig, store *storage.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		rooms:  make(map[string]*Room),
		cfg:    cfg,
		preset: config.DifficultyNormal,
		store:  store,
		logger: logger,
	}
}

// SetDefaultDifficulty sets the preset used when a create request names none.
func (m *Manager) SetDefaultDifficulty(name string) error {
	preset, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.preset = preset
	m.mu.Unlock()
	return nil
}

// Create starts a new game and returns its room.
func (m *Manager) Create(opts CreateOptions) (*Room, error) {
	mode := blast.Mode(opts.Mode)
	switch mode {
	case "":
		mode = blast.ModeClassic
	case blast.ModeClassic, blast.ModeZen:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}

	m.mu.RLock()
	preset := m.preset
	m.mu.RUnlock()
	if opts.Difficulty != "" {
		p, err := config.ParsePreset(opts.Difficulty)
		if err != nil {
			return nil, err
		}
		preset = p
	}
	cfg := m.cfg
	config.ApplyBlastPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := blast.NewWithConfig(mode, cfg, m.logger)
	game.Reset(core.RuntimeConfig{
		ScreenW:  virtualScreen,
		ScreenH:  virtualScreen,
		TickRate: 60,
		Seed:     seed,
	})
	if err := game.ConfigError(); err != nil {
		return nil, err
	}
	game.Settle()
	game.DrainEvents()

	r := &Room{
		ID:         uuid.NewString(),
		Mode:       mode,
		Difficulty: string(preset),
		Player:     opts.Player,
		Seed:       seed,
		CreatedAt:  time.Now(),
		game:       game,
	}

	m.mu.Lock()
	m.rooms[r.ID] = r
	m.mu.Unlock()

	m.logger.Info("game created", "id", r.ID, "mode", mode, "difficulty", preset, "seed", seed)
	return r, nil
}

// Get returns the room with the given ID.
func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// List returns every room, oldest first.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes a room. It reports whether the room existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return false
	}
	delete(m.rooms, id)
	m.logger.Info("game deleted", "id", id)
	return true
}

// Snapshot returns the current view of a room.
func (m *Manager) Snapshot(id string) (View, error) {
	r, ok := m.Get(id)
	if !ok {
		return View{}, ErrNotFound
	}
	return r.View(), nil
}

// Tap plays a cell and resolves the whole cascade before returning. The
// first tap that ends the game saves its result.
func (m *Manager) Tap(id string, row, col int) (TapResult, error) {
	r, ok := m.Get(id)
	if !ok {
		return TapResult{}, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.State().GameOver {
		return TapResult{}, ErrGameOver
	}

	res := newTapResult(r.game.Tap(row, col))
	r.game.Settle()
	res.Events = r.game.DrainEvents()

	state := r.game.State()
	res.GameOver = state.GameOver
	if state.GameOver && r.resultID == "" {
		r.resultID = m.saveResult(r)
	}
	res.ResultID = r.resultID
	res.Game = r.game.Snapshot()
	return res, nil
}

func (m *Manager) saveResult(r *Room) string {
	sum := r.game.Summary()
	if m.store == nil {
		m.logger.Info("game finished", "id", r.ID, "won", sum.Won, "score", r.game.Score())
		return ""
	}

	id, err := m.store.SaveResult(storage.Result{
		GameID:            string(r.Mode),
		Player:            r.Player,
		Source:            "api",
		Score:             r.game.Score(),
		MovesUsed:         sum.MovesUsed,
		PiecesCleared:     sum.PiecesCleared,
		BlockersDestroyed: sum.BlockersDestroyed,
		Won:               sum.Won,
	})
	if err != nil {
		m.logger.Warn("could not save result", "id", r.ID, "error", err)
		return ""
	}
	m.logger.Info("game finished", "id", r.ID, "won", sum.Won, "score", r.game.Score(), "result", id)
	return id
}
