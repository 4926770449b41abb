// Package registry maps mode IDs to game factories. Modes register
// themselves in init() functions, so the CLI, the menu and the SSH server
// can list and start them without importing each game directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// Game is the interface the terminal platform drives.
// Implementations hold pure logic with no Bubble Tea dependency; the
// platform maps input, keeps time and paints the screen buffer.
type Game interface {
	// ID returns the mode identifier (e.g. "blast", "blast_zen"), used by
	// the CLI and as the results key in storage.
	ID() string

	// Title returns a human-readable name for display (e.g. "Blast (Zen)").
	Title() string

	// Reset builds a new board for the screen size and seed in cfg.
	// Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick with the actions collected since
	// the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score, pause and game-over flags.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

// Registry is a set of named game factories. The zero value is not usable;
// call New.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory under id. It panics if id is taken or if the
// factory builds a game reporting a different ID.
func (r *Registry) Register(id string, f Factory) {
	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds %q", id, g.ID()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{factory: f, title: g.Title()}
}

// List returns every registered mode sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GameInfo, 0, len(r.entries))
	for id, e := range r.entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a new game for id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// defaultRegistry holds the modes registered at init time.
var defaultRegistry = New()

// Register adds a factory to the default registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List returns the modes in the default registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create builds a game from the default registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists reports whether id is in the default registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
