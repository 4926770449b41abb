package engine

// Phase tags an effect notification.
type Phase string

const (
	PhaseMatch            Phase = "match"
	PhaseBlockerDestroyed Phase = "blockerDestroyed"
	PhaseSpecialBlast     Phase = "specialBlast"
	PhaseFall             Phase = "fall"
	PhaseSpawn            Phase = "spawn"
	PhaseShuffle          Phase = "shuffle"
)

// Event is a notification for rendering, audio and other collaborators.
// The board has already been mutated when an event is delivered.
//
// From is set for fall and shuffle events (the piece's previous position).
// Kind, Color and PieceID describe the affected piece; they are zero for
// blocker events.
type Event struct {
	Phase   Phase  `json:"phase"`
	At      Coord  `json:"at"`
	From    Coord  `json:"from"`
	Kind    Kind   `json:"kind"`
	Color   int    `json:"color"`
	PieceID uint64 `json:"pieceId"`
}

// Effects receives engine events in order.
type Effects interface {
	OnEvent(ev Event)
}

// EffectsFunc adapts a function to Effects.
type EffectsFunc func(ev Event)

// OnEvent calls f(ev).
func (f EffectsFunc) OnEvent(ev Event) { f(ev) }

type nopEffects struct{}

func (nopEffects) OnEvent(Event) {}

// Recorder is an Effects that keeps every event. Useful for tests and for
// batching events per turn.
type Recorder struct {
	Events []Event
}

// OnEvent appends ev.
func (r *Recorder) OnEvent(ev Event) {
	r.Events = append(r.Events, ev)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Count returns the number of recorded events with the given phase.
func (r *Recorder) Count(p Phase) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Phase == p {
			n++
		}
	}
	return n
}

// Drain returns recorded events and resets the recorder.
func (r *Recorder) Drain() []Event {
	out := make([]Event, len(r.Events))
	copy(out, r.Events)
	r.Reset()
	return out
}

func pieceEvent(phase Phase, at Coord, p Piece) Event {
	return Event{Phase: phase, At: at, From: at, Kind: p.Kind, Color: p.Color, PieceID: p.ID}
}

func blockerEvent(at Coord) Event {
	return Event{Phase: PhaseBlockerDestroyed, At: at, From: at, Color: NoColor}
}
