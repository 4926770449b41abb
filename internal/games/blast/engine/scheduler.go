package engine

import "time"

// Scheduler runs phase continuations after an effect delay. Continuations
// never run concurrently with each other or with HandleTap.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs every continuation synchronously, collapsing all effect
// durations to zero.
type Immediate struct{}

// After calls fn immediately.
func (Immediate) After(_ time.Duration, fn func()) { fn() }

type pendingTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

// ManualScheduler queues continuations on a virtual clock that the owner
// advances, typically once per UI tick.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []pendingTask
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After queues fn to run once the clock has advanced by d.
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, pendingTask{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every task that has come
// due, in due-time then submission order. Tasks queued by a running task
// also run if they fall due within the same window.
func (s *ManualScheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for {
		idx := s.nextDue()
		if idx < 0 {
			return ran
		}
		task := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		task.fn()
		ran++
	}
}

// Flush runs every pending task regardless of its due time, moving the
// clock to the latest due time reached.
func (s *ManualScheduler) Flush() int {
	ran := 0
	for len(s.pending) > 0 {
		earliest := s.pending[0].due
		for _, t := range s.pending[1:] {
			if t.due < earliest {
				earliest = t.due
			}
		}
		if earliest > s.now {
			s.now = earliest
		}
		ran += s.Advance(0)
	}
	return ran
}

// Pending returns the number of queued tasks.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Now returns the virtual clock.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

func (s *ManualScheduler) nextDue() int {
	best := -1
	for i, t := range s.pending {
		if t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.pending[best].due ||
			(t.due == s.pending[best].due && t.seq < s.pending[best].seq) {
			best = i
		}
	}
	return best
}
