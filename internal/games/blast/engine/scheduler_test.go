package engine

import (
	"testing"
	"time"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() { order = append(order, "c") })

	if ran := s.Advance(15 * time.Millisecond); ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	if got := len(order); got != 2 || order[0] != "b" || order[1] != "c" {
		t.Fatalf("order = %v, want [b c]", order)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}

	s.Advance(5 * time.Millisecond)
	if len(order) != 3 || order[2] != "a" {
		t.Errorf("order = %v, want [b c a]", order)
	}
}

func TestManualSchedulerNestedTasks(t *testing.T) {
	s := NewManualScheduler()
	ran := 0
	s.After(0, func() {
		ran++
		s.After(0, func() { ran++ })
		s.After(time.Second, func() { ran++ })
	})

	s.Advance(0)
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
}

func TestManualSchedulerFlush(t *testing.T) {
	s := NewManualScheduler()
	ran := 0
	s.After(time.Second, func() {
		ran++
		s.After(time.Second, func() { ran++ })
	})

	if got := s.Flush(); got != 2 {
		t.Errorf("Flush ran %d tasks, want 2", got)
	}
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
	if s.Now() != 2*time.Second {
		t.Errorf("now = %v, want 2s", s.Now())
	}
}

func TestImmediateRunsInline(t *testing.T) {
	called := false
	Immediate{}.After(time.Hour, func() { called = true })
	if !called {
		t.Error("Immediate did not run the task")
	}
}
