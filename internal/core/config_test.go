package core

import (
	"testing"
	"time"
)

func TestTickDuration(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
		{MaxTickRate, time.Second / MaxTickRate},
		{1000, time.Second / MaxTickRate},
	}
	for _, tt := range tests {
		if got := (RuntimeConfig{TickRate: tt.rate}).TickDuration(); got != tt.want {
			t.Errorf("TickDuration(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
