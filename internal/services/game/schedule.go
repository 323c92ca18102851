package game

import (
	"time"

	"github.com/mcoot/blockdrop/internal/engine"
)

// Schedule derives the gravity period from the level
type Schedule struct {
	Base time.Duration // period at level 1
	Step time.Duration // reduction per level
	Min  time.Duration // floor
}

// DefaultSchedule is 800ms at level 1, 80ms faster per level, never below 80ms
func DefaultSchedule() Schedule {
	return Schedule{
		Base: 800 * time.Millisecond,
		Step: 80 * time.Millisecond,
		Min:  80 * time.Millisecond,
	}
}

// Period returns max(Min, Base-(level-1)*Step)
func (s Schedule) Period(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	p := s.Base - time.Duration(level-1)*s.Step
	if p < s.Min {
		return s.Min
	}
	return p
}

// Suspended reports whether gravity must not run for the state
func Suspended(state engine.State) bool {
	return state.Suspended()
}
