package game

import (
	"time"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
)

// View is an immutable snapshot of a live game published after every
// transition. Readers may hold on to it; nothing in it is modified later.
type View struct {
	Game   model.Game
	State  engine.State
	Grid   engine.Grid
	Ghost  *engine.ActivePiece // nil when no piece is falling
	Period time.Duration       // current gravity period
	Seq    uint64              // increases by one per published frame
}

// Change is delivered to listeners after each transition
type Change struct {
	Event    model.EventType
	Command  engine.Command // empty for lifecycle events
	View     View
	Previous engine.State
	Outcome  engine.Outcome
}

// Listener observes game changes. It is called on the game's loop goroutine
// and must not block.
type Listener interface {
	GameChanged(change Change)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(change Change)

// GameChanged calls f
func (f ListenerFunc) GameChanged(change Change) {
	f(change)
}

// statusFor maps engine flags onto the persisted status
func statusFor(state engine.State) model.GameStatus {
	switch {
	case state.GameOver:
		return model.GameStatusOver
	case state.Paused:
		return model.GameStatusPaused
	default:
		return model.GameStatusRunning
	}
}
