package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus is the lifecycle phase of a game
type GameStatus string

const (
	GameStatusRunning GameStatus = "running" // Pieces are falling
	GameStatusPaused  GameStatus = "paused"  // Player paused, gravity suspended
	GameStatusOver    GameStatus = "over"    // A spawn collided; only restart is possible
	GameStatusEnded   GameStatus = "ended"   // Player ended the session
)

// Game is the persisted record of a single-player session. The live board
// lives with the session; this tracks ownership and the latest counters.
type Game struct {
	ID       GameID
	PlayerID PlayerID
	Status   GameStatus

	Score int
	Lines int
	Level int

	// Restarts counts how many times the board was reset
	Restarts int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the session is still attached to a board
func (g *Game) IsActive() bool {
	return g.Status != GameStatusEnded
}

// IsOwner returns true if playerID owns the game
func (g *Game) IsOwner(playerID PlayerID) bool {
	return g.PlayerID == playerID
}
