package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventFrame      EventType = "frame"      // Board changed
	EventGameOver   EventType = "game_over"  // A spawn collided
	EventRestarted  EventType = "restarted"  // Board reset by the owner
	EventGameEnded  EventType = "game_ended" // Session torn down
	EventCommentary EventType = "commentary" // New advice message
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID // The owner of the game
	Payload   any      // Type-specific data
}

// CommentaryPayload contains data for commentary events
type CommentaryPayload struct {
	Commentary Commentary
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Score int
	Lines int
	Level int
}
