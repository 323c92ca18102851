package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrNotGameOwner = errors.New("player does not own this game")
	ErrGameEnded    = errors.New("game has ended")
	ErrInvalidInput = errors.New("invalid command")
	ErrTooManyGames = errors.New("player has too many active games")
	ErrShuttingDown = errors.New("game service is shutting down")

	// Advice errors
	ErrAdviceUnavailable = errors.New("advice service unavailable")
)
