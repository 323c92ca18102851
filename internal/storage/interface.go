package storage

import (
	"context"

	"github.com/mcoot/blockdrop/internal/model"
)

// MaxCommentary is how many commentary entries are retained per game
const MaxCommentary = 50

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGamesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Commentary operations. Entries are kept oldest first and capped at
	// MaxCommentary per game.
	AppendCommentary(ctx context.Context, c *model.Commentary) error
	GetCommentary(ctx context.Context, gameID model.GameID, limit int) ([]*model.Commentary, error)
}
