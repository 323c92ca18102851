package response

import (
	"strings"
	"time"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Game is the stored record of a game
type Game struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Status    string    `json:"status"`
	Score     int       `json:"score"`
	Lines     int       `json:"lines"`
	Level     int       `json:"level"`
	Restarts  int       `json:"restarts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:        string(g.ID),
		PlayerID:  string(g.PlayerID),
		Status:    string(g.Status),
		Score:     g.Score,
		Lines:     g.Lines,
		Level:     g.Level,
		Restarts:  g.Restarts,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GamesFromModel converts a list of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// Position is a board coordinate; y grows downward
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is the falling piece or its ghost
type Piece struct {
	Kind  string     `json:"kind"`
	Cells []Position `json:"cells"`
}

func pieceFromModel(p *engine.ActivePiece) *Piece {
	if p == nil {
		return nil
	}
	cells := p.Cells()
	out := &Piece{Kind: string(p.Kind), Cells: make([]Position, len(cells))}
	for i, c := range cells {
		out.Cells[i] = Position{X: c.X, Y: c.Y}
	}
	return out
}

// GameState is a live game: its record plus the current frame. Rows uses
// one glyph per cell: '.' empty, '#' settled, '+' ghost, '@' active.
type GameState struct {
	Game     Game     `json:"game"`
	Seq      uint64   `json:"seq"`
	Rows     []string `json:"rows"`
	Active   *Piece   `json:"active"`
	Ghost    *Piece   `json:"ghost"`
	Next     string   `json:"next"`
	Paused   bool     `json:"paused"`
	GameOver bool     `json:"game_over"`
	PeriodMS int64    `json:"period_ms"`
}

// GameStateFromView converts a controller view
func GameStateFromView(v game.View) GameState {
	return GameState{
		Game:     GameFromModel(&v.Game),
		Seq:      v.Seq,
		Rows:     strings.Split(v.Grid.String(), "\n"),
		Active:   pieceFromModel(v.State.Active),
		Ghost:    pieceFromModel(v.Ghost),
		Next:     string(v.State.Next.Kind),
		Paused:   v.State.Paused,
		GameOver: v.State.GameOver,
		PeriodMS: v.Period.Milliseconds(),
	}
}

// Commentary is one entry in a game's commentary log
type Commentary struct {
	Message   string    `json:"message"`
	Sentiment string    `json:"sentiment"`
	Score     int       `json:"score"`
	Fallback  bool      `json:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentaryFromModel converts a commentary log
func CommentaryFromModel(entries []*model.Commentary) []Commentary {
	out := make([]Commentary, len(entries))
	for i, c := range entries {
		out[i] = Commentary{
			Message:   c.Message,
			Sentiment: string(c.Sentiment),
			Score:     c.Score,
			Fallback:  c.Fallback,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}
