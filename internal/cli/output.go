package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGameList(v)
	case GameState:
		o.printGameState(v)
	case []Commentary:
		o.printCommentary(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Game response type
type Game struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
	Score    int    `json:"score"`
	Lines    int    `json:"lines"`
	Level    int    `json:"level"`
	Restarts int    `json:"restarts"`
}

// Position response type
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece response type
type Piece struct {
	Kind  string     `json:"kind"`
	Cells []Position `json:"cells"`
}

// GameState response type
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

// Commentary response type
type Commentary struct {
	Message   string `json:"message"`
	Sentiment string `json:"sentiment"`
	Score     int    `json:"score"`
	Fallback  bool   `json:"fallback,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	fmt.Fprintf(o.w, "Score: %d  Lines: %d  Level: %d\n", g.Score, g.Lines, g.Level)
	if g.Restarts > 0 {
		fmt.Fprintf(o.w, "Restarts: %d\n", g.Restarts)
	}
}

func (o *Output) printGameList(games []Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, g := range games {
		fmt.Fprintf(o.w, "%-12s %-8s score %-6d lines %-4d level %d\n",
			g.ID, g.Status, g.Score, g.Lines, g.Level)
	}
}

func (o *Output) printGameState(s GameState) {
	o.printGame(s.Game)
	if s.Next != "" {
		fmt.Fprintf(o.w, "Next: %s\n", s.Next)
	}
	switch {
	case s.GameOver:
		fmt.Fprintln(o.w, "Game over")
	case s.Paused:
		fmt.Fprintln(o.w, "Paused")
	}
	fmt.Fprintln(o.w)
	o.printRows(s.Rows)
}

// printRows draws the board between borders, one glyph per cell
func (o *Output) printRows(rows []string) {
	if len(rows) == 0 {
		return
	}

	border := "+" + strings.Repeat("-", len(rows[0])) + "+"
	fmt.Fprintln(o.w, border)
	for _, row := range rows {
		fmt.Fprintf(o.w, "|%s|\n", row)
	}
	fmt.Fprintln(o.w, border)
}

func (o *Output) printCommentary(entries []Commentary) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No commentary yet")
		return
	}
	for _, c := range entries {
		fmt.Fprintf(o.w, "[%s] %s (score %d)\n", c.Sentiment, c.Message, c.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
