package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/templates/components"
)

// Event names sent on a game stream. HTML events are swapped in by the page;
// JSON events serve the CLI and other non-browser clients.
const (
	EventFrame          = "frame"           // HTML game panel
	EventState          = "state"           // JSON StateData
	EventCommentary     = "commentary"      // HTML commentary item
	EventCommentaryData = "commentary-data" // JSON NoticeData
	EventGameOver       = "game-over"       // JSON NoticeData
	EventGameEnded      = "game-ended"      // JSON NoticeData
)

// StateData is the JSON form of a frame
type StateData struct {
	GameID   string   `json:"game_id"`
	Seq      uint64   `json:"seq"`
	Status   string   `json:"status"`
	Score    int      `json:"score"`
	Lines    int      `json:"lines"`
	Level    int      `json:"level"`
	Next     string   `json:"next"`
	PeriodMS int64    `json:"period_ms"`
	Rows     []string `json:"rows"`
}

// NoticeData is the JSON form of a lifecycle or commentary event
type NoticeData struct {
	Type      string    `json:"type"`
	GameID    string    `json:"game_id"`
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score,omitempty"`
	Lines     int       `json:"lines,omitempty"`
	Level     int       `json:"level,omitempty"`
	Message   string    `json:"message,omitempty"`
	Sentiment string    `json:"sentiment,omitempty"`
	Fallback  bool      `json:"fallback,omitempty"`
}

// Renderer converts game views and events to SSE messages
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderPanel renders the game panel fragment
func (r *Renderer) RenderPanel(ctx context.Context, view game.View) (string, error) {
	var buf bytes.Buffer
	if err := components.GamePanel(view).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderCommentary renders one commentary list item
func (r *Renderer) RenderCommentary(ctx context.Context, c model.Commentary) (string, error) {
	var buf bytes.Buffer
	if err := components.CommentaryItem(c).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FrameMessages returns the HTML and JSON messages for a view
func (r *Renderer) FrameMessages(ctx context.Context, view game.View) ([][]byte, error) {
	html, err := r.RenderPanel(ctx, view)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(StateFromView(view))
	if err != nil {
		return nil, err
	}
	return [][]byte{
		formatSSEMessage(EventFrame, html),
		formatSSEMessage(EventState, string(data)),
	}, nil
}

// NoticeMessage returns the JSON message for an event
func (r *Renderer) NoticeMessage(eventName string, event model.Event) ([]byte, error) {
	notice := NoticeData{
		Type:      string(event.Type),
		GameID:    string(event.GameID),
		Timestamp: event.Timestamp,
	}
	switch p := event.Payload.(type) {
	case model.GameOverPayload:
		notice.Score = p.Score
		notice.Lines = p.Lines
		notice.Level = p.Level
	case model.CommentaryPayload:
		notice.Score = p.Commentary.Score
		notice.Message = p.Commentary.Message
		notice.Sentiment = string(p.Commentary.Sentiment)
		notice.Fallback = p.Commentary.Fallback
	}

	data, err := json.Marshal(notice)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(eventName, string(data)), nil
}

// StateFromView converts a view to its JSON form
func StateFromView(view game.View) StateData {
	return StateData{
		GameID:   string(view.Game.ID),
		Seq:      view.Seq,
		Status:   string(view.Game.Status),
		Score:    view.State.Score,
		Lines:    view.State.Lines,
		Level:    view.State.Level,
		Next:     string(view.State.Next.Kind),
		PeriodMS: view.Period.Milliseconds(),
		Rows:     strings.Split(view.Grid.String(), "\n"),
	}
}
