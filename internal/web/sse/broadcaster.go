package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// Broadcaster pushes game frames and commentary to streaming clients. It is
// registered as a game listener and as an advice commentary sink.
type Broadcaster struct {
	hubManager *HubManager
	renderer   *Renderer
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		renderer:   NewRenderer(),
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

var _ game.Listener = (*Broadcaster)(nil)

// GameChanged implements game.Listener. Games nobody is watching are skipped
// before any rendering happens.
func (b *Broadcaster) GameChanged(change game.Change) {
	gameID := change.View.Game.ID
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	switch change.Event {
	case model.EventFrame, model.EventRestarted, model.EventGameOver:
		b.broadcastFrame(hub, change.View)
	}

	switch change.Event {
	case model.EventGameOver:
		b.broadcastNotice(hub, EventGameOver, model.Event{
			Type:      model.EventGameOver,
			Timestamp: change.View.Game.UpdatedAt,
			GameID:    gameID,
			PlayerID:  change.View.Game.PlayerID,
			Payload: model.GameOverPayload{
				Score: change.View.State.Score,
				Lines: change.View.State.Lines,
				Level: change.View.State.Level,
			},
		})
	case model.EventGameEnded:
		b.broadcastNotice(hub, EventGameEnded, model.Event{
			Type:      model.EventGameEnded,
			Timestamp: change.View.Game.UpdatedAt,
			GameID:    gameID,
			PlayerID:  change.View.Game.PlayerID,
		})
		b.hubManager.RemoveHub(gameID)
	}
}

// Commentary sends a new commentary item to the game's clients
func (b *Broadcaster) Commentary(c model.Commentary) {
	hub := b.hubManager.GetHub(c.GameID)
	if hub == nil {
		return
	}

	html, err := b.renderer.RenderCommentary(context.Background(), c)
	if err != nil {
		b.logger.Error("sse failed to render commentary",
			slog.String("game_id", string(c.GameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventCommentary, html)

	b.broadcastNotice(hub, EventCommentaryData, model.Event{
		Type:      model.EventCommentary,
		Timestamp: c.CreatedAt,
		GameID:    c.GameID,
		Payload:   model.CommentaryPayload{Commentary: c},
	})
}

func (b *Broadcaster) broadcastFrame(hub *Hub, view game.View) {
	messages, err := b.renderer.FrameMessages(context.Background(), view)
	if err != nil {
		b.logger.Error("sse failed to render frame",
			slog.String("game_id", string(view.Game.ID)),
			slog.Any("error", err))
		return
	}
	for _, msg := range messages {
		hub.Broadcast(msg)
	}
}

func (b *Broadcaster) broadcastNotice(hub *Hub, eventName string, event model.Event) {
	msg, err := b.renderer.NoticeMessage(eventName, event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", eventName),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)
}
