package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/templates"
	"github.com/mcoot/blockdrop/internal/web/templates/components"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
)

// PlayData is the data for the game page
type PlayData struct {
	layout.PageData
	View       game.View
	Commentary []*model.Commentary
	IsOwner    bool // spectators get no controls
}

// Play renders a live game. The panel is replaced on every "frame" event
// from the stream; commentary items are appended as they arrive.
func Play(data PlayData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		id := data.View.Game.ID

		out.Rawf(`<section id="game" data-game-id="%s" hx-ext="sse" sse-connect="/play/%s/events">`, id, id)
		out.Raw(`<div sse-swap="frame" hx-target="#game-panel" hx-swap="outerHTML"></div>`)
		out.Component(ctx, components.GamePanel(data.View))
		if data.IsOwner {
			out.Component(ctx, components.Controls(data.View.Game.ID))
		}
		out.Raw(`<h2>Coach</h2>`)
		out.Component(ctx, components.CommentaryLog(data.Commentary))
		out.Raw(`</section>`)
		return out.Err()
	})
	return layout.Base(data.PageData, body)
}
