package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates"
)

var commandLabels = map[engine.Command]string{
	engine.CommandMoveLeft:    "Left",
	engine.CommandMoveRight:   "Right",
	engine.CommandSoftDrop:    "Down",
	engine.CommandRotate:      "Rotate",
	engine.CommandHardDrop:    "Drop",
	engine.CommandTogglePause: "Pause",
}

// Controls renders one button per player command plus restart and end. The
// buttons post over HTMX; the board itself updates from the event stream.
func Controls(gameID model.GameID) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		base := "/play/" + string(gameID)

		out.Raw(`<div id="game-controls">`)
		for _, cmd := range engine.Commands {
			out.Rawf(`<form method="post" action="%s/command" hx-post="%s/command" hx-swap="none">`, base, base)
			out.Rawf(`<input type="hidden" name="command" value="%s">`, cmd)
			out.Rawf(`<button type="submit" data-command="%s">%s</button></form>`, cmd, commandLabels[cmd])
		}
		out.Rawf(`<form method="post" action="%s/restart"><button type="submit" id="restart">Restart</button></form>`, base)
		out.Rawf(`<form method="post" action="%s/end"><button type="submit" id="end-game">End game</button></form>`, base)
		out.Raw(`</div>`)
		return out.Err()
	})
}
