package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates"
)

// GameList lists a player's games, newest first
func GameList(games []*model.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<ul id="game-list">`)
		for _, g := range games {
			out.Rawf(`<li class="game-item" data-status="%s">`, g.Status)
			if g.IsActive() {
				out.Rawf(`<a href="/play/%s">`, g.ID)
				out.Text(string(g.ID))
				out.Raw(`</a>`)
			} else {
				out.Text(string(g.ID))
			}
			out.Rawf(` <span class="game-score">%d</span> <span class="game-status">%s</span></li>`, g.Score, g.Status)
		}
		out.Raw(`</ul>`)
		return out.Err()
	})
}
