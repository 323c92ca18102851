package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates"
	"github.com/mcoot/blockdrop/internal/web/templates/components"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
)

// HomeData is the data for the home page
type HomeData struct {
	layout.PageData
	Games []*model.Game
	Next  string // where to go after joining as a guest
}

// Home shows the guest form, or the new game button and game list once
// signed in
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<h1>blockdrop</h1>`)

		if data.Player == nil {
			out.Raw(`<form id="guest-form" method="post" action="/auth/guest">`)
			out.Raw(`<label for="display_name">Name</label>`)
			out.Raw(`<input type="text" id="display_name" name="display_name" maxlength="20" placeholder="Guest">`)
			if data.Next != "" {
				out.Raw(`<input type="hidden" name="next" value="`)
				out.Text(data.Next)
				out.Raw(`">`)
			}
			out.Raw(`<button type="submit">Play as guest</button></form>`)
			return out.Err()
		}

		out.Raw(`<form id="new-game-form" method="post" action="/play"><button type="submit">New game</button></form>`)
		out.Raw(`<h2>Your games</h2>`)
		out.Component(ctx, components.GameList(data.Games))
		return out.Err()
	})
	return layout.Base(data.PageData, body)
}
