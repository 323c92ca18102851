package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates"
)

// FlashMessage is a one-shot notice shown on the next page
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is shared by every full page
type PageData struct {
	Title  string
	Player *model.Player
	Flash  *FlashMessage
}

// Base wraps body in the site chrome
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		out.Text(data.Title)
		out.Raw(" | blockdrop</title>\n")
		out.Raw(`<link rel="stylesheet" href="/static/style.css">` + "\n")
		out.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>` + "\n")
		out.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>` + "\n")
		out.Raw("</head>\n<body>\n")

		out.Raw(`<nav id="nav"><a href="/">blockdrop</a>`)
		if data.Player != nil {
			out.Raw(`<span id="player-name">`)
			out.Text(data.Player.DisplayName)
			out.Raw(`</span><form method="post" action="/auth/logout"><button type="submit">Log out</button></form>`)
		}
		out.Raw("</nav>\n")

		if data.Flash != nil {
			out.Rawf(`<div id="flash" class="flash flash-%s">`, data.Flash.Type)
			out.Text(data.Flash.Message)
			out.Raw("</div>\n")
		}

		out.Raw("<main>\n")
		out.Component(ctx, body)
		out.Raw("\n</main>\n</body>\n</html>\n")
		return out.Err()
	})
}
