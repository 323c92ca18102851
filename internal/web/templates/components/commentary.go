package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/web/templates"
)

// CommentaryItem renders one line of coach commentary
func CommentaryItem(c model.Commentary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Rawf(`<li class="commentary commentary-%s">`, c.Sentiment)
		out.Text(c.Message)
		out.Raw(`</li>`)
		return out.Err()
	})
}

// CommentaryLog renders the commentary list, oldest first. New items are
// appended by the event stream.
func CommentaryLog(items []*model.Commentary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<ul id="commentary-log" sse-swap="commentary" hx-swap="beforeend">`)
		for _, c := range items {
			out.Component(ctx, CommentaryItem(*c))
		}
		out.Raw(`</ul>`)
		return out.Err()
	})
}
