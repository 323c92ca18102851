package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/web/templates"
	"github.com/mcoot/blockdrop/internal/web/templates/layout"
)

// ErrorData is the data for the error page
type ErrorData struct {
	layout.PageData
	Message string
}

// Error renders a friendly error with a link home
func Error(data ErrorData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<div id="error">`)
		out.Raw(`<h1>`)
		out.Text(data.Title)
		out.Raw(`</h1><p class="error-message">`)
		out.Text(data.Message)
		out.Raw(`</p><p><a href="/">Return to home</a></p></div>`)
		return out.Err()
	})
	return layout.Base(data.PageData, body)
}
