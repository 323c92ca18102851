// Package templates holds the HTML components of the web interface. They are
// plain templ components built with templ.ComponentFunc.
package templates

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so components can emit markup
// without checking every call
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Markup is HTML that Rawf writes without escaping
type Markup string

// Rawf writes markup from a trusted format. String arguments, including
// named string types and Stringers, are HTML-escaped unless they are Markup;
// numbers and bools are formatted as they are.
func (w *Writer) Rawf(format string, args ...any) {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = escapeArg(arg)
	}
	w.Raw(fmt.Sprintf(format, escaped...))
}

func escapeArg(arg any) any {
	switch v := arg.(type) {
	case Markup:
		return string(v)
	case fmt.Stringer:
		return templ.EscapeString(v.String())
	}
	if rv := reflect.ValueOf(arg); rv.Kind() == reflect.String {
		return templ.EscapeString(rv.String())
	}
	return arg
}

// Text writes HTML-escaped text
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Component renders a nested component
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err returns the first error encountered
func (w *Writer) Err() error {
	return w.err
}
