package templates

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

type gameID string

type label struct{ s string }

func (l label) String() string { return l.s }

func render(fn func(out *Writer)) string {
	var buf bytes.Buffer
	out := NewWriter(&buf)
	fn(out)
	return buf.String()
}

func TestRawf_EscapesStringArguments(t *testing.T) {
	got := render(func(out *Writer) {
		out.Rawf(`<a href="/play/%s" class="%s" title="%s">`,
			gameID(`x"><script>`), `flash-<b>`, label{`a&b`})
	})
	assert.Equal(t, `<a href="/play/x&#34;&gt;&lt;script&gt;" class="flash-&lt;b&gt;" title="a&amp;b">`, got)
}

func TestRawf_PassesNumbersAndMarkup(t *testing.T) {
	got := render(func(out *Writer) {
		out.Rawf(`<span data-seq="%d">%s</span>`, uint64(42), Markup(`<em>ok</em>`))
	})
	assert.Equal(t, `<span data-seq="42"><em>ok</em></span>`, got)
}

func TestText_Escapes(t *testing.T) {
	assert.Equal(t, `1 &lt; 2`, render(func(out *Writer) { out.Text("1 < 2") }))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriter_KeepsFirstError(t *testing.T) {
	out := NewWriter(failingWriter{})
	out.Raw("a")
	out.Component(context.Background(), templ.ComponentFunc(func(context.Context, io.Writer) error {
		t.Error("component rendered after a failed write")
		return nil
	}))
	assert.EqualError(t, out.Err(), "closed")
}
