package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup accumulates HTML output and keeps the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *markup) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for element content or a quoted attribute.
func (h *markup) text(s string) {
	h.raw(templ.EscapeString(s))
}

// href writes a sanitized, escaped URL.
func (h *markup) href(s string) {
	h.text(string(templ.URL(s)))
}

func (h *markup) child(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component adapts a writer function into a templ.Component.
func component(fn func(h *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &markup{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
