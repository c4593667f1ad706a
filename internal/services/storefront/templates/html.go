package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// htmlWriter accumulates the first write error so components read as a flat
// sequence of writes.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// element writes <tag attrs...>text</tag>.
func (h *htmlWriter) element(tag, class, text string) {
	h.raw("<" + tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(text)
	h.raw("</" + tag + ">")
}

func (h *htmlWriter) hidden(name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}

func (h *htmlWriter) field(label, inputType, name, value, autocomplete string, required bool) {
	h.raw(`<label class="field"><span>`)
	h.text(label)
	h.raw(`</span><input`)
	h.attr("type", inputType)
	h.attr("name", name)
	if value != "" {
		h.attr("value", value)
	}
	if autocomplete != "" {
		h.attr("autocomplete", autocomplete)
	}
	if required {
		h.raw(" required")
	}
	h.raw("></label>")
}

// postButton renders a single-button form posting to action.
func (h *htmlWriter) postButton(action, label, class string, hidden map[string]string) {
	h.raw(`<form method="post"`)
	h.attr("action", action)
	h.raw(` class="inline">`)
	for name, value := range hidden {
		h.hidden(name, value)
	}
	h.raw(`<button type="submit"`)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(label)
	h.raw("</button></form>")
}

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

// tr looks up the catalog message id and fills its placeholders with args.
// An id missing from the catalog renders as itself.
func tr(loc *message.Printer, id string, args ...any) string {
	if loc == nil {
		loc = message.NewPrinter(language.AmericanEnglish)
	}
	return loc.Sprintf(message.Key(id, id), args...)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
