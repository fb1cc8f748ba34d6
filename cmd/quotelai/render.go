package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// termRenderer prints a streamed translation to a terminal.
// The quote region only grows while streaming, so each render prints the new suffix.
type termRenderer struct {
	w       io.Writer
	visible bool
	quote   string
	author  string
	quoteC  *color.Color
	authorC *color.Color
}

func newTermRenderer(w io.Writer) *termRenderer {
	return &termRenderer{
		w:       w,
		quoteC:  color.New(color.FgCyan),
		authorC: color.New(color.Faint),
	}
}

func (r *termRenderer) SetVisible(visible bool) {
	r.visible = visible
}

func (r *termRenderer) RenderQuote(text string) {
	if !r.visible || text == r.quote {
		return
	}
	if strings.HasPrefix(text, r.quote) {
		r.quoteC.Fprint(r.w, text[len(r.quote):])
	} else {
		r.quoteC.Fprint(r.w, "\r\033[K"+text)
	}
	r.quote = text
}

func (r *termRenderer) RenderAuthor(text string) {
	r.author = text
}

// Finish ends the quote line and prints the author.
// A hidden block only gets its partial line terminated.
func (r *termRenderer) Finish() {
	if r.quote != "" {
		fmt.Fprintln(r.w)
	}
	if !r.visible {
		return
	}
	if r.author != "" {
		r.authorC.Fprintf(r.w, "  - %s\n", r.author)
	}
}
