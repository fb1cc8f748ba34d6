package quotelai

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/quotelai/quotes"
)

// Renderer is the on-screen surface for a translated quote.
type Renderer interface {
	// SetVisible shows or hides the whole translation block.
	SetVisible(visible bool)

	// RenderQuote replaces the translated quote text.
	RenderQuote(text string)

	// RenderAuthor replaces the translated author text.
	RenderAuthor(text string)
}

// Display streams a translation into a Renderer.
type Display struct {
	translator *Translator
	renderer   Renderer
}

// NewDisplay creates a display adapter that renders translations from t.
func NewDisplay(t *Translator, r Renderer) *Display {
	return &Display{translator: t, renderer: r}
}

// Visible reports whether a translation block should be shown for lang.
func (d *Display) Visible(ctx context.Context, lang string) bool {
	cfg, err := d.translator.settings.Load(ctx)
	if err != nil {
		return false
	}
	return cfg.Enabled && lang != "" && !IsEnglish(lang)
}

// Show translates q into lang and renders it as it streams.
//
// The block is hidden when translation is disabled, lang is English, or the
// translation fails. With an author, the buffer is split on the first delimiter
// and both regions are re-rendered on every fragment, since the split point is
// only known once enough text has arrived. Show reports whether a translation
// was rendered.
func (d *Display) Show(ctx context.Context, q quotes.Quote, lang string) bool {
	if !d.Visible(ctx, lang) {
		d.renderer.SetVisible(false)
		return false
	}

	d.renderer.SetVisible(true)
	d.renderer.RenderQuote("")
	d.renderer.RenderAuthor("")

	var buf strings.Builder
	text, ok := d.translator.Translate(ctx, Request{Text: q.Text, Author: q.Author, TargetLang: lang},
		func(fragment string, done bool) {
			buf.WriteString(fragment)
			d.render(buf.String(), q.Author != "")
		})
	if !ok {
		d.renderer.SetVisible(false)
		return false
	}

	d.render(text, q.Author != "")
	return true
}

func (d *Display) render(buf string, withAuthor bool) {
	if !withAuthor {
		d.renderer.RenderQuote(strings.TrimSpace(buf))
		return
	}
	quote, author, found := SplitQuoteAuthor(buf)
	d.renderer.RenderQuote(quote)
	if found {
		d.renderer.RenderAuthor(author)
	}
}
