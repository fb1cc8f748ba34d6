// Package quotes holds the per-language quote lists shown on the new-tab page.
package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLang is the list used when a language has no quotes of its own.
const DefaultLang = "en"

// Quote is a single quote with an optional author.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// Source provides the quote list for an interface language.
type Source interface {
	Quotes(lang string) []Quote
}

// Collection maps language codes to quote lists.
type Collection map[string][]Quote

// Quotes returns the list for lang, falling back to the base language and then DefaultLang.
func (c Collection) Quotes(lang string) []Quote {
	if q, ok := c[lang]; ok && len(q) > 0 {
		return q
	}
	base, _, _ := strings.Cut(strings.ReplaceAll(lang, "-", "_"), "_")
	if q, ok := c[strings.ToLower(base)]; ok && len(q) > 0 {
		return q
	}
	return c[DefaultLang]
}

// Merge adds every list from other, appending to existing languages.
func (c Collection) Merge(other Collection) {
	for lang, list := range other {
		c[lang] = append(c[lang], list...)
	}
}

// Pick returns one quote chosen uniformly at random.
// A nil rnd uses the global generator.
func Pick(list []Quote, rnd *rand.Rand) (Quote, bool) {
	if len(list) == 0 {
		return Quote{}, false
	}
	if rnd == nil {
		return list[rand.IntN(len(list))], true
	}
	return list[rnd.IntN(len(list))], true
}

// LoadJSON reads either a bare array of quotes (stored under DefaultLang)
// or an object mapping language codes to arrays.
func LoadJSON(r io.Reader) (Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading quotes: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Quote
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decoding quote list: %w", err)
		}
		return Collection{DefaultLang: clean(list)}, nil
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding quote collection: %w", err)
	}
	for lang, list := range c {
		c[lang] = clean(list)
	}
	return c, nil
}

// LoadFile loads a quote file, choosing the parser by extension (.html/.htm or JSON).
// HTML files are stored under lang.
func LoadFile(path, lang string) (Collection, error) {
	f, err := os.Open(path) // #nosec G304 - CLI reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("opening quotes: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		list, err := ParseHTML(f)
		if err != nil {
			return nil, err
		}
		if lang == "" {
			lang = DefaultLang
		}
		return Collection{lang: list}, nil
	default:
		return LoadJSON(f)
	}
}

func clean(list []Quote) []Quote {
	out := list[:0]
	for _, q := range list {
		q.Text = strings.TrimSpace(q.Text)
		q.Author = strings.TrimSpace(q.Author)
		if q.Text == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}
