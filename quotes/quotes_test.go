package quotes

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJSON_Array(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(`[
		{"text": " Stay hungry, stay foolish. ", "author": "Steve Jobs"},
		{"text": ""},
		{"text": "Well done is better than well said."}
	]`))
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	list := c[DefaultLang]
	if len(list) != 2 {
		t.Fatalf("Expected 2 quotes (empty dropped), got %d", len(list))
	}
	if list[0].Text != "Stay hungry, stay foolish." || list[0].Author != "Steve Jobs" {
		t.Errorf("Unexpected first quote: %+v", list[0])
	}
}

func TestLoadJSON_Collection(t *testing.T) {
	c, err := LoadJSON(strings.NewReader(`{
		"en": [{"text": "Hello"}],
		"fr": [{"text": "Bonjour", "author": "Voltaire"}]
	}`))
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if got := c.Quotes("fr"); len(got) != 1 || got[0].Author != "Voltaire" {
		t.Errorf("Quotes(fr) = %+v", got)
	}
}

func TestLoadJSON_Invalid(t *testing.T) {
	if _, err := LoadJSON(strings.NewReader(`[{"text": }]`)); err == nil {
		t.Error("Expected error for malformed array")
	}
	if _, err := LoadJSON(strings.NewReader(`{"en": 1}`)); err == nil {
		t.Error("Expected error for malformed collection")
	}
}

func TestCollection_QuotesFallback(t *testing.T) {
	c := Collection{
		"en": {{Text: "Hello"}},
		"pt": {{Text: "Olá"}},
	}

	tests := []struct {
		lang string
		want string
	}{
		{"pt", "Olá"},
		{"pt-BR", "Olá"},
		{"pt_BR", "Olá"},
		{"ja", "Hello"},
		{"", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got := c.Quotes(tt.lang)
			if len(got) == 0 || got[0].Text != tt.want {
				t.Errorf("Quotes(%q) = %+v, want first %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestCollection_Merge(t *testing.T) {
	c := Collection{"en": {{Text: "a"}}}
	c.Merge(Collection{"en": {{Text: "b"}}, "de": {{Text: "c"}}})
	if len(c["en"]) != 2 || len(c["de"]) != 1 {
		t.Errorf("Merge result: %+v", c)
	}
}

func TestPick(t *testing.T) {
	if _, ok := Pick(nil, nil); ok {
		t.Error("Pick on empty list should report false")
	}

	list := []Quote{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	rnd := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		q, ok := Pick(list, rnd)
		if !ok {
			t.Fatal("Pick should succeed on non-empty list")
		}
		seen[q.Text] = true
	}
	if len(seen) != len(list) {
		t.Errorf("Expected every quote to be picked eventually, saw %v", seen)
	}
}

func TestParseHTML(t *testing.T) {
	doc := `<html><body>
		<blockquote>
			<p>The only way to do great work is to love what you do.</p>
			<footer>— <cite>Steve Jobs</cite></footer>
		</blockquote>
		<blockquote><p>Simplicity is the ultimate sophistication.</p></blockquote>
		<blockquote>   </blockquote>
		<p>Not a quote</p>
	</body></html>`

	list, err := ParseHTML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 quotes, got %d: %+v", len(list), list)
	}
	if list[0].Text != "The only way to do great work is to love what you do." {
		t.Errorf("Unexpected text: %q", list[0].Text)
	}
	if list[0].Author != "Steve Jobs" {
		t.Errorf("Unexpected author: %q", list[0].Author)
	}
	if list[1].Author != "" {
		t.Errorf("Second quote should have no author, got %q", list[1].Author)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "quotes.html")
	_ = os.WriteFile(htmlPath, []byte(`<blockquote>Carpe diem<cite>Horace</cite></blockquote>`), 0o600)
	c, err := LoadFile(htmlPath, "la")
	if err != nil {
		t.Fatalf("LoadFile(html) failed: %v", err)
	}
	if got := c["la"]; len(got) != 1 || got[0].Text != "Carpe diem" || got[0].Author != "Horace" {
		t.Errorf("Unexpected HTML quotes: %+v", got)
	}

	jsonPath := filepath.Join(dir, "quotes.json")
	_ = os.WriteFile(jsonPath, []byte(`[{"text":"Hello"}]`), 0o600)
	c, err = LoadFile(jsonPath, "")
	if err != nil {
		t.Fatalf("LoadFile(json) failed: %v", err)
	}
	if len(c[DefaultLang]) != 1 {
		t.Errorf("Unexpected JSON quotes: %+v", c)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	list := c.Quotes("fr")
	if len(list) < 10 {
		t.Fatalf("Expected the built-in English list for fr, got %d quotes", len(list))
	}
	for _, q := range list {
		if q.Text == "" {
			t.Error("Built-in quote without text")
		}
	}
}
