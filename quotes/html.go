package quotes

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseHTML extracts quotes from <blockquote> elements.
//
// The quote text is the blockquote's text outside <cite>, <footer> and <script>;
// the author comes from the first <cite> (or <footer>) inside it, with any
// leading dash removed.
func ParseHTML(r io.Reader) ([]Quote, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing quote HTML: %w", err)
	}

	var list []Quote
	doc.Find("blockquote").Each(func(_ int, sel *goquery.Selection) {
		var b strings.Builder
		for _, n := range sel.Nodes {
			collectText(n, &b)
		}
		text := strings.Join(strings.Fields(b.String()), " ")
		if text == "" {
			return
		}

		author := sel.Find("cite").First().Text()
		if strings.TrimSpace(author) == "" {
			author = sel.Find("footer").First().Text()
		}
		author = strings.TrimLeft(strings.TrimSpace(author), "-–— ")

		list = append(list, Quote{Text: text, Author: strings.Join(strings.Fields(author), " ")})
	})

	return list, nil
}

var skippedTags = map[string]bool{
	"cite":   true,
	"footer": true,
	"script": true,
	"style":  true,
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skippedTags[strings.ToLower(n.Data)] {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
