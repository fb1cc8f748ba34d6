package quotelai

import "strings"

// Delimiter separates the fields of a cache key and the quote from its author in
// model output.
const Delimiter = "|"

// CacheKey builds the cache key for a quote.
// Without an author the key is "text|lang"; with one it is "text|author|lang".
// Lookups and writes both go through this function, so one quote maps to one key.
func CacheKey(text, author, lang string) string {
	if author == "" {
		return text + Delimiter + lang
	}
	return text + Delimiter + author + Delimiter + lang
}

// SplitQuoteAuthor splits streamed "quote | author" output on the first delimiter.
// Before the delimiter arrives the whole buffer is the quote and found is false.
// Either part may still be incomplete while streaming.
func SplitQuoteAuthor(buf string) (quote, author string, found bool) {
	quote, author, found = strings.Cut(buf, Delimiter)
	return strings.TrimSpace(quote), strings.TrimSpace(author), found
}
