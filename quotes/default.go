package quotes

import (
	"bytes"
	_ "embed"
)

//go:embed default.json
var defaultJSON []byte

// Default returns the built-in English quote list.
func Default() Collection {
	c, err := LoadJSON(bytes.NewReader(defaultJSON))
	if err != nil {
		panic("quotes: invalid built-in list: " + err.Error())
	}
	return c
}
