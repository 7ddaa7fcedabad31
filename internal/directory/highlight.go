package directory

import (
	"unicode"
	"unicode/utf8"
)

// Highlight marks the first case-insensitive occurrence of the raw query in
// a display string. Byte offsets index the original text. Highlighting is
// presentation-only: a record can match through its folded fields while the
// literal query never appears in the display string, in which case Found is
// false and no emphasis is shown. That is expected, not a bug.
type Highlight struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Found bool `json:"found"`
}

// FindHighlight locates the raw query inside a display field. The scan folds
// rune by rune instead of lowercasing the whole text, so offsets stay exact
// even for runes whose lowercase form has a different byte length.
func FindHighlight(text, query string) Highlight {
	if text == "" || query == "" {
		return Highlight{}
	}

	tr := []rune(text)
	qr := []rune(query)
	if len(qr) > len(tr) {
		return Highlight{}
	}

	// Byte offset of each rune boundary in the original text.
	offsets := make([]int, len(tr)+1)
	for i, r := range tr {
		offsets[i+1] = offsets[i] + utf8.RuneLen(r)
	}

	for i := 0; i+len(qr) <= len(tr); i++ {
		match := true
		for j := range qr {
			if unicode.ToLower(tr[i+j]) != unicode.ToLower(qr[j]) {
				match = false
				break
			}
		}
		if match {
			return Highlight{Start: offsets[i], End: offsets[i+len(qr)], Found: true}
		}
	}
	return Highlight{}
}
