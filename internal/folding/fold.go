// Package folding produces the canonical ASCII search key used across the
// directory: every *_folded field in the published JSON and every live query
// go through the exact same pipeline, so substring matching stays consistent
// between build time and runtime.
package folding

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reCombining = regexp.MustCompile("[\u0300-\u036f]+")
	reNonAlnum  = regexp.MustCompile(`[^a-z0-9\s]+`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Fold normalizes Vietnamese text into a lowercase, accent-insensitive,
// punctuation-insensitive ASCII key. The letter đ is replaced before the NFD
// pass: it carries no combining mark and would otherwise survive diacritic
// stripping, silently breaking search for đ-containing names.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "đ", "d")
	s = norm.NFD.String(s)
	s = reCombining.ReplaceAllString(s, "")
	s = reNonAlnum.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
