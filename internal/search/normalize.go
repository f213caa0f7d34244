package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTerm prepares a user-entered search term for matching: trims
// whitespace, lowercases, and strips combining marks so "chalét" matches
// prompts typed as "chalet".
func NormalizeTerm(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	if folded, _, err := transform.String(foldTransformer, term); err == nil {
		term = folded
	}
	return strings.ToLower(term)
}
