// Package textnorm canonicalizes Greek and Russian text for fuzzy matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Greek vowel digraphs that sound like a single letter. Russian needs no table:
// ё and й lose their marks in the decomposition step.
var digraphs = strings.NewReplacer(
	"αι", "ε",
	"ει", "ι",
	"οι", "ι",
	"υι", "ι",
)

var letters = strings.NewReplacer(
	"η", "ι",
	"ω", "ο",
	"ς", "σ",
)

// Normalize returns the matching form of s: decomposed, stripped of combining
// marks, lower-cased and folded. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return fold(strings.ToLower(stripped))
}

// fold runs until nothing changes, since folding a letter can complete a
// digraph ("αη" -> "αι" -> "ε").
func fold(s string) string {
	for {
		next := letters.Replace(digraphs.Replace(s))
		if next == s {
			return s
		}
		s = next
	}
}

// Contains reports whether the normalized field contains the normalized query.
func Contains(field, query string) bool {
	return strings.Contains(Normalize(field), Normalize(query))
}
