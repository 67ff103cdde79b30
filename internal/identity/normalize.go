// Package identity provides player name canonicalization and cross-source
// entity resolution for the valuation pipeline. Projection feeds, market
// feeds, and play-by-play sources spell the same player differently
// ("Amon-Ra St. Brown" / "amon-ra st brown" / "A. St. Brown Jr."); every
// cross-source join in the system goes through this package.
package identity

import (
	"strings"
	"unicode"
)

// generational suffixes dropped as whole tokens during normalization
var suffixTokens = map[string]bool{
	"jr":  true,
	"sr":  true,
	"ii":  true,
	"iii": true,
	"iv":  true,
	"v":   true,
}

// Normalize canonicalizes a player name for matching: lower-case, strip
// generational suffixes, fold punctuation to spaces, collapse whitespace.
// It is total (empty input yields "") and idempotent, and never reorders
// first/last name tokens.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	lowered := strings.ToLower(name)

	// Fold everything that is not a letter into a space. Hyphens and
	// periods both become token boundaries so "St. Brown" and "st brown"
	// normalize identically.
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	out := tokens[:0]
	for _, tok := range tokens {
		if suffixTokens[tok] {
			continue
		}
		out = append(out, tok)
	}

	return strings.Join(out, " ")
}
