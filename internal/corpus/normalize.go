// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package corpus

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes, drops combining marks, and recomposes, so
// "Crème de cassis" and "creme de cassis" normalize identically.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func fold(s string) string {
	out, _, err := transform.String(foldChain(), s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey lowercases, folds diacritics, trims and collapses internal
// whitespace. It is the identity scheme for cocktails and the canonical
// form for ingredient names in preference profiles.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(fold(s))), " ")
}

// NormalizeText is NormalizeKey with punctuation removed: apostrophes are
// dropped ("don't" -> "dont") and every other non-alphanumeric rune becomes
// a space ("non-alcoholic" -> "non alcoholic").
func NormalizeText(s string) string {
	lowered := strings.ToLower(fold(s))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r == '\'' || r == '’':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits NormalizeText output into words.
func Tokens(s string) []string {
	return strings.Fields(NormalizeText(s))
}

// Stem reduces a single lowercase token to its English stem.
func Stem(token string) string {
	return english.Stem(token, false)
}

// StemTokens stems each token in place order.
func StemTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Stem(t)
	}
	return out
}

// StemPhrase normalizes s and joins the stems of its tokens with single spaces.
func StemPhrase(s string) string {
	return strings.Join(StemTokens(Tokens(s)), " ")
}
