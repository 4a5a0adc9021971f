// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package intent

import (
	"strings"

	"github.com/tomtom215/barkeep/internal/cache"
	"github.com/tomtom215/barkeep/internal/corpus"
)

// genericIngredientWords never stand alone as an ingredient: "juice" or
// "light" on their own say nothing about what is in a glass.
var genericIngredientWords = map[string]bool{
	"juice": true, "water": true, "syrup": true, "white": true, "sec": true,
	"light": true, "dark": true, "dry": true, "sweet": true, "hot": true,
	"fresh": true, "powdered": true, "crushed": true, "cube": true, "cubes": true,
	"de": true, "la": true, "of": true, "and": true, "the": true, "a": true,
}

// Vocabulary recognizes ingredient and cocktail names in stemmed text.
type Vocabulary struct {
	ingredients *cache.AhoCorasick
	cocktails   *cache.AhoCorasick
}

// NewVocabulary indexes c's ingredient vocabulary and cocktail names.
//
// Full ingredient names are patterns; so is each individual word of a
// multi-word ingredient ("rum" from "light rum") unless it is generic.
// Full names win on equal spans because they are added first.
func NewVocabulary(c *corpus.Corpus) *Vocabulary {
	v := &Vocabulary{
		ingredients: cache.NewAhoCorasick(),
		cocktails:   cache.NewAhoCorasick(),
	}

	seen := make(map[string]bool)
	add := func(pattern, canonical string) {
		if pattern == "" || seen[pattern] {
			return
		}
		seen[pattern] = true
		v.ingredients.AddPattern(pattern, canonical)
	}

	vocab := c.Vocabulary()
	for _, name := range vocab {
		add(corpus.StemPhrase(name), name)
	}

	// A word found in exactly one ingredient stands for that ingredient
	// ("tonic" -> "tonic water"); a shared word stands for itself.
	owners := make(map[string][]string)
	var words []string
	for _, name := range vocab {
		tokens := corpus.Tokens(name)
		if len(tokens) < 2 {
			continue
		}
		for _, w := range tokens {
			if genericIngredientWords[w] || stopwords[w] {
				continue
			}
			if _, ok := owners[w]; !ok {
				words = append(words, w)
			}
			owners[w] = append(owners[w], name)
		}
	}
	for _, w := range words {
		canonical := w
		if len(owners[w]) == 1 {
			canonical = owners[w][0]
		}
		add(corpus.Stem(w), canonical)
	}
	v.ingredients.Build()

	seenNames := make(map[string]bool)
	for _, ct := range c.All() {
		p := corpus.StemPhrase(ct.Name)
		if p == "" || seenNames[p] {
			continue
		}
		seenNames[p] = true
		v.cocktails.AddPattern(p, ct.ID)
	}
	v.cocktails.Build()

	return v
}

// span is a recognized name covering tokens [start, end).
type span struct {
	value      string
	start, end int
}

func (s span) within(from, to int) bool {
	return s.start >= from && s.end <= to
}

func (v *Vocabulary) match(ac *cache.AhoCorasick, q *Query) []span {
	matches := ac.LongestWordMatches(q.stemText)
	out := make([]span, 0, len(matches))
	for _, m := range matches {
		start := q.tokenAt(m.Position)
		if start < 0 {
			continue
		}
		n := strings.Count(q.stemText[m.Position:m.End], " ") + 1
		value, _ := m.Data.(string)
		out = append(out, span{value: value, start: start, end: start + n})
	}
	return out
}
