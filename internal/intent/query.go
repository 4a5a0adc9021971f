// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package intent

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/barkeep/internal/corpus"
)

// stopwords never count as unrecognized preference tokens.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"also": true, "really": true, "very": true, "much": true, "so": true,
	"too": true, "with": true, "of": true, "in": true, "on": true, "that": true,
	"this": true, "these": true, "those": true, "it": true, "them": true,
	"i": true, "me": true, "my": true, "we": true, "is": true, "are": true,
	"am": true, "be": true, "lot": true, "lots": true, "drink": true,
	"drinks": true, "cocktail": true, "cocktails": true, "thing": true,
	"things": true, "stuff": true, "anything": true, "something": true,
	"any": true, "some": true, "kind": true, "kinds": true, "type": true,
	"like": true, "love": true, "enjoy": true, "please": true, "to": true,
	"de": true, "la": true, "for": true, "all": true, "quite": true,
	"especially": true, "favorite": true, "favourite": true, "ingredient": true,
	"ingredients": true, "flavor": true, "flavors": true, "flavour": true,
	"flavours": true, "taste": true, "tastes": true, "well": true, "as": true,
}

var countWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "fifteen": 15, "twenty": 20,
}

var countNouns = map[string]bool{
	"cocktail": true, "cocktails": true, "drink": true, "drinks": true,
}

// Query is one normalized query. Tokens and stems are parallel.
type Query struct {
	Raw    string
	Text   string
	Tokens []string
	Stems  []string

	stemText     string
	starts       []int
	defaultLimit int
	vocab        *Vocabulary

	ingredients []span
	cocktails   []span
	scanned     bool
}

func newQuery(raw string, vocab *Vocabulary, defaultLimit int) *Query {
	text := corpus.NormalizeText(raw)
	tokens := corpus.Tokens(text)
	stems := corpus.StemTokens(tokens)

	q := &Query{
		Raw:          raw,
		Text:         text,
		Tokens:       tokens,
		Stems:        stems,
		defaultLimit: defaultLimit,
		vocab:        vocab,
		starts:       make([]int, len(stems)),
	}

	var b strings.Builder
	for i, s := range stems {
		if i > 0 {
			b.WriteByte(' ')
		}
		q.starts[i] = b.Len()
		b.WriteString(s)
	}
	q.stemText = b.String()
	return q
}

func (q *Query) tokenAt(offset int) int {
	i := sort.SearchInts(q.starts, offset)
	if i < len(q.starts) && q.starts[i] == offset {
		return i
	}
	return -1
}

func (q *Query) scan() {
	if q.scanned {
		return
	}
	q.scanned = true
	if q.vocab == nil {
		return
	}
	q.ingredients = q.vocab.match(q.vocab.ingredients, q)
	q.cocktails = q.vocab.match(q.vocab.cocktails, q)
}

// ingredientSpans returns recognized ingredients in order of appearance.
func (q *Query) ingredientSpans() []span {
	q.scan()
	return q.ingredients
}

func (q *Query) cocktailSpans() []span {
	q.scan()
	return q.cocktails
}

// Limit returns the count named by "N [w] [w] cocktails|drinks", or the
// default when the query names none.
func (q *Query) Limit() int {
	for i, tok := range q.Tokens {
		n, ok := parseCount(tok)
		if !ok {
			continue
		}
		for j := i + 1; j <= i+3 && j < len(q.Tokens); j++ {
			if countNouns[q.Tokens[j]] {
				return n
			}
		}
	}
	return q.defaultLimit
}

func parseCount(tok string) (int, bool) {
	if n, ok := countWords[tok]; ok {
		return n, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// has reports whether phrase occurs as consecutive tokens.
func (q *Query) has(phrase ...string) bool {
	return q.index(0, phrase...) >= 0
}

// index returns the first token position at or after from where phrase
// begins, or -1.
func (q *Query) index(from int, phrase ...string) int {
	for i := from; i+len(phrase) <= len(q.Tokens); i++ {
		ok := true
		for j, p := range phrase {
			if q.Tokens[i+j] != p {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func (q *Query) hasAny(words ...string) bool {
	for _, tok := range q.Tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

func (q *Query) token(i int) string {
	if i < 0 || i >= len(q.Tokens) {
		return ""
	}
	return q.Tokens[i]
}

// Alcohol returns the alcohol constraint the query states, if any.
// Negations are checked first so "non alcoholic" never reads as alcoholic.
func (q *Query) Alcohol() *AlcoholPreference {
	negative := [][]string{
		{"non", "alcoholic"},
		{"nonalcoholic"},
		{"alcohol", "free"},
		{"without", "alcohol"},
		{"no", "alcohol"},
		{"not", "alcoholic"},
		{"zero", "alcohol"},
		{"virgin"},
		{"mocktail"},
		{"mocktails"},
	}
	for _, p := range negative {
		if q.has(p...) {
			return &AlcoholPreference{WantAlcoholic: false}
		}
	}
	if q.has("alcoholic") || q.has("with", "alcohol") || q.has("boozy") {
		return &AlcoholPreference{WantAlcoholic: true}
	}
	return nil
}
