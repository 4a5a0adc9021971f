// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package intent

import (
	"github.com/tomtom215/barkeep/internal/corpus"
)

// RuleUnknown is reported when no rule fires.
const RuleUnknown = "none"

// Classifier runs the rule chain against queries. It is immutable and safe
// for concurrent use.
type Classifier struct {
	vocab        *Vocabulary
	rules        []Rule
	defaultLimit int
}

// NewClassifier builds a classifier over c's vocabulary with the default
// rule chain. defaultLimit fills the limit slot when a query names no count.
func NewClassifier(c *corpus.Corpus, defaultLimit int) *Classifier {
	return NewClassifierWithRules(NewVocabulary(c), defaultLimit, DefaultRules()...)
}

// NewClassifierWithRules builds a classifier with an explicit rule chain.
func NewClassifierWithRules(vocab *Vocabulary, defaultLimit int, rules ...Rule) *Classifier {
	return &Classifier{
		vocab:        vocab,
		rules:        rules,
		defaultLimit: defaultLimit,
	}
}

// Classify returns the intent of text. It is total: anything no rule
// recognizes is Unknown.
func (c *Classifier) Classify(text string) Intent {
	in, _ := c.ClassifyWithRule(text)
	return in
}

// ClassifyWithRule is Classify that also names the rule that fired.
func (c *Classifier) ClassifyWithRule(text string) (Intent, string) {
	q := newQuery(text, c.vocab, c.defaultLimit)
	if len(q.Tokens) == 0 {
		return Unknown{}, RuleUnknown
	}
	for _, r := range c.rules {
		if in, ok := r.Attempt(q); ok {
			return in, r.Name()
		}
	}
	return Unknown{}, RuleUnknown
}
