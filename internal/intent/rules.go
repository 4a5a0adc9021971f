// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package intent

// Rule recognizes one intent shape. Attempt returns false when the rule
// does not apply, letting the next rule try.
type Rule interface {
	Name() string
	Attempt(q *Query) (Intent, bool)
}

// DefaultRules returns the standard rule chain in priority order.
func DefaultRules() []Rule {
	return []Rule{
		ingredientSearchRule{},
		alcoholContentRule{},
		similarToRule{},
		statePreferenceRule{},
		recommendRule{},
		showPreferencesRule{},
	}
}

var containmentVerbs = map[string]bool{
	"containing": true,
	"contain":    true,
	"contains":   true,
	"with":       true,
	"including":  true,
}

// ingredientSearchRule: a containment verb followed by a known ingredient.
type ingredientSearchRule struct{}

func (ingredientSearchRule) Name() string { return "ingredient_search" }

func (ingredientSearchRule) Attempt(q *Query) (Intent, bool) {
	verb := -1
	for i, tok := range q.Tokens {
		if containmentVerbs[tok] {
			verb = i
			break
		}
	}
	if verb < 0 {
		return nil, false
	}

	for _, s := range q.ingredientSpans() {
		if s.start > verb {
			return SearchByIngredient{
				Ingredient: s.value,
				Limit:      q.Limit(),
				Alcohol:    q.Alcohol(),
			}, true
		}
	}
	return nil, false
}

type alcoholContentRule struct{}

func (alcoholContentRule) Name() string { return "alcohol_content" }

func (alcoholContentRule) Attempt(q *Query) (Intent, bool) {
	a := q.Alcohol()
	if a == nil {
		return nil, false
	}
	return FilterByAlcoholContent{WantAlcoholic: a.WantAlcoholic, Limit: q.Limit()}, true
}

// notSimilarLike lists words that, directly before "like", make it a verb
// of preference rather than comparison.
var notSimilarLike = map[string]bool{
	"i": true, "we": true, "would": true, "id": true, "wed": true,
	"dont": true, "not": true, "didnt": true, "doesnt": true,
	"you": true, "they": true, "also": true,
}

// similarToRule: "similar to X" or "like X". Once the phrase is present the
// rule owns the query; an unrecognized X yields Unknown.
type similarToRule struct{}

func (similarToRule) Name() string { return "similar_to" }

func (similarToRule) Attempt(q *Query) (Intent, bool) {
	rest := -1
	if i := q.index(0, "similar", "to"); i >= 0 {
		rest = i + 2
	} else {
		for i, tok := range q.Tokens {
			if tok == "like" && !preferenceLike(q, i) {
				rest = i + 1
				break
			}
		}
	}
	if rest < 0 {
		return nil, false
	}

	var best span
	found := false
	for _, s := range q.cocktailSpans() {
		if s.start < rest {
			continue
		}
		if !found || s.end-s.start > best.end-best.start {
			best, found = s, true
		}
	}
	if !found {
		return Unknown{}, true
	}
	return RecommendSimilarTo{CocktailName: best.value, Limit: q.Limit()}, true
}

// preferenceLike reports whether the "like" at i is "I like", "I really
// like", "would like" and so on.
func preferenceLike(q *Query, i int) bool {
	prev := q.token(i - 1)
	if notSimilarLike[prev] {
		return true
	}
	if prev == "really" || prev == "do" {
		return notSimilarLike[q.token(i-2)]
	}
	return false
}

type trigger struct {
	words    []string
	positive bool
}

// preferenceTriggers are tried longest first at each position.
var preferenceTriggers = []trigger{
	{[]string{"i", "really", "do", "not", "like"}, false},
	{[]string{"i", "really", "dont", "like"}, false},
	{[]string{"i", "do", "not", "like"}, false},
	{[]string{"i", "do", "not", "enjoy"}, false},
	{[]string{"i", "dont", "like"}, false},
	{[]string{"i", "dont", "enjoy"}, false},
	{[]string{"i", "cant", "stand"}, false},
	{[]string{"i", "really", "like"}, true},
	{[]string{"i", "really", "love"}, true},
	{[]string{"i", "really", "enjoy"}, true},
	{[]string{"i", "also", "like"}, true},
	{[]string{"i", "hate"}, false},
	{[]string{"i", "dislike"}, false},
	{[]string{"i", "detest"}, false},
	{[]string{"i", "like"}, true},
	{[]string{"i", "love"}, true},
	{[]string{"i", "enjoy"}, true},
	{[]string{"i", "adore"}, true},
	{[]string{"i", "prefer"}, true},
}

type clause struct {
	from, to int
	positive bool
}

// statePreferenceRule: likes and dislikes stated in the first person,
// including "my favourite X is Y". Each trigger opens a clause that runs
// until the next trigger.
type statePreferenceRule struct{}

func (statePreferenceRule) Name() string { return "state_preference" }

func (statePreferenceRule) Attempt(q *Query) (Intent, bool) {
	clauses := preferenceClauses(q)
	if len(clauses) == 0 {
		return nil, false
	}

	var out StatePreference
	for _, c := range clauses {
		collectClause(q, c, &out)
	}
	if out.IsEmpty() {
		return nil, false
	}
	return out, true
}

func preferenceClauses(q *Query) []clause {
	var clauses []clause
	for i := 0; i < len(q.Tokens); {
		start, ok, positive := matchTrigger(q, i)
		if !ok {
			i++
			continue
		}
		if n := len(clauses); n > 0 {
			clauses[n-1].to = i
		}
		clauses = append(clauses, clause{from: start, to: len(q.Tokens), positive: positive})
		i = start
	}
	return clauses
}

// matchTrigger returns the first clause token after a trigger at i.
func matchTrigger(q *Query, i int) (int, bool, bool) {
	for _, t := range preferenceTriggers {
		if q.index(i, t.words...) == i {
			return i + len(t.words), true, t.positive
		}
	}

	if q.token(i) == "my" && (q.token(i+1) == "favorite" || q.token(i+1) == "favourite") {
		for j := i + 2; j <= i+3; j++ {
			if tok := q.token(j); tok == "is" || tok == "are" {
				return j + 1, true, true
			}
		}
	}
	return 0, false, false
}

func collectClause(q *Query, c clause, out *StatePreference) {
	covered := make([]bool, c.to-c.from)
	mark := func(s span) {
		for k := s.start; k < s.end; k++ {
			covered[k-c.from] = true
		}
	}

	for _, s := range q.cocktailSpans() {
		if !s.within(c.from, c.to) {
			continue
		}
		mark(s)
		if c.positive {
			out.LikedCocktails = appendUnique(out.LikedCocktails, s.value)
		} else {
			out.DislikedCocktails = appendUnique(out.DislikedCocktails, s.value)
		}
	}

	for _, s := range q.ingredientSpans() {
		if !s.within(c.from, c.to) {
			continue
		}
		mark(s)
		if c.positive {
			out.LikedIngredients = appendUnique(out.LikedIngredients, s.value)
		} else {
			out.DislikedIngredients = appendUnique(out.DislikedIngredients, s.value)
		}
	}

	if !c.positive {
		return
	}
	for k := c.from; k < c.to; k++ {
		tok := q.Tokens[k]
		if covered[k-c.from] || stopwords[tok] {
			continue
		}
		if _, isCount := parseCount(tok); isCount {
			continue
		}
		out.Unrecognized = appendUnique(out.Unrecognized, tok)
	}
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

// recommendRule: "recommend" or "suggest" with nothing to anchor on.
type recommendRule struct{}

func (recommendRule) Name() string { return "recommend_from_preferences" }

func (recommendRule) Attempt(q *Query) (Intent, bool) {
	if !q.hasAny("recommend", "recommendation", "recommendations", "suggest", "suggestion", "suggestions") {
		return nil, false
	}
	if len(q.cocktailSpans()) > 0 || len(q.ingredientSpans()) > 0 {
		return nil, false
	}
	return RecommendFromPreferences{Limit: q.Limit()}, true
}

// showPreferencesRule: "what are my favourite ingredients" and similar.
type showPreferencesRule struct{}

func (showPreferencesRule) Name() string { return "show_preferences" }

func (showPreferencesRule) Attempt(q *Query) (Intent, bool) {
	if !q.hasAny("what", "which", "show", "list", "tell") {
		return nil, false
	}
	for _, fav := range []string{"favorite", "favourite"} {
		i := q.index(0, "my", fav)
		if i < 0 {
			continue
		}
		switch q.token(i + 2) {
		case "ingredients", "ingredient", "cocktails", "cocktail", "drinks":
			return ShowPreferences{}, true
		}
	}
	return nil, false
}
