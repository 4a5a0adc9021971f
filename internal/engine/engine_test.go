// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/intent"
	"github.com/tomtom215/barkeep/internal/preference"
	"github.com/tomtom215/barkeep/internal/testinfra"
)

type fixture struct {
	corpus *corpus.Corpus
	prefs  *preference.Store
	engine *engine.Engine
}

func newFixture(t *testing.T, mutate ...func(*config.EngineConfig)) *fixture {
	t.Helper()
	c := testinfra.Corpus(t)
	cfg := testinfra.EngineConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	prefs := testinfra.Preferences(t)
	e, err := engine.New(cfg, c, testinfra.Index(t, c), prefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return &fixture{corpus: c, prefs: prefs, engine: e}
}

func (f *fixture) handle(t *testing.T, user, text string) engine.QueryResult {
	t.Helper()
	r, err := f.engine.Handle(context.Background(), user, text)
	if err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
	return r
}

func (f *fixture) execute(t *testing.T, user string, in intent.Intent) engine.QueryResult {
	t.Helper()
	r, err := f.engine.Execute(context.Background(), user, in)
	if err != nil {
		t.Fatalf("Execute(%#v): %v", in, err)
	}
	return r
}

func asList(t *testing.T, r engine.QueryResult) *engine.CocktailList {
	t.Helper()
	list, ok := r.(*engine.CocktailList)
	if !ok {
		t.Fatalf("result = %#v, want *CocktailList", r)
	}
	return list
}

func assertErrorKind(t *testing.T, r engine.QueryResult, want engine.ErrorKind) {
	t.Helper()
	qe, ok := engine.AsQueryError(r)
	if !ok {
		t.Fatalf("result = %#v, want *QueryError %s", r, want)
	}
	if qe.Kind != want {
		t.Errorf("error kind = %s, want %s", qe.Kind, want)
	}
	if qe.Message == "" {
		t.Error("error message is empty")
	}
}

func TestHandle_LemonSearch(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.handle(t, "u", "What are 5 cocktails containing lemon?"))
	if got, want := list.Names(), testinfra.LemonCocktails[:5]; !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}

	lemon := corpus.NewIngredientQuery("lemon")
	for _, it := range list.Items {
		ct, err := f.corpus.Get(it.Name)
		if err != nil {
			t.Fatalf("Get(%q): %v", it.Name, err)
		}
		if !ct.HasIngredient(lemon) {
			t.Errorf("%s has no lemon ingredient", it.Name)
		}
	}
}

func TestHandle_NoMatchIsEmptyList(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.execute(t, "u", intent.SearchByIngredient{Ingredient: "absinthe", Limit: 5}))
	if len(list.Items) != 0 {
		t.Errorf("items = %v, want none", list.Names())
	}
}

func TestHandle_NonAlcoholicNeverAlcoholic(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.handle(t, "u", "Give me 10 non-alcoholic drinks"))
	if got := list.Names(); !reflect.DeepEqual(got, testinfra.NonAlcoholicCocktails) {
		t.Errorf("names = %v, want %v", got, testinfra.NonAlcoholicCocktails)
	}
	for _, it := range list.Items {
		if it.Alcoholic != corpus.NonAlcoholic {
			t.Errorf("%s is %s", it.Name, it.Alcoholic)
		}
	}

	list = asList(t, f.execute(t, "u", intent.SearchByIngredient{
		Ingredient: "lemon",
		Limit:      50,
		Alcohol:    &intent.AlcoholPreference{WantAlcoholic: false},
	}))
	for _, it := range list.Items {
		if it.Alcoholic != corpus.NonAlcoholic {
			t.Errorf("%s is %s", it.Name, it.Alcoholic)
		}
	}
}

func TestHandle_AlcoholicIncludesOptional(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.execute(t, "u", intent.FilterByAlcoholContent{WantAlcoholic: true, Limit: 1000}))
	if len(list.Items) != 19 {
		t.Errorf("items = %d, want 19 (17 alcoholic + 2 optional; limit clamps to 50)", len(list.Items))
	}
	for _, it := range list.Items {
		if it.Alcoholic == corpus.NonAlcoholic {
			t.Errorf("%s is non-alcoholic", it.Name)
		}
	}
}

func TestHandle_SimilarNeverEchoesSource(t *testing.T) {
	f := newFixture(t)

	for _, ct := range f.corpus.All() {
		list := asList(t, f.execute(t, "u", intent.RecommendSimilarTo{CocktailName: ct.Name, Limit: 5}))
		if len(list.Items) != 5 {
			t.Errorf("%s: %d items, want 5", ct.Name, len(list.Items))
		}
		for i, it := range list.Items {
			if it.ID == ct.ID {
				t.Errorf("%s: result echoes its source", ct.Name)
			}
			if i > 0 && it.Score > list.Items[i-1].Score {
				t.Errorf("%s: scores not descending at %d", ct.Name, i)
			}
		}
	}
}

func TestHandle_SimilarToHotCreamyBush(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.handle(t, "u", "Recommend 5 cocktails similar to Hot Creamy Bush"))
	if list.Source != "Hot Creamy Bush" {
		t.Errorf("source = %q", list.Source)
	}
	if len(list.Items) == 0 || list.Items[0].Name != "Irish Coffee" {
		t.Errorf("nearest = %v, want Irish Coffee first", list.Names())
	}
}

func TestHandle_SimilarFuzzyAndNotFound(t *testing.T) {
	f := newFixture(t)

	list := asList(t, f.execute(t, "u", intent.RecommendSimilarTo{CocktailName: "Margarta", Limit: 3}))
	if list.Source != "Margarita" {
		t.Errorf("fuzzy source = %q, want Margarita", list.Source)
	}

	assertErrorKind(t, f.execute(t, "u", intent.RecommendSimilarTo{CocktailName: "Pina Colada", Limit: 3}), engine.KindNotFound)

	ct, err := f.engine.ResolveCocktail("MOJITO")
	if err != nil || ct.Name != "Mojito" {
		t.Errorf("ResolveCocktail(MOJITO) = %v, %v", ct, err)
	}
	if _, err := f.engine.ResolveCocktail("nothing like it"); !errors.Is(err, corpus.ErrNotFound) {
		t.Errorf("ResolveCocktail miss = %v, want ErrNotFound", err)
	}
}

func TestHandle_InvalidLimit(t *testing.T) {
	f := newFixture(t)

	for _, in := range []intent.Intent{
		intent.SearchByIngredient{Ingredient: "lemon", Limit: 0},
		intent.FilterByAlcoholContent{Limit: -1},
		intent.RecommendSimilarTo{CocktailName: "Mojito", Limit: 0},
		intent.RecommendFromPreferences{Limit: 0},
	} {
		assertErrorKind(t, f.execute(t, "u", in), engine.KindInvalidArgument)
	}
}

func TestHandle_Unclassified(t *testing.T) {
	f := newFixture(t)

	r, err := f.engine.Handle(context.Background(), "u", "what's the weather tomorrow")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	assertErrorKind(t, r, engine.KindUnclassifiedQuery)
}

func TestHandle_NewUserHasNoPreferences(t *testing.T) {
	f := newFixture(t)

	assertErrorKind(t, f.handle(t, "newcomer", "Recommend a cocktail based on my preferences"), engine.KindNoPreferences)
}

func TestHandle_StateAndShowPreferences(t *testing.T) {
	f := newFixture(t)

	r := f.handle(t, "alice", "I like gin and tonic")
	conf, ok := r.(*engine.PreferenceConfirmation)
	if !ok {
		t.Fatalf("result = %#v, want *PreferenceConfirmation", r)
	}
	if !conf.Changed {
		t.Error("first statement reported unchanged")
	}
	if !reflect.DeepEqual(conf.RecognizedLikes, []string{"gin", "tonic water"}) {
		t.Errorf("RecognizedLikes = %v", conf.RecognizedLikes)
	}
	if !reflect.DeepEqual(conf.LikedCocktails, []string{"Gin And Tonic"}) {
		t.Errorf("LikedCocktails = %v", conf.LikedCocktails)
	}

	again, ok := f.handle(t, "alice", "I like gin and tonic").(*engine.PreferenceConfirmation)
	if !ok || again.Changed {
		t.Errorf("repeated statement = %#v, want unchanged confirmation", again)
	}

	shown, ok := f.handle(t, "alice", "What are my favourite ingredients?").(*engine.PreferenceConfirmation)
	if !ok || !shown.Show {
		t.Fatalf("show = %#v", shown)
	}
	if !reflect.DeepEqual(shown.RecognizedLikes, conf.RecognizedLikes) {
		t.Errorf("shown likes = %v, want %v", shown.RecognizedLikes, conf.RecognizedLikes)
	}
}

func ginOrTonic(items []engine.Item) int {
	n := 0
	for _, it := range items {
		for _, ing := range it.Ingredients {
			lower := strings.ToLower(ing)
			if strings.Contains(lower, "gin") && !strings.Contains(lower, "ginger") || strings.Contains(lower, "tonic") {
				n++
				break
			}
		}
	}
	return n
}

func TestHandle_PreferenceBiasIsMonotone(t *testing.T) {
	biased := newFixture(t)
	baseline := newFixture(t, func(c *config.EngineConfig) { c.IngredientBonus = 0 })

	for _, f := range []*fixture{biased, baseline} {
		f.handle(t, "gt", "I like gin and tonic")
	}

	withBias := asList(t, biased.handle(t, "gt", "Recommend 5 cocktails for me"))
	without := asList(t, baseline.handle(t, "gt", "Recommend 5 cocktails for me"))

	if len(withBias.Items) != 5 || len(without.Items) != 5 {
		t.Fatalf("items = %d and %d, want 5", len(withBias.Items), len(without.Items))
	}
	b, z := ginOrTonic(withBias.Items), ginOrTonic(without.Items)
	if b < z {
		t.Errorf("gin/tonic results with bonus = %d, below zero-bonus baseline %d", b, z)
	}
	if b == 0 {
		t.Error("bonus produced no gin or tonic cocktails")
	}
	for _, it := range withBias.Items {
		if it.Name == "Gin And Tonic" {
			t.Error("liked cocktail was recommended back")
		}
	}
}

func TestHandle_DislikedCocktailsExcluded(t *testing.T) {
	f := newFixture(t)

	f.execute(t, "d", intent.StatePreference{
		LikedIngredients:  []string{"gin"},
		DislikedCocktails: []string{"negroni"},
	})

	list := asList(t, f.execute(t, "d", intent.RecommendFromPreferences{Limit: 50}))
	for _, it := range list.Items {
		if it.ID == "negroni" {
			t.Error("disliked cocktail recommended")
		}
	}
	for i := 1; i < len(list.Items); i++ {
		if list.Items[i].Score > list.Items[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestHandle_UnrecognizedLikesSeed(t *testing.T) {
	f := newFixture(t)

	f.execute(t, "raw", intent.StatePreference{Unrecognized: []string{"whiskey"}})
	list := asList(t, f.execute(t, "raw", intent.RecommendFromPreferences{Limit: 3}))
	if len(list.Items) != 3 {
		t.Errorf("items = %v, want 3", list.Names())
	}

	f.execute(t, "nothing", intent.StatePreference{Unrecognized: []string{"xyzzy"}})
	assertErrorKind(t, f.execute(t, "nothing", intent.RecommendFromPreferences{Limit: 3}), engine.KindNoPreferences)
}

func TestHandle_CandidatePool(t *testing.T) {
	f := newFixture(t, func(c *config.EngineConfig) { c.CandidatePool = 3 })

	f.execute(t, "p", intent.StatePreference{LikedIngredients: []string{"lemon"}})
	list := asList(t, f.execute(t, "p", intent.RecommendFromPreferences{Limit: 50}))
	// Every lemon cocktail joins the pool regardless of distance.
	if len(list.Items) < len(testinfra.LemonCocktails) {
		t.Errorf("items = %d, want at least %d", len(list.Items), len(testinfra.LemonCocktails))
	}
}

func TestHandle_CacheKeyedByGeneration(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "a", "What are 5 cocktails containing lemon?")
	f.handle(t, "b", "What are 5 cocktails containing lemon?")
	if s := f.engine.Stats(); s.CacheHits != 1 || s.CacheMisses != 1 || s.CacheEntries != 1 {
		t.Fatalf("hits=%d misses=%d entries=%d, want 1/1/1", s.CacheHits, s.CacheMisses, s.CacheEntries)
	}

	gen, err := f.engine.Swap(f.corpus, testinfra.Index(t, f.corpus))
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if gen != 2 || f.engine.Generation() != 2 {
		t.Errorf("generation = %d/%d, want 2", gen, f.engine.Generation())
	}

	f.handle(t, "a", "What are 5 cocktails containing lemon?")
	if s := f.engine.Stats(); s.CacheMisses != 2 {
		t.Errorf("misses after swap = %d, want 2", s.CacheMisses)
	}
}

func TestSwap_RejectsMismatchedIndex(t *testing.T) {
	f := newFixture(t)

	cocktails := testinfra.Cocktails(t)[:3]
	small, err := corpus.New(cocktails)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	if _, err := f.engine.Swap(f.corpus, testinfra.Index(t, small)); !errors.Is(err, engine.ErrInternalConsistency) {
		t.Errorf("Swap = %v, want ErrInternalConsistency", err)
	}
	if f.engine.Generation() != 1 {
		t.Errorf("generation = %d after a rejected swap", f.engine.Generation())
	}
}

type brokenBackend struct{ *preference.MemoryBackend }

func (brokenBackend) Get(context.Context, string) (preference.Profile, bool, error) {
	return preference.Profile{}, false, errors.New("disk on fire")
}

func TestHandle_StoreFailureIsInternal(t *testing.T) {
	c := testinfra.Corpus(t)
	prefs := preference.NewStore(brokenBackend{preference.NewMemoryBackend()}, zerolog.Nop())
	e, err := engine.New(testinfra.EngineConfig(), c, testinfra.Index(t, c), prefs, zerolog.Nop())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	r, err := e.Handle(context.Background(), "u", "Recommend a cocktail")
	if !errors.Is(err, engine.ErrInternalConsistency) {
		t.Fatalf("err = %v, want ErrInternalConsistency", err)
	}
	assertErrorKind(t, r, engine.KindInternalConsistency)
}
