// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/barkeep/internal/corpus"
	"github.com/tomtom215/barkeep/internal/testinfra"
)

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)

	if c.Len() != 24 {
		t.Fatalf("Len = %d, want 24", c.Len())
	}
	if got := c.At(0).Name; got != "Margarita" {
		t.Errorf("At(0) = %q, want Margarita (insertion order)", got)
	}

	hcb, err := c.Get("hot CREAMY bush")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hcb.ID != "hot creamy bush" || hcb.Alcoholic != corpus.Alcoholic {
		t.Errorf("Hot Creamy Bush = %+v", hcb)
	}
	if hcb.Ingredients[0].Measure != "1 shot" {
		t.Errorf("measure not preserved: %+v", hcb.Ingredients[0])
	}

	if _, err := c.Get("Zombie"); !errors.Is(err, corpus.ErrNotFound) {
		t.Errorf("Get(Zombie) error = %v, want ErrNotFound", err)
	}
}

func TestCanonicalText(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)
	gt, _ := c.Get("gin and tonic")

	want := "Gin And Tonic Gin, Tonic water, Lime Pour gin and tonic water over ice. Garnish with lime."
	if got := gt.CanonicalText(); got != want {
		t.Errorf("CanonicalText = %q, want %q", got, want)
	}
}

func TestWithIngredient(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)

	lemon := c.WithIngredient(corpus.NewIngredientQuery("lemon"))
	corpus.SortByName(lemon)

	names := make([]string, len(lemon))
	for i, ct := range lemon {
		names[i] = ct.Name
	}
	if !reflect.DeepEqual(names, testinfra.LemonCocktails) {
		t.Errorf("lemon cocktails = %v, want %v", names, testinfra.LemonCocktails)
	}

	if got := len(c.WithIngredient(corpus.NewIngredientQuery("gin"))); got != 8 {
		t.Errorf("gin cocktails = %d, want 8", got)
	}
	if got := c.WithIngredient(corpus.NewIngredientQuery("absinthe")); len(got) != 0 {
		t.Errorf("absinthe cocktails = %d, want 0", len(got))
	}
}

func TestVocabulary(t *testing.T) {
	t.Parallel()

	vocab := testinfra.Corpus(t).Vocabulary()

	seen := make(map[string]bool, len(vocab))
	for i, v := range vocab {
		if v != corpus.NormalizeKey(v) {
			t.Errorf("vocabulary entry %q is not normalized", v)
		}
		if seen[v] {
			t.Errorf("duplicate vocabulary entry %q", v)
		}
		seen[v] = true
		if i > 0 && vocab[i-1] > v {
			t.Errorf("vocabulary not sorted at %d", i)
		}
	}
	for _, want := range []string{"gin", "lemon juice", "tonic water", "sugar"} {
		if !seen[want] {
			t.Errorf("vocabulary missing %q", want)
		}
	}
}

func TestSuggestNames(t *testing.T) {
	t.Parallel()

	c := testinfra.Corpus(t)

	got := c.SuggestNames("m", 10)
	want := []string{"Margarita", "Martini", "Mojito", "Moscow Mule"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SuggestNames(m) = %v, want %v", got, want)
	}
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	base := corpus.Cocktail{Name: "Negroni", Alcoholic: corpus.Alcoholic}

	tests := []struct {
		name    string
		input   []corpus.Cocktail
		wantErr error
	}{
		{"empty name", []corpus.Cocktail{{Name: "  ", Alcoholic: corpus.Alcoholic}}, corpus.ErrInvalidRecord},
		{"missing flag", []corpus.Cocktail{{Name: "Negroni"}}, corpus.ErrInvalidRecord},
		{"case-insensitive duplicate", []corpus.Cocktail{base, {Name: "NEGRONI ", Alcoholic: corpus.Alcoholic}}, corpus.ErrDuplicate},
	}
	for _, tt := range tests {
		if _, err := corpus.New(tt.input); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestDecode_PlainIngredientsAndBadFlag(t *testing.T) {
	t.Parallel()

	ok := `[{"name": "Screwdriver", "alcoholic": "alcoholic", "ingredients": ["Vodka", "Orange juice", ""], "instructions": "Stir."}]`
	c, _, err := corpus.Load(strings.NewReader(ok))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.At(0).IngredientNames(); !reflect.DeepEqual(got, []string{"Vodka", "Orange juice"}) {
		t.Errorf("ingredients = %v", got)
	}

	bad := `[{"name": "Mystery", "alcoholic": "perhaps"}]`
	if _, _, err := corpus.Load(strings.NewReader(bad)); !errors.Is(err, corpus.ErrInvalidRecord) {
		t.Errorf("bad flag error = %v, want ErrInvalidRecord", err)
	}
}

func TestDecode_SkipsBlankRows(t *testing.T) {
	t.Parallel()

	data := `[
{"name": "Screwdriver", "alcoholic": "Alcoholic", "ingredients": ["Vodka", "Orange juice"], "instructions": "Stir."},
{"name": "Unlabelled Punch", "alcoholic": "", "ingredients": ["Rum"], "instructions": ""},
{"name": "", "alcoholic": "Alcoholic", "ingredients": [], "instructions": ""},
{"name": "Lemonade", "alcoholic": "Non alcoholic", "ingredients": ["Lemon", "Water", "Sugar"], "instructions": "Stir."}
]`
	c, skipped, err := corpus.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 || c.At(0).Name != "Screwdriver" || c.At(1).Name != "Lemonade" {
		t.Errorf("corpus = %v, want Screwdriver and Lemonade", c.IDs())
	}
	want := []corpus.Skipped{
		{Index: 1, Name: "Unlabelled Punch", Reason: "empty alcohol flag"},
		{Index: 2, Name: "", Reason: "empty name"},
	}
	if !reflect.DeepEqual(skipped, want) {
		t.Errorf("skipped = %+v, want %+v", skipped, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed_drinks.json")
	if err := os.WriteFile(path, []byte(testinfra.CocktailsJSON), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, skipped, err := corpus.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %+v, want none", skipped)
	}
	if c.Len() != 24 {
		t.Errorf("Len = %d, want 24", c.Len())
	}

	if _, _, err := corpus.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
