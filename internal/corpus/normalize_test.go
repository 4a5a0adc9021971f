// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package corpus

import (
	"reflect"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Gin  And   Tonic ": "gin and tonic",
		"CRÈME DE CASSIS":     "creme de cassis",
		"Piña Colada":         "pina colada",
		"":                    "",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"What are 5 cocktails containing lemon?": "what are 5 cocktails containing lemon",
		"Non-alcoholic, please!":                 "non alcoholic please",
		"I don't like rum":                       "i dont like rum",
		"My favourite is the Piña-Colada.":       "my favourite is the pina colada",
	}
	for in, want := range tests {
		if got := NormalizeText(in); got != want {
			t.Errorf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStemPhrase(t *testing.T) {
	t.Parallel()

	if got, want := StemPhrase("Lemons"), StemPhrase("lemon"); got != want {
		t.Errorf("StemPhrase(Lemons) = %q, want %q", got, want)
	}
	if got, want := StemTokens([]string{"gin", "limes"}), StemTokens([]string{"gin", "lime"}); !reflect.DeepEqual(got, want) {
		t.Errorf("StemTokens = %v, want %v", got, want)
	}
}

func TestParseAlcoholFlag(t *testing.T) {
	t.Parallel()

	tests := map[string]AlcoholFlag{
		"Alcoholic":        Alcoholic,
		"alcoholic":        Alcoholic,
		"Non alcoholic":    NonAlcoholic,
		"non-alcoholic":    NonAlcoholic,
		"non_alcoholic":    NonAlcoholic,
		"Optional alcohol": OptionalAlcohol,
		"optional":         OptionalAlcohol,
	}
	for in, want := range tests {
		got, err := ParseAlcoholFlag(in)
		if err != nil {
			t.Errorf("ParseAlcoholFlag(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAlcoholFlag(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseAlcoholFlag("sometimes"); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestAlcoholFlag_TextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []AlcoholFlag{Alcoholic, NonAlcoholic, OptionalAlcohol} {
		b, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back AlcoholFlag
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", b, err)
		}
		if back != f {
			t.Errorf("round trip %v -> %s -> %v", f, b, back)
		}
	}
}

func TestIngredientQuery(t *testing.T) {
	t.Parallel()

	c := &Cocktail{Ingredients: []Ingredient{{Name: "Lemon juice"}, {Name: "Ginger beer"}, {Name: "Sloe gin"}}}

	tests := []struct {
		query string
		want  bool
	}{
		{"lemon", true},
		{"LEMONS", true},
		{"lemon juice", true},
		{"juice", true},
		{"gin", true},
		{"ginger", true},
		{"ginger ale", false},
		{"lime", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.HasIngredient(NewIngredientQuery(tt.query)); got != tt.want {
			t.Errorf("HasIngredient(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
