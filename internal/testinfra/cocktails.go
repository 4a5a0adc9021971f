// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package testinfra provides shared fixtures for package tests: a small
// cocktail corpus in the processed_drinks.json format and helpers that build
// it, its index, and in-memory storage.
//
// Fixture facts tests rely on:
//   - 24 cocktails; 8 list a lemon ingredient ("Lemon", "Lemon juice")
//   - 8 list gin ("Gin" or "Sloe gin"), including "Gin And Tonic"
//   - 5 are non-alcoholic, 2 are optional-alcohol, 17 are alcoholic
//   - "Hot Creamy Bush" is alcoholic and shares Irish whiskey and coffee
//     with "Irish Coffee"
package testinfra

import (
	"strings"
	"testing"

	"github.com/tomtom215/barkeep/internal/corpus"
)

// CocktailsJSON is the fixture corpus in file order.
const CocktailsJSON = `[
{"name": "Margarita", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Cocktail glass",
 "instructions": "Rub the rim of the glass with lime, dip in salt. Shake tequila, triple sec and lime juice with ice, strain.",
 "combined_ingredients": [{"ingredient": "Tequila", "measure": "1 1/2 oz"}, {"ingredient": "Triple sec", "measure": "1/2 oz"}, {"ingredient": "Lime juice", "measure": "1 oz"}, {"ingredient": "Salt", "measure": ""}]},
{"name": "Whiskey Sour", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Old-fashioned glass",
 "instructions": "Shake bourbon, lemon juice, sugar syrup and egg white with ice. Strain into a glass.",
 "combined_ingredients": [{"ingredient": "Bourbon", "measure": "2 oz"}, {"ingredient": "Lemon juice", "measure": "1 oz"}, {"ingredient": "Sugar syrup", "measure": "1/2 oz"}, {"ingredient": "Egg white", "measure": "1"}]},
{"name": "Tom Collins", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Collins glass",
 "instructions": "Mix gin, lemon juice and sugar in a glass with ice. Top with carbonated water and stir.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "2 oz"}, {"ingredient": "Lemon juice", "measure": "1 oz"}, {"ingredient": "Sugar", "measure": "1 tsp"}, {"ingredient": "Carbonated water", "measure": "3 oz"}]},
{"name": "Gin And Tonic", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Highball glass",
 "instructions": "Pour gin and tonic water over ice. Garnish with lime.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "2 oz"}, {"ingredient": "Tonic water", "measure": "5 oz"}, {"ingredient": "Lime", "measure": "1 wedge"}]},
{"name": "Negroni", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Old-fashioned glass",
 "instructions": "Stir gin, Campari and sweet vermouth with ice and strain over a large cube.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "1 oz"}, {"ingredient": "Campari", "measure": "1 oz"}, {"ingredient": "Sweet Vermouth", "measure": "1 oz"}]},
{"name": "Martini", "alcoholic": "Alcoholic", "category": "Cocktail", "glassType": "Cocktail glass",
 "instructions": "Stir gin and dry vermouth with ice, strain and garnish with an olive.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "2 oz"}, {"ingredient": "Dry Vermouth", "measure": "1/3 oz"}, {"ingredient": "Olive", "measure": "1"}]},
{"name": "Gimlet", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Cocktail glass",
 "instructions": "Shake gin and lime juice with ice and strain.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "2 oz"}, {"ingredient": "Lime juice", "measure": "3/4 oz"}]},
{"name": "French 75", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Champagne flute",
 "instructions": "Shake gin, lemon juice and sugar with ice, strain into a flute and top with champagne.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "1 1/2 oz"}, {"ingredient": "Champagne", "measure": "4 oz"}, {"ingredient": "Lemon juice", "measure": "1/2 oz"}, {"ingredient": "Sugar", "measure": "1 tsp"}]},
{"name": "Lemon Drop", "alcoholic": "Alcoholic", "category": "Cocktail", "glassType": "Cocktail glass",
 "instructions": "Shake vodka, lemon juice, triple sec and sugar with ice and strain into a sugared glass.",
 "combined_ingredients": [{"ingredient": "Vodka", "measure": "2 oz"}, {"ingredient": "Lemon juice", "measure": "1 oz"}, {"ingredient": "Triple sec", "measure": "1/2 oz"}, {"ingredient": "Sugar", "measure": "1 tsp"}]},
{"name": "Mojito", "alcoholic": "Alcoholic", "category": "Cocktail", "glassType": "Highball glass",
 "instructions": "Muddle mint leaves with sugar and lime. Add rum and ice, top with soda water.",
 "combined_ingredients": [{"ingredient": "Light rum", "measure": "2 oz"}, {"ingredient": "Lime", "measure": "Juice of 1"}, {"ingredient": "Sugar", "measure": "2 tsp"}, {"ingredient": "Mint", "measure": "2-4"}, {"ingredient": "Soda water", "measure": ""}]},
{"name": "Daiquiri", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Cocktail glass",
 "instructions": "Shake rum, lime juice and sugar syrup with ice and strain.",
 "combined_ingredients": [{"ingredient": "Light rum", "measure": "2 oz"}, {"ingredient": "Lime juice", "measure": "1 oz"}, {"ingredient": "Sugar syrup", "measure": "1/2 oz"}]},
{"name": "Hot Creamy Bush", "alcoholic": "Alcoholic", "category": "Coffee / Tea", "glassType": "Irish coffee cup",
 "instructions": "Combine all ingredients in a glass and serve hot.",
 "combined_ingredients": [{"ingredient": "Irish whiskey", "measure": "1 shot"}, {"ingredient": "Baileys irish cream", "measure": "3/4 shot"}, {"ingredient": "Coffee", "measure": "1 cup hot"}]},
{"name": "Irish Coffee", "alcoholic": "Alcoholic", "category": "Coffee / Tea", "glassType": "Irish coffee cup",
 "instructions": "Heat the coffee, add whiskey and sugar, stir and float whipped cream on top.",
 "combined_ingredients": [{"ingredient": "Irish whiskey", "measure": "1 1/2 oz"}, {"ingredient": "Coffee", "measure": "8 oz"}, {"ingredient": "Sugar", "measure": "1 tsp"}, {"ingredient": "Whipped cream", "measure": "1 tblsp"}]},
{"name": "Cosmopolitan", "alcoholic": "Alcoholic", "category": "Cocktail", "glassType": "Cocktail glass",
 "instructions": "Shake vodka, triple sec, cranberry juice and lime juice with ice and strain.",
 "combined_ingredients": [{"ingredient": "Vodka", "measure": "1 1/4 oz"}, {"ingredient": "Triple sec", "measure": "1/4 oz"}, {"ingredient": "Cranberry juice", "measure": "1/4 cup"}, {"ingredient": "Lime juice", "measure": "1/4 oz"}]},
{"name": "Moscow Mule", "alcoholic": "Alcoholic", "category": "Punch / Party Drink", "glassType": "Copper mug",
 "instructions": "Pour vodka and lime juice over ice, top with ginger beer.",
 "combined_ingredients": [{"ingredient": "Vodka", "measure": "2 oz"}, {"ingredient": "Ginger beer", "measure": "8 oz"}, {"ingredient": "Lime juice", "measure": "2 oz"}]},
{"name": "Lemonade", "alcoholic": "Non alcoholic", "category": "Other / Unknown", "glassType": "Collins glass",
 "instructions": "Squeeze the lemons, stir the juice with sugar and water until dissolved. Serve over ice.",
 "combined_ingredients": [{"ingredient": "Lemon", "measure": "4"}, {"ingredient": "Sugar", "measure": "1/2 cup"}, {"ingredient": "Water", "measure": "4 cups"}]},
{"name": "Shirley Temple", "alcoholic": "Non alcoholic", "category": "Soft Drink", "glassType": "Highball glass",
 "instructions": "Pour ginger ale over ice, add grenadine and garnish with a maraschino cherry.",
 "combined_ingredients": [{"ingredient": "Ginger ale", "measure": "6 oz"}, {"ingredient": "Grenadine", "measure": "1/2 oz"}, {"ingredient": "Maraschino cherry", "measure": "1"}]},
{"name": "Lassi - Sweet", "alcoholic": "Non alcoholic", "category": "Other / Unknown", "glassType": "Highball glass",
 "instructions": "Blend yoghurt, water, sugar and rose water until frothy.",
 "combined_ingredients": [{"ingredient": "Yoghurt", "measure": "2 cups"}, {"ingredient": "Water", "measure": "1 cup"}, {"ingredient": "Sugar", "measure": "4 tblsp"}, {"ingredient": "Rose water", "measure": "1 tsp"}]},
{"name": "Arnold Palmer", "alcoholic": "Non alcoholic", "category": "Soft Drink", "glassType": "Highball glass",
 "instructions": "Fill a glass with ice, add equal parts iced tea and lemonade.",
 "combined_ingredients": [{"ingredient": "Iced tea", "measure": "4 oz"}, {"ingredient": "Lemonade", "measure": "4 oz"}]},
{"name": "Eggnog", "alcoholic": "Optional alcohol", "category": "Punch / Party Drink", "glassType": "Punch bowl",
 "instructions": "Beat eggs with sugar, whisk in milk and nutmeg. Add rum if desired.",
 "combined_ingredients": [{"ingredient": "Egg", "measure": "6"}, {"ingredient": "Sugar", "measure": "1/2 cup"}, {"ingredient": "Milk", "measure": "4 cups"}, {"ingredient": "Nutmeg", "measure": "1 tsp"}, {"ingredient": "Light rum", "measure": "optional"}]},
{"name": "Spiced Cider", "alcoholic": "Optional alcohol", "category": "Punch / Party Drink", "glassType": "Coffee mug",
 "instructions": "Warm apple cider with cinnamon. Add spiced rum to taste.",
 "combined_ingredients": [{"ingredient": "Apple cider", "measure": "1 cup"}, {"ingredient": "Cinnamon", "measure": "1 stick"}, {"ingredient": "Spiced rum", "measure": "optional"}]},
{"name": "Fruit Cooler", "alcoholic": "Non alcoholic", "category": "Other / Unknown", "glassType": "Highball glass",
 "instructions": "Mix apple juice and pineapple juice, squeeze in lemon and serve over ice.",
 "combined_ingredients": [{"ingredient": "Apple juice", "measure": "1 cup"}, {"ingredient": "Pineapple juice", "measure": "1 cup"}, {"ingredient": "Lemon", "measure": "1/2"}, {"ingredient": "Ice", "measure": ""}]},
{"name": "Bramble", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Old-fashioned glass",
 "instructions": "Shake gin, lemon juice and sugar syrup, pour over crushed ice and drizzle blackberry liqueur.",
 "combined_ingredients": [{"ingredient": "Gin", "measure": "1 1/2 oz"}, {"ingredient": "Lemon juice", "measure": "3/4 oz"}, {"ingredient": "Sugar syrup", "measure": "1/2 oz"}, {"ingredient": "Blackberry liqueur", "measure": "1/2 oz"}]},
{"name": "Sloe Gin Fizz", "alcoholic": "Alcoholic", "category": "Ordinary Drink", "glassType": "Highball glass",
 "instructions": "Shake sloe gin, lemon juice and sugar with ice, strain and top with carbonated water.",
 "combined_ingredients": [{"ingredient": "Sloe gin", "measure": "2 oz"}, {"ingredient": "Lemon juice", "measure": "1/2 oz"}, {"ingredient": "Sugar", "measure": "1 tsp"}, {"ingredient": "Carbonated water", "measure": ""}]}
]`

// LemonCocktails lists the fixture cocktails with a lemon ingredient, alphabetically.
var LemonCocktails = []string{
	"Bramble", "French 75", "Fruit Cooler", "Lemon Drop",
	"Lemonade", "Sloe Gin Fizz", "Tom Collins", "Whiskey Sour",
}

// NonAlcoholicCocktails lists the strictly non-alcoholic fixtures, alphabetically.
var NonAlcoholicCocktails = []string{
	"Arnold Palmer", "Fruit Cooler", "Lassi - Sweet", "Lemonade", "Shirley Temple",
}

// Cocktails decodes the fixture records.
func Cocktails(tb testing.TB) []corpus.Cocktail {
	tb.Helper()
	cocktails, skipped, err := corpus.Decode(strings.NewReader(CocktailsJSON))
	if err != nil {
		tb.Fatalf("decode fixture corpus: %v", err)
	}
	if len(skipped) > 0 {
		tb.Fatalf("fixture corpus skipped records: %+v", skipped)
	}
	return cocktails
}

// Corpus builds the fixture corpus.
func Corpus(tb testing.TB) *corpus.Corpus {
	tb.Helper()
	c, err := corpus.New(Cocktails(tb))
	if err != nil {
		tb.Fatalf("build fixture corpus: %v", err)
	}
	return c
}
