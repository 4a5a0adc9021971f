// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package reply

const builtinTemplates = `
{{define "search"}}
{{if .Count}}
  Here {{plural .Count "is" "are"}} {{.Count}}{{with .Constraint}} {{.}}{{end}} {{plural .Count "cocktail" "cocktails"}} containing {{.Ingredient}}: {{list .Names}}.
{{else}}
  I couldn't find any{{with .Constraint}} {{.}}{{end}} cocktails containing {{.Ingredient}}.
{{end}}
{{end}}

{{define "alcohol"}}
{{if .Count}}
  Here {{plural .Count "is" "are"}} {{.Count}} {{.Constraint}} {{plural .Count "cocktail" "cocktails"}}: {{list .Names}}.
{{else}}
  I don't know any {{.Constraint}} cocktails.
{{end}}
{{end}}

{{define "similar"}}
{{if .Count}}
  Here {{plural .Count "is" "are"}} {{.Count}} {{plural .Count "cocktail" "cocktails"}} similar to {{.Source}}: {{list .Names}}.
{{else}}
  I couldn't find anything similar to {{.Source}}.
{{end}}
{{end}}

{{define "preferences"}}
{{if .Count}}
  Based on your preferences, you might like: {{list .Names}}.
{{else}}
  I couldn't find new cocktails for your preferences.
{{end}}
{{end}}

{{define "confirmation"}}
{{if .Changed}}Got it.{{else}}I already knew that.{{end}}
{{with .RecognizedLikes}} Your favourite ingredients: {{list .}}.{{end}}
{{with .LikedCocktails}} Cocktails you like: {{list .}}.{{end}}
{{with .Unrecognized}} I didn't recognize: {{list .}}.{{end}}
{{end}}

{{define "show"}}
{{if or .RecognizedLikes .LikedCocktails .Unrecognized .DislikedIngredients .DislikedCocktails}}
{{with .RecognizedLikes}} Your favourite ingredients: {{list .}}.{{end}}
{{with .LikedCocktails}} Cocktails you like: {{list .}}.{{end}}
{{with .Unrecognized}} Other things you like: {{list .}}.{{end}}
{{with .DislikedIngredients}} Ingredients you avoid: {{list .}}.{{end}}
{{with .DislikedCocktails}} Cocktails you avoid: {{list .}}.{{end}}
{{else}}
  You haven't told me any preferences yet.
{{end}}
{{end}}

{{define "error"}}{{.Message}}{{end}}
`
