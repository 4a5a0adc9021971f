// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package reply renders query results as short English sentences for the
// HTTP reply field and the CLI.
package reply

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/tomtom215/barkeep/internal/engine"
	"github.com/tomtom215/barkeep/internal/intent"
)

// Formatter turns a result into text.
type Formatter interface {
	Format(r engine.QueryResult) (string, error)
}

// TemplateFormatter renders deterministic sentences from text/template
// definitions. It is safe for concurrent use.
type TemplateFormatter struct {
	tmpl *template.Template
}

// NewTemplateFormatter parses the built-in templates.
func NewTemplateFormatter() (*TemplateFormatter, error) {
	return NewTemplateFormatterFrom(builtinTemplates)
}

// NewTemplateFormatterFrom parses custom templates. The text must define
// "search", "alcohol", "similar", "preferences", "confirmation", "show" and
// "error".
func NewTemplateFormatterFrom(text string) (*TemplateFormatter, error) {
	tmpl, err := template.New("reply").Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse reply templates: %w", err)
	}
	for _, name := range []string{"search", "alcohol", "similar", "preferences", "confirmation", "show", "error"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("reply templates: %q is not defined", name)
		}
	}
	return &TemplateFormatter{tmpl: tmpl}, nil
}

// listView is the data for cocktail-list templates.
type listView struct {
	Count      int
	Names      []string
	Ingredient string
	Alcoholic  bool
	Constraint string
	Source     string
}

// Format implements Formatter. Whitespace in the rendered text is collapsed
// to single spaces.
func (f *TemplateFormatter) Format(r engine.QueryResult) (string, error) {
	name, data, err := view(r)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := f.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s reply: %w", name, err)
	}
	return strings.Join(strings.Fields(buf.String()), " "), nil
}

func view(r engine.QueryResult) (string, any, error) {
	switch v := r.(type) {
	case *engine.CocktailList:
		return listTemplate(v)
	case *engine.PreferenceConfirmation:
		if v.Show {
			return "show", v, nil
		}
		return "confirmation", v, nil
	case *engine.QueryError:
		return "error", v, nil
	default:
		return "", nil, fmt.Errorf("unsupported result type %T", r)
	}
}

func listTemplate(l *engine.CocktailList) (string, any, error) {
	lv := listView{Count: len(l.Items), Names: l.Names(), Source: l.Source}
	switch in := l.Intent.(type) {
	case intent.SearchByIngredient:
		lv.Ingredient = in.Ingredient
		if in.Alcohol != nil {
			lv.Constraint = alcoholWord(in.Alcohol.WantAlcoholic)
		}
		return "search", lv, nil
	case intent.FilterByAlcoholContent:
		lv.Alcoholic = in.WantAlcoholic
		lv.Constraint = alcoholWord(in.WantAlcoholic)
		return "alcohol", lv, nil
	case intent.RecommendSimilarTo:
		if lv.Source == "" {
			lv.Source = in.CocktailName
		}
		return "similar", lv, nil
	case intent.RecommendFromPreferences:
		return "preferences", lv, nil
	default:
		return "", nil, fmt.Errorf("unsupported list intent %T", l.Intent)
	}
}

func alcoholWord(alcoholic bool) string {
	if alcoholic {
		return "alcoholic"
	}
	return "non-alcoholic"
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"list": joinList,
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}

// joinList renders "a", "a and b", "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
