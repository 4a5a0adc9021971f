// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package validation

import (
	"strings"
	"testing"
)

type queryRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Query  string `json:"query" validate:"required,notblank,max=20"`
}

type preferencesRequest struct {
	FavoriteIngredients []string `json:"favorite_ingredients" validate:"max=3,dive,notblank"`
	Mode                string   `json:"mode,omitempty" validate:"omitempty,oneof=merge replace"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []interface{}{
		&queryRequest{UserID: "alice", Query: "lemon cocktails"},
		&preferencesRequest{FavoriteIngredients: []string{"gin"}},
		&preferencesRequest{Mode: "replace"},
	}
	for _, req := range tests {
		if err := ValidateStruct(req); err != nil {
			t.Errorf("ValidateStruct(%+v) = %v, want nil", req, err)
		}
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       interface{}
		wantField string
		wantTag   string
	}{
		{"missing user", &queryRequest{Query: "gin"}, "user_id", "required"},
		{"oversized user", &queryRequest{UserID: strings.Repeat("u", 200), Query: "gin"}, "user_id", "userid"},
		{"blank query", &queryRequest{UserID: "a", Query: "   "}, "query", "notblank"},
		{"long query", &queryRequest{UserID: "a", Query: strings.Repeat("q", 21)}, "query", "max"},
		{"too many items", &preferencesRequest{FavoriteIngredients: []string{"a", "b", "c", "d"}}, "favorite_ingredients", "max"},
		{"blank item", &preferencesRequest{FavoriteIngredients: []string{" "}}, "favorite_ingredients[0]", "notblank"},
		{"bad mode", &preferencesRequest{Mode: "append"}, "mode", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.req)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("got %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	apiErr := ValidateStruct(&queryRequest{Query: "gin"}).ToAPIError()

	if apiErr.Code != CodeValidationFailed {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationFailed)
	}
	if apiErr.Message != "user_id is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "user_id" {
		t.Errorf("Details[field] = %v, want user_id", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	apiErr := ValidateStruct(&queryRequest{}).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %#v, want two entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "user_id is required") || !strings.Contains(apiErr.Message, "query is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		req  interface{}
		want string
	}{
		{&queryRequest{UserID: "a", Query: strings.Repeat("q", 21)}, "query must be at most 20 characters"},
		{&preferencesRequest{FavoriteIngredients: []string{"a", "b", "c", "d"}}, "favorite_ingredients must be at most 3 items"},
		{&preferencesRequest{Mode: "x"}, "mode must be one of: merge replace"},
		{&queryRequest{UserID: "a", Query: "\t"}, "query must not be blank"},
	}
	for _, tt := range tests {
		if got := ValidateStruct(tt.req).Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Code != CodeValidationFailed {
		t.Error("empty error should still carry the validation code")
	}
}
