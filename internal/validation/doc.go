// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package validation validates API request bodies with go-playground/validator
// v10 and turns failures into the API's error body.
//
// The validator is a process-wide singleton so struct metadata is parsed
// once. Error field names are JSON names, so clients see "user_id" rather
// than "UserID".
//
//	type QueryRequest struct {
//	    UserID string `json:"user_id" validate:"required,userid"`
//	    Query  string `json:"query" validate:"required,notblank,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation
