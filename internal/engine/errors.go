// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package engine

import (
	"errors"
	"fmt"
)

// ErrInternalConsistency marks a broken invariant between the corpus, the
// index and the store. It is the only error Handle returns.
var ErrInternalConsistency = errors.New("internal consistency error")

// ErrorKind classifies a failed query.
type ErrorKind string

const (
	KindUnclassifiedQuery   ErrorKind = "unclassified_query"
	KindNotFound            ErrorKind = "not_found"
	KindNoPreferences       ErrorKind = "no_preferences"
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindInternalConsistency ErrorKind = "internal_consistency"
)

// Stable messages per kind. Callers may match on Kind; Message is for people.
const (
	msgUnclassified    = "Sorry, I didn't understand that. Try asking for cocktails with an ingredient, or cocktails similar to one you know."
	msgNoPreferences   = "I don't know your preferences yet. Tell me what you like, for example \"I like gin and lime\"."
	msgNothingMatches  = "Nothing I know matches your preferences yet. Tell me about ingredients or cocktails you like."
	msgInternal        = "Something went wrong on our side while answering."
	msgInvalidLimitFmt = "The number of cocktails must be positive, got %d."
)

// QueryError is the failed-query result. It also satisfies error so callers
// can wrap or log it directly.
type QueryError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements error.
func (e *QueryError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// ResultKind implements QueryResult.
func (e *QueryError) ResultKind() ResultKind { return ResultError }

func unclassified() *QueryError {
	return &QueryError{Kind: KindUnclassifiedQuery, Message: msgUnclassified}
}

func notFound(name string) *QueryError {
	return &QueryError{Kind: KindNotFound, Message: fmt.Sprintf("I couldn't find a cocktail called %q.", name)}
}

func noPreferences(msg string) *QueryError {
	return &QueryError{Kind: KindNoPreferences, Message: msg}
}

func invalidArgument(msg string) *QueryError {
	return &QueryError{Kind: KindInvalidArgument, Message: msg}
}

func internalConsistency() *QueryError {
	return &QueryError{Kind: KindInternalConsistency, Message: msgInternal}
}

// AsQueryError extracts a *QueryError from a result, if it is one.
func AsQueryError(r QueryResult) (*QueryError, bool) {
	qe, ok := r.(*QueryError)
	return qe, ok
}
