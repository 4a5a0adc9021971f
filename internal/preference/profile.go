// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package preference

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/barkeep/internal/corpus"
)

// MaxUserIDLength bounds user/session keys in bytes.
const MaxUserIDLength = 128

// ErrInvalidUserID is returned for empty or oversized user IDs.
var ErrInvalidUserID = errors.New("invalid user id")

// ValidateUserID checks the key used to address a profile.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUserID)
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidUserID, MaxUserIDLength)
	}
	return nil
}

// Profile is one user's taste profile. Every list is sorted and holds
// normalized values; cocktails are stored by corpus identity.
type Profile struct {
	UserID              string    `json:"user_id"`
	LikedIngredients    []string  `json:"liked_ingredients"`
	LikedCocktails      []string  `json:"liked_cocktails"`
	DislikedIngredients []string  `json:"disliked_ingredients"`
	DislikedCocktails   []string  `json:"disliked_cocktails"`
	UnrecognizedLikes   []string  `json:"unrecognized_likes"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// HasLikes reports whether any positive preference is recorded.
func (p Profile) HasLikes() bool {
	return len(p.LikedIngredients) > 0 || len(p.LikedCocktails) > 0 || len(p.UnrecognizedLikes) > 0
}

// IsZero reports whether the profile records nothing at all.
func (p Profile) IsZero() bool {
	return !p.HasLikes() && len(p.DislikedIngredients) == 0 && len(p.DislikedCocktails) == 0
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	p.LikedIngredients = cloneStrings(p.LikedIngredients)
	p.LikedCocktails = cloneStrings(p.LikedCocktails)
	p.DislikedIngredients = cloneStrings(p.DislikedIngredients)
	p.DislikedCocktails = cloneStrings(p.DislikedCocktails)
	p.UnrecognizedLikes = cloneStrings(p.UnrecognizedLikes)
	return p
}

// Delta is a set of preference statements to union into a profile.
type Delta struct {
	LikedIngredients    []string `json:"liked_ingredients,omitempty"`
	LikedCocktails      []string `json:"liked_cocktails,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	DislikedCocktails   []string `json:"disliked_cocktails,omitempty"`
	Unrecognized        []string `json:"unrecognized,omitempty"`
}

// IsEmpty reports whether the delta carries no statements.
func (d Delta) IsEmpty() bool {
	return len(d.LikedIngredients) == 0 && len(d.LikedCocktails) == 0 &&
		len(d.DislikedIngredients) == 0 && len(d.DislikedCocktails) == 0 &&
		len(d.Unrecognized) == 0
}

// apply unions d into p. Dislikes are applied before likes, so a statement
// that both likes and dislikes an item leaves it liked. It reports whether p
// changed.
func (p *Profile) apply(d Delta) bool {
	changed := false
	move := func(from, to *[]string, values []string) {
		for _, v := range values {
			v = corpus.NormalizeKey(v)
			if v == "" {
				continue
			}
			if remove(from, v) {
				changed = true
			}
			if insert(to, v) {
				changed = true
			}
		}
	}

	move(&p.LikedIngredients, &p.DislikedIngredients, d.DislikedIngredients)
	move(&p.LikedCocktails, &p.DislikedCocktails, d.DislikedCocktails)
	move(&p.DislikedIngredients, &p.LikedIngredients, d.LikedIngredients)
	move(&p.DislikedCocktails, &p.LikedCocktails, d.LikedCocktails)

	for _, v := range d.Unrecognized {
		if v = corpus.NormalizeKey(v); v != "" && insert(&p.UnrecognizedLikes, v) {
			changed = true
		}
	}
	return changed
}

// insert adds v to the sorted set s.
func insert(s *[]string, v string) bool {
	i := sort.SearchStrings(*s, v)
	if i < len(*s) && (*s)[i] == v {
		return false
	}
	*s = append(*s, "")
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = v
	return true
}

// remove deletes v from the sorted set s.
func remove(s *[]string, v string) bool {
	i := sort.SearchStrings(*s, v)
	if i >= len(*s) || (*s)[i] != v {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
