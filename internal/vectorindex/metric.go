// Barkeep - Cocktail Query and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package vectorindex

import (
	"fmt"
	"math"
)

// Metric selects the distance function.
type Metric int

const (
	// Cosine distance is 1 - cos(a, b); similarity is cos(a, b).
	Cosine Metric = iota
	// L2 distance is Euclidean; similarity is 1 / (1 + d).
	L2
)

// ParseMetric accepts "cosine" and "l2".
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "cosine":
		return Cosine, nil
	case "l2", "euclidean":
		return L2, nil
	default:
		return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, s)
	}
}

func (m Metric) String() string {
	if m == L2 {
		return "l2"
	}
	return "cosine"
}

// distance assumes stored vectors are unit length under Cosine; q is the
// query and qNorm its precomputed L2 norm.
func (m Metric) distance(q []float32, qNorm float64, v []float32) float64 {
	if m == L2 {
		var sum float64
		for i := range q {
			d := float64(q[i]) - float64(v[i])
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	var dot float64
	for i := range q {
		dot += float64(q[i]) * float64(v[i])
	}
	return 1 - dot/qNorm
}

// Similarity converts a distance under m into a similarity score where
// larger is closer.
func (m Metric) Similarity(distance float64) float64 {
	if m == L2 {
		return 1 / (1 + distance)
	}
	return 1 - distance
}

func l2norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
