package util

import (
	"errors"
	"math/rand"
	"os"

	"golang.org/x/exp/constraints"
)

var ErrBadWeights = errors.New("values and weights must be non-empty, equal length and sum to a positive total")

// EnsureDir creates dir and its parents if they are missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0777)
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Max[A constraints.Integer | constraints.Float](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// WeightedChoice returns one of values, picked with probability proportional
// to the matching weight. Negative weights count as zero.
func WeightedChoice[A any](r *rand.Rand, values []A, weights []float64) (A, error) {
	var zero A
	if len(values) == 0 || len(values) != len(weights) {
		return zero, ErrBadWeights
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return zero, ErrBadWeights
	}

	target := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return values[i], nil
		}
		target -= w
	}
	// rounding can leave target a hair above the final bucket
	return values[last], nil
}
