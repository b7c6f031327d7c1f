package nav

import "slices"

// Strategy is one named step of a fallback chain. Run reports false when the
// strategy has nothing to offer for the given input.
type Strategy[C, T any] struct {
	Name string
	Run  func(C) (T, bool)
}

// FirstOf evaluates strategies in order and returns the first result together
// with the name of the strategy that produced it.
func FirstOf[C, T any](in C, strategies []Strategy[C, T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.Run(in); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// AllOf evaluates every strategy in order and returns each distinct result.
func AllOf[C any, T comparable](in C, strategies []Strategy[C, T]) []T {
	var out []T
	for _, s := range strategies {
		v, ok := s.Run(in)
		if ok && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
