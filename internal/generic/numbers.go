package generic

import "golang.org/x/exp/constraints"

// Max returns the largest of the given values.
func Max[T constraints.Ordered](values ...T) T {
	if len(values) == 0 {
		panic("must have at least one value")
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}

	return max
}

// Min returns the smallest of the given values.
func Min[T constraints.Ordered](values ...T) T {
	if len(values) == 0 {
		panic("must have at least one value")
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}

	return min
}
