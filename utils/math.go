package utils

import "golang.org/x/exp/constraints"

// Min returns the smallest of the given values.
func Min[T constraints.Ordered](x T, rest ...T) T {
	m := x
	for _, v := range rest {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest of the given values.
func Max[T constraints.Ordered](x T, rest ...T) T {
	m := x
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}

// Abs returns the absolut value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Contains reports whether s holds v.
func Contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
