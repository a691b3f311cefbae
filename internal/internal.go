// Package internal is code only for consumption from within the covercore
// project.
package internal

// Intersect returns the elements in `a` that are also in `b`, preserving the
// order of `a`.
func Intersect[T comparable](a, b []T) []T {
	mb := make(map[T]struct{}, len(b))
	for _, x := range b {
		mb[x] = struct{}{}
	}
	var both []T
	for _, x := range a {
		if _, found := mb[x]; found {
			both = append(both, x)
		}
	}
	return both
}

// Dedupe returns the unique elements of s in their original order.
func Dedupe[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, x := range s {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
