package querykit

// SetDiff holds the two sides of a symmetric set reconciliation.
type SetDiff[T any] struct {
	// First holds elements selected from the first input.
	First []T
	// Second holds elements selected from the second input.
	Second []T
}

// SetDiff2 is SetDiff for reconciliations whose two inputs have different
// element types.
type SetDiff2[A, B any] struct {
	First  []A
	Second []B
}

// ExceptBoth computes the symmetric difference of two slices: elements of
// first missing from second, and elements of second missing from first.
// Each side is deduplicated, keeping the first occurrence.
func ExceptBoth[T comparable](first, second []T) SetDiff[T] {
	firstKeys := keySet(first, identity[T])
	secondKeys := keySet(second, identity[T])
	return SetDiff[T]{
		First:  selectBy(first, identity[T], func(k T) bool { _, present := secondKeys[k]; return !present }),
		Second: selectBy(second, identity[T], func(k T) bool { _, present := firstKeys[k]; return !present }),
	}
}

// IntersectBoth computes the intersection of two slices, reported from both
// sides: elements of first present in second, and elements of second present
// in first. Each side is deduplicated, keeping the first occurrence.
func IntersectBoth[T comparable](first, second []T) SetDiff[T] {
	firstKeys := keySet(first, identity[T])
	secondKeys := keySet(second, identity[T])
	return SetDiff[T]{
		First:  selectBy(first, identity[T], func(k T) bool { _, present := secondKeys[k]; return present }),
		Second: selectBy(second, identity[T], func(k T) bool { _, present := firstKeys[k]; return present }),
	}
}

// ExceptBothBy is ExceptBoth with membership decided by key selectors, so
// the element types need not be comparable themselves.
func ExceptBothBy[A, B any, K comparable](first []A, second []B, firstKey func(A) K, secondKey func(B) K) (SetDiff2[A, B], error) {
	if firstKey == nil || secondKey == nil {
		return SetDiff2[A, B]{}, ErrNilSelector
	}
	firstKeys := keySet(first, firstKey)
	secondKeys := keySet(second, secondKey)
	return SetDiff2[A, B]{
		First:  selectBy(first, firstKey, func(k K) bool { _, present := secondKeys[k]; return !present }),
		Second: selectBy(second, secondKey, func(k K) bool { _, present := firstKeys[k]; return !present }),
	}, nil
}

// IntersectBothBy is IntersectBoth with membership decided by key selectors.
func IntersectBothBy[A, B any, K comparable](first []A, second []B, firstKey func(A) K, secondKey func(B) K) (SetDiff2[A, B], error) {
	if firstKey == nil || secondKey == nil {
		return SetDiff2[A, B]{}, ErrNilSelector
	}
	firstKeys := keySet(first, firstKey)
	secondKeys := keySet(second, secondKey)
	return SetDiff2[A, B]{
		First:  selectBy(first, firstKey, func(k K) bool { _, present := secondKeys[k]; return present }),
		Second: selectBy(second, secondKey, func(k K) bool { _, present := firstKeys[k]; return present }),
	}, nil
}

func identity[T comparable](v T) T { return v }

func keySet[T any, K comparable](items []T, key func(T) K) map[K]struct{} {
	set := make(map[K]struct{}, len(items))
	for _, item := range items {
		set[key(item)] = struct{}{}
	}
	return set
}

// selectBy returns items whose keys pass the filter, first occurrence wins.
func selectBy[T any, K comparable](items []T, key func(T) K, keep func(K) bool) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0)
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if keep(k) {
			out = append(out, item)
		}
	}
	return out
}
