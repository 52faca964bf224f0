package querykit

// LeftJoin pairs every left element with the matching right elements by key.
// Left elements without a match are paired with the value produced by
// defaultRight, or the zero value when defaultRight is nil. Each match
// produces one output row, so a left element with several matches appears
// several times. Input order is preserved, left side outermost.
func LeftJoin[L, R any, K comparable, Out any](
	left []L,
	right []R,
	leftKey func(L) K,
	rightKey func(R) K,
	project func(L, R) Out,
	defaultRight func() R,
) ([]Out, error) {
	if leftKey == nil || rightKey == nil || project == nil {
		return nil, ErrNilSelector
	}

	index := make(map[K][]R, len(right))
	for _, r := range right {
		k := rightKey(r)
		index[k] = append(index[k], r)
	}

	out := make([]Out, 0, len(left))
	for _, l := range left {
		matches, ok := index[leftKey(l)]
		if !ok {
			var fallback R
			if defaultRight != nil {
				fallback = defaultRight()
			}
			out = append(out, project(l, fallback))
			continue
		}
		for _, r := range matches {
			out = append(out, project(l, r))
		}
	}
	return out, nil
}

// RightJoin pairs every right element with the matching left elements by key.
// Right elements without a match are paired with the value produced by
// defaultLeft, or the zero value when defaultLeft is nil. Input order is
// preserved, right side outermost.
func RightJoin[L, R any, K comparable, Out any](
	left []L,
	right []R,
	leftKey func(L) K,
	rightKey func(R) K,
	project func(L, R) Out,
	defaultLeft func() L,
) ([]Out, error) {
	if leftKey == nil || rightKey == nil || project == nil {
		return nil, ErrNilSelector
	}

	index := make(map[K][]L, len(left))
	for _, l := range left {
		k := leftKey(l)
		index[k] = append(index[k], l)
	}

	out := make([]Out, 0, len(right))
	for _, r := range right {
		matches, ok := index[rightKey(r)]
		if !ok {
			var fallback L
			if defaultLeft != nil {
				fallback = defaultLeft()
			}
			out = append(out, project(fallback, r))
			continue
		}
		for _, l := range matches {
			out = append(out, project(l, r))
		}
	}
	return out, nil
}
