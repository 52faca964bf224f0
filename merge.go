package querykit

// Merge combines two maps into a freshly allocated map. Keys present in only
// one input are copied as-is. For keys present in both, the first map's value
// wins unless overwrite is true, in which case the second map's value wins.
// Neither input is modified.
func Merge[K comparable, V any](first, second map[K]V, overwrite bool) (map[K]V, error) {
	if first == nil || second == nil {
		return nil, ErrNilCollection
	}
	return mergeWith(first, second, func(_ K, v1, v2 V) V {
		if overwrite {
			return v2
		}
		return v1
	}), nil
}

// MergeFunc combines two maps, calling resolve for every key present in both
// to pick the surviving value.
func MergeFunc[K comparable, V any](first, second map[K]V, resolve func(key K, first, second V) V) (map[K]V, error) {
	if first == nil || second == nil {
		return nil, ErrNilCollection
	}
	if resolve == nil {
		return nil, ErrNilSelector
	}
	return mergeWith(first, second, resolve), nil
}

func mergeWith[K comparable, V any](first, second map[K]V, resolve func(K, V, V) V) map[K]V {
	out := make(map[K]V, len(first)+len(second))
	for k, v := range first {
		out[k] = v
	}
	for k, v := range second {
		if existing, clash := out[k]; clash {
			out[k] = resolve(k, existing, v)
			continue
		}
		out[k] = v
	}
	return out
}
