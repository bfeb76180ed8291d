package slices

// Filter returns a new slice with only the items of in
// for which keep returned true.
func Filter[IN any](in []IN, keep func(IN) bool) []IN {
	if keep == nil {
		panic("keep func cannot be nil")
	}
	var out []IN
	for _, item := range in {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Map turns a []IN to a []OUT using a mapping function.
func Map[IN, OUT any](in []IN, fun func(IN) OUT) []OUT {
	if in == nil {
		return nil
	}
	out := make([]OUT, len(in))
	for i, item := range in {
		out[i] = fun(item)
	}
	return out
}

// Any reports whether at least one item satisfies match.
func Any[IN any](in []IN, match func(IN) bool) bool {
	for _, item := range in {
		if match(item) {
			return true
		}
	}
	return false
}
