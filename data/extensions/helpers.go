package extensions

// FilterMultiplePtr return all pointers that satisfy the predicate, nil pointers are skipped
func FilterMultiplePtr[T any](elements []*T, predicate func(*T) bool) (results []*T) {
	for _, element := range elements {
		if element != nil && predicate(element) {
			results = append(results, element)
		}
	}
	return
}

// Coalesce returns the first value that is not the zero value of T
func Coalesce[T comparable](values ...T) (result T) {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return
}

// Map applies f to every element, keeping order. The result is never nil.
func Map[T, R any](elements []T, f func(T) R) []R {
	res := make([]R, len(elements))
	for i, element := range elements {
		res[i] = f(element)
	}
	return res
}
