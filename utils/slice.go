package utils

// Unique removes duplicate values from a slice, keeping first occurrences in order.
func Unique[T comparable](slice []T) []T {
	keys := make(map[T]bool, len(slice))
	list := make([]T, 0, len(slice))
	for _, entry := range slice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// Contains reports whether v is present in slice.
func Contains[T comparable](slice []T, v T) bool {
	for _, entry := range slice {
		if entry == v {
			return true
		}
	}
	return false
}
