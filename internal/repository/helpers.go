package repository

// indexOf returns the position of the first item whose id matches, or -1.
func indexOf[T any](items []T, id int, idOf func(T) int) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}
