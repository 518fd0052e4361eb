package dynarray

// rotateRight moves the last element of s to the front and shifts the rest
// up by one slot.
func rotateRight[T any](s []T) {
	if len(s) < 2 {
		return
	}
	last := s[len(s)-1]
	copy(s[1:], s[:len(s)-1])
	s[0] = last
}

// rotateLeft moves the first element of s to the back and shifts the rest
// down by one slot.
func rotateLeft[T any](s []T) {
	if len(s) < 2 {
		return
	}
	first := s[0]
	copy(s, s[1:])
	s[len(s)-1] = first
}
