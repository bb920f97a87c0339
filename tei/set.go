package tei

// orderedSet keeps the first-seen order of its items. Membership is decided
// by ==, which for pointers is node identity.
type orderedSet[T comparable] struct {
	items []T
	seen  map[T]struct{}
}

func newOrderedSet[T comparable]() *orderedSet[T] {
	return &orderedSet[T]{seen: map[T]struct{}{}}
}

// Add inserts v unless already present and reports whether it was inserted.
func (s *orderedSet[T]) Add(v T) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) Has(v T) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *orderedSet[T]) Len() int {
	return len(s.items)
}

// Items returns the items in insertion order.
func (s *orderedSet[T]) Items() []T {
	return s.items
}
