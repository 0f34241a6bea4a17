package domain

// OrderedSet is a deduplicated set of constituent names that preserves
// first insertion order. The iteration order is part of the output file
// format, so it is maintained explicitly rather than relying on any map
// iteration guarantee.
type OrderedSet struct {
	items []string
	index map[string]struct{}
}

// NewOrderedSet returns a set seeded with the given names in order.
func NewOrderedSet(names ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]struct{})}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name if absent and reports whether it was inserted.
func (s *OrderedSet) Add(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.items = append(s.items, name)
	return true
}

// AddAll inserts every name in order, skipping duplicates.
func (s *OrderedSet) AddAll(names []string) {
	for _, name := range names {
		s.Add(name)
	}
}

// Contains reports membership.
func (s *OrderedSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of members.
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Values returns the members in insertion order. The returned slice is a
// copy and safe to modify.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
