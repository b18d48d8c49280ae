package entities

import "strings"

// NameSet is a case-insensitive set of package or framework names.
// It remembers the spelling and position of the first insertion of each name
// so that iteration order is stable across runs.
type NameSet struct {
	index map[string]int
	names []string
}

// NewNameSet creates a set pre-populated with the given names.
func NewNameSet(names ...string) NameSet {
	set := NameSet{index: make(map[string]int, len(names))}
	for _, name := range names {
		set = set.With(name)
	}
	return set
}

// With returns a copy of the set containing name. The receiver is left untouched.
func (s NameSet) With(name string) NameSet {
	if s.Contains(name) {
		return s
	}
	next := s.clone()
	next.index[foldName(name)] = len(next.names)
	next.names = append(next.names, name)
	return next
}

// Union returns a copy of the set containing every name of other.
func (s NameSet) Union(other NameSet) NameSet {
	result := s
	for _, name := range other.names {
		result = result.With(name)
	}
	return result
}

// Contains reports whether name is in the set, ignoring case.
func (s NameSet) Contains(name string) bool {
	_, ok := s.index[foldName(name)]
	return ok
}

// Len returns the number of distinct names.
func (s NameSet) Len() int {
	return len(s.names)
}

// Names returns the names in insertion order.
func (s NameSet) Names() []string {
	result := make([]string, len(s.names))
	copy(result, s.names)
	return result
}

// Equal reports whether both sets hold the same names, ignoring case and order.
func (s NameSet) Equal(other NameSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, name := range s.names {
		if !other.Contains(name) {
			return false
		}
	}
	return true
}

func (s NameSet) clone() NameSet {
	next := NameSet{
		index: make(map[string]int, len(s.names)+1),
		names: make([]string, len(s.names), len(s.names)+1),
	}
	copy(next.names, s.names)
	for key, pos := range s.index {
		next.index[key] = pos
	}
	return next
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameName compares two package names the way NuGet does: ignoring case.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
