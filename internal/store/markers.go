package store

import "sort"

// MarkerSet tracks identifiers known to yield no usable content (blocked or
// placeholder pages). Membership only grows, except when a forced refetch
// later succeeds with real content. Persisted as a sorted JSON integer array.
type MarkerSet struct {
	path string
	ids  map[int]struct{}
}

// LoadMarkers reads the marker file at path. A missing or corrupt file
// yields an empty set rather than an error.
func LoadMarkers(path string) *MarkerSet {
	m := &MarkerSet{path: path, ids: make(map[int]struct{})}
	var ids []int
	if err := ReadJSON(path, &ids); err == nil {
		for _, id := range ids {
			m.ids[id] = struct{}{}
		}
	}
	return m
}

// Has reports whether id is known to be empty
func (m *MarkerSet) Has(id int) bool {
	_, ok := m.ids[id]
	return ok
}

// Add records id as known-empty
func (m *MarkerSet) Add(id int) {
	m.ids[id] = struct{}{}
}

// Remove forgets id, used when a forced refetch produced real content
func (m *MarkerSet) Remove(id int) {
	delete(m.ids, id)
}

// Len returns the number of marked identifiers
func (m *MarkerSet) Len() int {
	return len(m.ids)
}

// IDs returns the marked identifiers in ascending order
func (m *MarkerSet) IDs() []int {
	ids := make([]int, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Save writes the set atomically as a sorted array
func (m *MarkerSet) Save() error {
	return WriteJSON(m.path, m.IDs())
}
