package model

// Ref records a relationship to another collection by ID. It is resolved by
// lookup at read time.
type Ref struct {
	ID int `json:"id"`
}

// HasRef reports whether refs contains a reference to id.
func HasRef(refs []Ref, id int) bool {
	for _, r := range refs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// WithoutRef returns refs with every reference to id removed, and whether
// anything was removed. The input slice is not modified.
func WithoutRef(refs []Ref, id int) ([]Ref, bool) {
	out := make([]Ref, 0, len(refs))
	removed := false
	for _, r := range refs {
		if r.ID == id {
			removed = true
			continue
		}
		out = append(out, r)
	}
	return out, removed
}
