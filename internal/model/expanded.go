package model

import "encoding/json"

// ExpandedCourse is a course whose module references have been replaced by
// the resolved modules and their lessons.
type ExpandedCourse struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Modules     []ExpandedModule `json:"modules"`
}

// ExpandedModule is a resolved module projection. An unresolved reference
// keeps Resolved false and marshals as the bare {"id"} reference.
type ExpandedModule struct {
	ID       int
	Title    string
	Lessons  []ExpandedLesson
	Resolved bool
}

func (m ExpandedModule) MarshalJSON() ([]byte, error) {
	if !m.Resolved {
		return json.Marshal(Ref{ID: m.ID})
	}
	lessons := m.Lessons
	if lessons == nil {
		lessons = []ExpandedLesson{}
	}
	return json.Marshal(struct {
		ID      int              `json:"id"`
		Title   string           `json:"title"`
		Lessons []ExpandedLesson `json:"lessons"`
	}{m.ID, m.Title, lessons})
}

// ExpandedLesson is a resolved lesson, or a bare reference when the lesson
// could not be found.
type ExpandedLesson struct {
	Lesson
	Resolved bool
}

func (l ExpandedLesson) MarshalJSON() ([]byte, error) {
	if !l.Resolved {
		return json.Marshal(Ref{ID: l.ID})
	}
	return json.Marshal(l.Lesson)
}
