package model

// ContentBlock is one typed block of lesson content.
type ContentBlock struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Lesson represents a lesson in the lessons collection.
type Lesson struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Topics      []string       `json:"topics"`
	Content     []ContentBlock `json:"content"`
}

// LessonPatch carries the fields supplied for a partial update of a lesson.
type LessonPatch struct {
	Title       *string
	Description *string
	Topics      []string
	Content     []ContentBlock
}
