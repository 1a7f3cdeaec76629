package model

// Course represents a course in the courses collection. It owns its list of
// module references but not the modules themselves.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Modules     []Ref  `json:"modules"`
}

// CourseInput carries the fields supplied when creating a course.
type CourseInput struct {
	Title       string
	Description string
}

// CoursePatch carries the fields supplied for a partial update. Nil fields
// keep their stored value.
type CoursePatch struct {
	Title       *string
	Description *string
	Modules     []Ref
}
