package model

// Module represents a module in the modules collection. Lessons is absent
// until the first lesson is assigned.
type Module struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Lessons []Ref  `json:"lessons,omitempty"`
}

// ModulePatch carries the fields supplied for a partial update of a module.
type ModulePatch struct {
	Title   *string
	Lessons []Ref
}
