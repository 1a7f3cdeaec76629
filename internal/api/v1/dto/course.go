package dto

import "coursehub/internal/model"

// CourseCreateDTO is used for incoming course creation requests
type CourseCreateDTO struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=10,max=500"`
}

// CourseBatchCreateDTO is used to create several courses in one write
type CourseBatchCreateDTO struct {
	Courses []CourseCreateDTO `json:"courses" validate:"required,min=1,dive"`
}

// CourseUpdateDTO is used for incoming course update requests. Omitted
// fields keep their stored value.
type CourseUpdateDTO struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
	Modules     []RefDTO `json:"modules,omitempty" validate:"omitempty,dive"`
}

// RefDTO is a {"id"} reference in a request body
type RefDTO struct {
	ID int `json:"id" validate:"required,gt=0"`
}

func (d CourseCreateDTO) ToInput() model.CourseInput {
	return model.CourseInput{Title: d.Title, Description: d.Description}
}

func (d CourseUpdateDTO) ToPatch() model.CoursePatch {
	return model.CoursePatch{
		Title:       d.Title,
		Description: d.Description,
		Modules:     toRefs(d.Modules),
	}
}

func toRefs(in []RefDTO) []model.Ref {
	if in == nil {
		return nil
	}
	refs := make([]model.Ref, 0, len(in))
	for _, r := range in {
		refs = append(refs, model.Ref{ID: r.ID})
	}
	return refs
}
