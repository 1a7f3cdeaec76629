package dto

import "coursehub/internal/model"

// ContentBlockDTO is one block of lesson content
type ContentBlockDTO struct {
	Type string `json:"type" validate:"required"`
	Data string `json:"data"`
}

// LessonCreateDTO is used for incoming lesson creation requests
type LessonCreateDTO struct {
	Title       string            `json:"title" validate:"required,max=100"`
	Description string            `json:"description" validate:"max=500"`
	Topics      []string          `json:"topics" validate:"omitempty,dive,required"`
	Content     []ContentBlockDTO `json:"content" validate:"omitempty,dive"`
}

// LessonUpdateDTO is used for incoming lesson update requests
type LessonUpdateDTO struct {
	Title       *string           `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=500"`
	Topics      []string          `json:"topics,omitempty" validate:"omitempty,dive,required"`
	Content     []ContentBlockDTO `json:"content,omitempty" validate:"omitempty,dive"`
}

// LessonCreatedResponseDTO is returned after a lesson was created in a module
type LessonCreatedResponseDTO struct {
	Message string        `json:"message"`
	Lesson  *model.Lesson `json:"lesson"`
	Module  *model.Module `json:"module"`
}

func (d LessonCreateDTO) ToLesson() model.Lesson {
	return model.Lesson{
		Title:       d.Title,
		Description: d.Description,
		Topics:      d.Topics,
		Content:     toBlocks(d.Content),
	}
}

func (d LessonUpdateDTO) ToPatch() model.LessonPatch {
	return model.LessonPatch{
		Title:       d.Title,
		Description: d.Description,
		Topics:      d.Topics,
		Content:     toBlocks(d.Content),
	}
}

func toBlocks(in []ContentBlockDTO) []model.ContentBlock {
	if in == nil {
		return nil
	}
	out := make([]model.ContentBlock, 0, len(in))
	for _, b := range in {
		out = append(out, model.ContentBlock{Type: b.Type, Data: b.Data})
	}
	return out
}
