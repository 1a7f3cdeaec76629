package dto

import "coursehub/internal/model"

// ModuleCreateDTO is used for incoming module creation requests
type ModuleCreateDTO struct {
	Title string `json:"title" validate:"required,min=3,max=100"`
}

// ModuleUpdateDTO is used for incoming module update requests
type ModuleUpdateDTO struct {
	Title   *string  `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Lessons []RefDTO `json:"lessons,omitempty" validate:"omitempty,dive"`
}

// ModuleCreatedResponseDTO is returned after a module was created in a course
type ModuleCreatedResponseDTO struct {
	Module *model.Module `json:"module"`
	Course *model.Course `json:"course"`
}

// ModuleDeletedResponseDTO is returned after a module was deleted
type ModuleDeletedResponseDTO struct {
	Message string        `json:"message"`
	Course  *model.Course `json:"course"`
}

func (d ModuleUpdateDTO) ToPatch() model.ModulePatch {
	return model.ModulePatch{Title: d.Title, Lessons: toRefs(d.Lessons)}
}
