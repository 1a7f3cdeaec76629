package handler

import (
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ModuleHandler handles module-related endpoints
type ModuleHandler struct {
	moduleService service.ModuleService
	coordinator   service.Coordinator
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewModuleHandler creates a new ModuleHandler
func NewModuleHandler(moduleService service.ModuleService, coordinator service.Coordinator, validate *validator.Validate, logger zerolog.Logger) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, coordinator: coordinator, validate: validate, logger: logger}
}

// RegisterRoutes mounts module routes
func (h *ModuleHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /modules", authMw(http.HandlerFunc(h.listModules)))
	mux.Handle("GET /modules/{moduleId}", authMw(http.HandlerFunc(h.getModule)))
	mux.Handle("POST /courses/{courseId}/modules", authMw(http.HandlerFunc(h.createModule)))
	mux.Handle("PUT /modules/{moduleId}", authMw(http.HandlerFunc(h.updateModule)))
	mux.Handle("DELETE /modules/{moduleId}", authMw(http.HandlerFunc(h.deleteModule)))
}

// listModules godoc
// @Summary List modules
// @Tags modules
// @Produce json
// @Success 200 {array} model.Module
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve modules"
// @Router /modules [get]
func (h *ModuleHandler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.moduleService.ListModules(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve modules", err)
		return
	}
	writeJSON(w, http.StatusOK, modules)
}

// getModule godoc
// @Summary Get a module
// @Tags modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} model.Module
// @Failure 400 {object} dto.MessageResponseDTO "Invalid module ID"
// @Failure 404 {object} dto.MessageResponseDTO "Module not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve module"
// @Router /modules/{moduleId} [get]
func (h *ModuleHandler) getModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	module, err := h.moduleService.GetModuleByID(r.Context(), moduleID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve module", err)
		return
	}
	if module == nil {
		writeMessage(w, http.StatusNotFound, "Module not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

// createModule godoc
// @Summary Create a module in a course
// @Description Creates a module and appends it to the course's module list.
// @Tags modules
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param module body dto.ModuleCreateDTO true "Module creation request"
// @Success 201 {object} dto.ModuleCreatedResponseDTO
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.MessageResponseDTO "Course not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to create module"
// @Router /courses/{courseId}/modules [post]
func (h *ModuleHandler) createModule(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid course ID", err)
		return
	}
	var req dto.ModuleCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	module, course, err := h.coordinator.CreateModuleInCourse(r.Context(), courseID, req.Title)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to create module", err)
		return
	}
	if course == nil {
		writeMessage(w, http.StatusNotFound, "Course not found", nil)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ModuleCreatedResponseDTO{Module: module, Course: course})
}

// updateModule godoc
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param module body dto.ModuleUpdateDTO true "Module update request"
// @Success 200 {object} model.Module
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.MessageResponseDTO "Module not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to update module"
// @Router /modules/{moduleId} [put]
func (h *ModuleHandler) updateModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	var req dto.ModuleUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	updated, err := h.moduleService.UpdateModule(r.Context(), moduleID, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to update module", err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Module not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteModule godoc
// @Summary Delete a module
// @Description Deletes a module and removes it from every course that references it.
// @Tags modules
// @Produce json
// @Param moduleId path int true "Module ID"
// @Success 200 {object} dto.ModuleDeletedResponseDTO
// @Failure 400 {object} dto.MessageResponseDTO "Invalid module ID"
// @Failure 404 {object} dto.MessageResponseDTO "Module not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to delete module"
// @Router /modules/{moduleId} [delete]
func (h *ModuleHandler) deleteModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	deleted, course, err := h.coordinator.DeleteModuleCascade(r.Context(), moduleID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to delete module", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Module not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, dto.ModuleDeletedResponseDTO{Message: "Module deleted successfully", Course: course})
}
