package handler

import (
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LessonHandler handles lesson-related endpoints
type LessonHandler struct {
	lessonService service.LessonService
	coordinator   service.Coordinator
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(lessonService service.LessonService, coordinator service.Coordinator, validate *validator.Validate, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, coordinator: coordinator, validate: validate, logger: logger}
}

// RegisterRoutes mounts lesson routes
func (h *LessonHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /lessons", authMw(http.HandlerFunc(h.listLessons)))
	mux.Handle("GET /lessons/{lessonId}", authMw(http.HandlerFunc(h.getLesson)))
	mux.Handle("POST /modules/{moduleId}/lessons", authMw(http.HandlerFunc(h.createLesson)))
	mux.Handle("PUT /modules/{moduleId}/lessons/{lessonId}", authMw(http.HandlerFunc(h.assignLesson)))
	mux.Handle("PUT /lessons/{lessonId}", authMw(http.HandlerFunc(h.updateLesson)))
	mux.Handle("DELETE /lessons/{lessonId}", authMw(http.HandlerFunc(h.deleteLesson)))
}

// listLessons godoc
// @Summary List lessons
// @Tags lessons
// @Produce json
// @Success 200 {array} model.Lesson
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve lessons"
// @Router /lessons [get]
func (h *LessonHandler) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessonService.ListLessons(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve lessons", err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

// getLesson godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} model.Lesson
// @Failure 400 {object} dto.MessageResponseDTO "Invalid lesson ID"
// @Failure 404 {object} dto.MessageResponseDTO "Lesson not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve lesson"
// @Router /lessons/{lessonId} [get]
func (h *LessonHandler) getLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}
	lesson, err := h.lessonService.GetLessonByID(r.Context(), lessonID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve lesson", err)
		return
	}
	if lesson == nil {
		writeMessage(w, http.StatusNotFound, "Lesson not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

// createLesson godoc
// @Summary Create a lesson in a module
// @Description Creates a lesson and appends it to the module's lesson list.
// @Tags lessons
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param lesson body dto.LessonCreateDTO true "Lesson creation request"
// @Success 201 {object} dto.LessonCreatedResponseDTO
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.MessageResponseDTO "Module not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to create lesson"
// @Router /modules/{moduleId}/lessons [post]
func (h *LessonHandler) createLesson(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	var req dto.LessonCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	lesson, module, err := h.coordinator.CreateLessonInModule(r.Context(), moduleID, req.ToLesson())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to create lesson", err)
		return
	}
	if module == nil {
		writeMessage(w, http.StatusNotFound, "Module not found", nil)
		return
	}
	writeJSON(w, http.StatusCreated, dto.LessonCreatedResponseDTO{
		Message: "Lesson created successfully",
		Lesson:  lesson,
		Module:  module,
	})
}

// assignLesson godoc
// @Summary Assign a lesson to a module
// @Tags lessons
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} model.Module
// @Failure 400 {object} dto.MessageResponseDTO "Invalid ID"
// @Failure 404 {object} dto.MessageResponseDTO "Module not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to assign lesson"
// @Router /modules/{moduleId}/lessons/{lessonId} [put]
func (h *LessonHandler) assignLesson(w http.ResponseWriter, r *http.Request) {
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	lessonID, err := pathID(r, "lessonId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}
	module, err := h.coordinator.AssignLessonToModule(r.Context(), moduleID, lessonID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to assign lesson", err)
		return
	}
	if module == nil {
		writeMessage(w, http.StatusNotFound, "Module not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

// updateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Param lesson body dto.LessonUpdateDTO true "Lesson update request"
// @Success 200 {object} model.Lesson
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.MessageResponseDTO "Lesson not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to update lesson"
// @Router /lessons/{lessonId} [put]
func (h *LessonHandler) updateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}
	var req dto.LessonUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	updated, err := h.lessonService.UpdateLesson(r.Context(), lessonID, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to update lesson", err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Lesson not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteLesson godoc
// @Summary Delete a lesson
// @Description Deletes a lesson and removes it from every module that references it.
// @Tags lessons
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.MessageResponseDTO
// @Failure 400 {object} dto.MessageResponseDTO "Invalid lesson ID"
// @Failure 404 {object} dto.MessageResponseDTO "Lesson not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to delete lesson"
// @Router /lessons/{lessonId} [delete]
func (h *LessonHandler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := pathID(r, "lessonId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}
	deleted, err := h.coordinator.DeleteLessonCascade(r.Context(), lessonID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to delete lesson", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Lesson not found", nil)
		return
	}
	writeMessage(w, http.StatusOK, "Lesson deleted successfully", nil)
}
