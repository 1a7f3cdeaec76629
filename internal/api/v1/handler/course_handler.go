package handler

import (
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/model"
	"coursehub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	coordinator   service.Coordinator
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, coordinator service.Coordinator, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, coordinator: coordinator, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /courses", authMw(http.HandlerFunc(h.listCourses)))
	mux.Handle("POST /courses", authMw(http.HandlerFunc(h.createCourse)))
	mux.Handle("POST /courses/batch", authMw(http.HandlerFunc(h.createCourses)))
	mux.Handle("GET /courses/{courseId}", authMw(http.HandlerFunc(h.getCourse)))
	mux.Handle("PUT /courses/{courseId}", authMw(http.HandlerFunc(h.updateCourse)))
	mux.Handle("DELETE /courses/{courseId}", authMw(http.HandlerFunc(h.deleteCourse)))
	mux.Handle("PUT /courses/{courseId}/modules/{moduleId}", authMw(http.HandlerFunc(h.assignModule)))
}

// listCourses godoc
// @Summary List courses
// @Description Lists every course with its modules and their lessons expanded. References that no longer resolve are returned as bare ids.
// @Tags courses
// @Produce json
// @Success 200 {array} model.ExpandedCourse
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve courses", err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course by its ID.
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} model.Course
// @Failure 400 {object} dto.MessageResponseDTO "Invalid course ID"
// @Failure 404 {object} dto.MessageResponseDTO "Course not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to retrieve course"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid course ID", err)
		return
	}
	course, err := h.courseService.GetCourseByID(r.Context(), courseID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to retrieve course", err)
		return
	}
	if course == nil {
		writeMessage(w, http.StatusNotFound, "Course not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a course with an empty module list.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course creation request"
// @Success 201 {object} model.Course
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to create course"
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	created, err := h.courseService.CreateCourse(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to create course", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// createCourses godoc
// @Summary Create several courses
// @Description Creates every course in the request with a single write. IDs are assigned in request order.
// @Tags courses
// @Accept json
// @Produce json
// @Param courses body dto.CourseBatchCreateDTO true "Batch creation request"
// @Success 201 {array} model.Course
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to create courses"
// @Router /courses/batch [post]
func (h *CourseHandler) createCourses(w http.ResponseWriter, r *http.Request) {
	var req dto.CourseBatchCreateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	inputs := make([]model.CourseInput, 0, len(req.Courses))
	for _, c := range req.Courses {
		inputs = append(inputs, c.ToInput())
	}
	created, err := h.courseService.CreateCourses(r.Context(), inputs)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to create courses", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateCourse godoc
// @Summary Update a course
// @Description Updates the supplied fields of an existing course.
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Course update request"
// @Success 200 {object} model.Course
// @Failure 400 {object} dto.MessageResponseDTO "Invalid JSON payload or validation failed"
// @Failure 404 {object} dto.MessageResponseDTO "Course not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to update course"
// @Router /courses/{courseId} [put]
func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid course ID", err)
		return
	}
	var req dto.CourseUpdateDTO
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	updated, err := h.courseService.UpdateCourse(r.Context(), courseID, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, "Failed to update course", err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Course not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course. Its modules are kept.
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.MessageResponseDTO
// @Failure 400 {object} dto.MessageResponseDTO "Invalid course ID"
// @Failure 404 {object} dto.MessageResponseDTO "Course not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to delete course"
// @Router /courses/{courseId} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid course ID", err)
		return
	}
	deleted, err := h.courseService.DeleteCourse(r.Context(), courseID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to delete course", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Course not found", nil)
		return
	}
	writeMessage(w, http.StatusOK, "Course deleted successfully", nil)
}

// assignModule godoc
// @Summary Assign a module to a course
// @Description Adds a module reference to the course. Assigning the same module twice has no further effect.
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Param moduleId path int true "Module ID"
// @Success 200 {object} model.Course
// @Failure 400 {object} dto.MessageResponseDTO "Invalid ID"
// @Failure 404 {object} dto.MessageResponseDTO "Course not found"
// @Failure 500 {object} dto.MessageResponseDTO "Failed to assign module"
// @Router /courses/{courseId}/modules/{moduleId} [put]
func (h *CourseHandler) assignModule(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "courseId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid course ID", err)
		return
	}
	moduleID, err := pathID(r, "moduleId")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid module ID", err)
		return
	}
	course, err := h.coordinator.AssignModuleToCourse(r.Context(), moduleID, courseID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to assign module", err)
		return
	}
	if course == nil {
		writeMessage(w, http.StatusNotFound, "Course not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, course)
}
