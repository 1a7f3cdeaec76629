package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/service"
	"coursehub/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passThrough(next http.Handler) http.Handler { return next }

func newTestMux(t *testing.T, backend *storage.MemoryBackend) *http.ServeMux {
	t.Helper()
	logger := zerolog.Nop()
	notifier := pubsub.NewNotifier(nil, "")
	validate := validator.New(validator.WithRequiredStructEnabled())

	modules := repository.NewModuleRepo(backend, "modules.json", logger)
	lessons := repository.NewLessonRepo(backend, "lessons.json", modules, logger)
	courses := repository.NewCourseRepo(backend, "cours.json", modules, lessons, logger)
	coord := service.NewCoordinator(courses, modules, lessons, notifier, logger)

	mux := http.NewServeMux()
	NewCourseHandler(service.NewCourseService(courses, notifier, logger), coord, validate, logger).RegisterRoutes(mux, passThrough)
	NewModuleHandler(service.NewModuleService(modules, notifier, logger), coord, validate, logger).RegisterRoutes(mux, passThrough)
	NewLessonHandler(service.NewLessonService(lessons, notifier, logger), coord, validate, logger).RegisterRoutes(mux, passThrough)
	return mux
}

func seededBackend(courses, modules, lessons string) *storage.MemoryBackend {
	b := storage.NewMemoryBackend()
	b.Put("cours.json", []byte(courses))
	b.Put("modules.json", []byte(modules))
	b.Put("lessons.json", []byte(lessons))
	return b
}

func do(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateCourse(t *testing.T) {
	b := seededBackend(`{"cours": []}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPost, "/courses", dto.CourseCreateDTO{Title: "Go Basics", Description: "An introduction to Go"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, []model.Ref{}, created.Modules)
	assert.Equal(t, 1, b.Writes("cours.json"))
}

func TestCreateCourse_ValidationFailed(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"short title", dto.CourseCreateDTO{Title: "Go", Description: "An introduction to Go"}},
		{"short description", dto.CourseCreateDTO{Title: "Go Basics", Description: "short"}},
		{"missing fields", map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seededBackend(`{"cours": []}`, `{"modules": []}`, `{"lessons": []}`)
			rec := do(t, newTestMux(t, b), http.MethodPost, "/courses", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, b.Writes("cours.json"))
		})
	}
}

func TestCreateCourses_Batch(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 4, "title": "Old", "description": "d", "modules": []}]}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPost, "/courses/batch", dto.CourseBatchCreateDTO{Courses: []dto.CourseCreateDTO{
		{Title: "First course", Description: "The first of two"},
		{Title: "Second course", Description: "The second of two"},
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created []model.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created, 2)
	assert.Equal(t, 5, created[0].ID)
	assert.Equal(t, 6, created[1].ID)
	assert.Equal(t, 1, b.Writes("cours.json"))
}

func TestGetCourse(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 2}]}]}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodGet, "/courses/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 2}]}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/courses/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/courses/abc", nil).Code)
}

func TestListCourses_Expanded(t *testing.T) {
	b := seededBackend(
		`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 1}, {"id": 7}]}]}`,
		`{"modules": [{"id": 1, "title": "Basics", "lessons": [{"id": 3}, {"id": 8}]}]}`,
		`{"lessons": [{"id": 3, "title": "Vars", "description": "", "topics": [], "content": []}]}`,
	)
	rec := do(t, newTestMux(t, b), http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id": 1, "title": "Go", "description": "d",
		"modules": [
			{"id": 1, "title": "Basics", "lessons": [
				{"id": 3, "title": "Vars", "description": "", "topics": [], "content": []},
				{"id": 8}
			]},
			{"id": 7}
		]
	}]`, rec.Body.String())
	assert.Equal(t, 0, b.Writes("cours.json"))
}

func TestListCourses_StorageFailure(t *testing.T) {
	b := storage.NewMemoryBackend()
	rec := do(t, newTestMux(t, b), http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.MessageResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to retrieve courses", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestUpdateCourse_Partial(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 1, "title": "Go", "description": "Original text", "modules": [{"id": 2}]}]}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPut, "/courses/1", map[string]string{"title": "Go in depth"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 1, "title": "Go in depth", "description": "Original text", "modules": [{"id": 2}]}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPut, "/courses/5", map[string]string{"title": "Missing"}).Code)
}

func TestDeleteCourse_KeepsModules(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 2}]}]}`, `{"modules": [{"id": 2, "title": "Basics"}]}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	require.Equal(t, http.StatusOK, do(t, mux, http.MethodDelete, "/courses/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodDelete, "/courses/1", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, mux, http.MethodGet, "/modules/2", nil).Code)
	assert.Equal(t, 0, b.Writes("modules.json"))
}

func TestCreateModuleInCourse(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": []}]}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPost, "/courses/1/modules", dto.ModuleCreateDTO{Title: "Basics"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ModuleCreatedResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Module)
	require.NotNil(t, resp.Course)
	assert.Equal(t, 1, resp.Module.ID)
	assert.Equal(t, []model.Ref{{ID: 1}}, resp.Course.Modules)

	rec = do(t, mux, http.MethodPost, "/courses/9/modules", dto.ModuleCreateDTO{Title: "Basics"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, b.Writes("modules.json"))
}

func TestAssignModule_Idempotent(t *testing.T) {
	b := seededBackend(`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": []}]}`, `{"modules": []}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	for i := 0; i < 2; i++ {
		rec := do(t, mux, http.MethodPut, "/courses/1/modules/3", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 3}]}`, rec.Body.String())
	}
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPut, "/courses/2/modules/3", nil).Code)
}

func TestDeleteModule_Cascade(t *testing.T) {
	b := seededBackend(
		`{"cours": [{"id": 1, "title": "Go", "description": "d", "modules": [{"id": 2}, {"id": 3}]}]}`,
		`{"modules": [{"id": 2, "title": "Basics"}, {"id": 3, "title": "Advanced"}]}`,
		`{"lessons": []}`,
	)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodDelete, "/modules/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ModuleDeletedResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Course)
	assert.Equal(t, []model.Ref{{ID: 3}}, resp.Course.Modules)

	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodDelete, "/modules/2", nil).Code)
}

func TestUpdateModule(t *testing.T) {
	b := seededBackend(`{"cours": []}`, `{"modules": [{"id": 2, "title": "Basics", "lessons": [{"id": 1}]}]}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPut, "/modules/2", map[string]string{"title": "Fundamentals"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 2, "title": "Fundamentals", "lessons": [{"id": 1}]}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPut, "/modules/2", map[string]string{"title": "ab"}).Code)
}

func TestLessonLifecycle(t *testing.T) {
	b := seededBackend(`{"cours": []}`, `{"modules": [{"id": 1, "title": "Basics"}]}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPost, "/modules/1/lessons", dto.LessonCreateDTO{
		Title:   "Variables",
		Topics:  []string{"var", "const"},
		Content: []dto.ContentBlockDTO{{Type: "text", Data: "Go has variables."}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.LessonCreatedResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Lesson)
	require.NotNil(t, created.Module)
	assert.Equal(t, 1, created.Lesson.ID)
	assert.Equal(t, []model.Ref{{ID: 1}}, created.Module.Lessons)

	rec = do(t, mux, http.MethodPut, "/lessons/1", map[string]string{"description": "Declaring values"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Lesson
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Variables", updated.Title)
	assert.Equal(t, "Declaring values", updated.Description)

	require.Equal(t, http.StatusOK, do(t, mux, http.MethodDelete, "/lessons/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/lessons/1", nil).Code)

	rec = do(t, mux, http.MethodGet, "/modules/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 1, "title": "Basics"}`, rec.Body.String())
}

func TestCreateLesson_Invalid(t *testing.T) {
	b := seededBackend(`{"cours": []}`, `{"modules": [{"id": 1, "title": "Basics"}]}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPost, "/modules/1/lessons", dto.LessonCreateDTO{
		Title:   "Variables",
		Content: []dto.ContentBlockDTO{{Data: "no type"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPost, "/modules/5/lessons", dto.LessonCreateDTO{Title: "Variables"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, b.Writes("modules.json"))
}

func TestAssignLesson(t *testing.T) {
	b := seededBackend(`{"cours": []}`, `{"modules": [{"id": 1, "title": "Basics"}]}`, `{"lessons": []}`)
	mux := newTestMux(t, b)

	rec := do(t, mux, http.MethodPut, "/modules/1/lessons/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 1, "title": "Basics", "lessons": [{"id": 4}]}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPut, "/modules/2/lessons/4", nil).Code)
}
