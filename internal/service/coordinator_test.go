package service

import (
	"context"
	"encoding/json"
	"testing"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	coursesDoc = "cours.json"
	modulesDoc = "modules.json"
	lessonsDoc = "lessons.json"
)

type recordingPublisher struct {
	events []pubsub.Event
}

func (r *recordingPublisher) Publish(_ context.Context, _ string, payload []byte) (string, error) {
	var e pubsub.Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return "", err
	}
	r.events = append(r.events, e)
	return "id", nil
}

func (r *recordingPublisher) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	backend     *storage.MemoryBackend
	courses     repository.CourseRepository
	modules     repository.ModuleRepository
	lessons     repository.LessonRepository
	publisher   *recordingPublisher
	coordinator Coordinator
	integrity   IntegrityService
	courseSvc   CourseService
}

func newFixture(t *testing.T, courses, modules, lessons string) *fixture {
	t.Helper()
	b := storage.NewMemoryBackend()
	b.Put(coursesDoc, []byte(courses))
	b.Put(modulesDoc, []byte(modules))
	b.Put(lessonsDoc, []byte(lessons))

	logger := zerolog.Nop()
	m := repository.NewModuleRepo(b, modulesDoc, logger)
	l := repository.NewLessonRepo(b, lessonsDoc, m, logger)
	c := repository.NewCourseRepo(b, coursesDoc, m, l, logger)
	pub := &recordingPublisher{}
	n := pubsub.NewNotifier(pub, "events")

	return &fixture{
		backend:     b,
		courses:     c,
		modules:     m,
		lessons:     l,
		publisher:   pub,
		coordinator: NewCoordinator(c, m, l, n, logger),
		integrity:   NewIntegrityService(c, m, l, n, logger),
		courseSvc:   NewCourseService(c, n, logger),
	}
}

func TestAssignModuleToCourse_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": [{"id": 1, "title": "C", "description": "d", "modules": []}]}`, `{"modules": []}`, `{"lessons": []}`)

	c, err := f.coordinator.AssignModuleToCourse(ctx, 5, 1)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, []model.Ref{{ID: 5}}, c.Modules)

	c, err = f.coordinator.AssignModuleToCourse(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 5}}, c.Modules)

	stored, err := f.courses.GetCourseByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 5}}, stored.Modules)
	assert.Equal(t, 1, f.backend.Writes(coursesDoc))
	assert.Equal(t, []string{pubsub.ModuleAssigned}, f.publisher.types())
}

func TestAssignModuleToCourse_InitializesMissingList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": [{"id": 1, "title": "C", "description": "d"}]}`, `{"modules": []}`, `{"lessons": []}`)

	c, err := f.coordinator.AssignModuleToCourse(ctx, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 3}}, c.Modules)
}

func TestAssignModuleToCourse_MissingCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": []}`, `{"lessons": []}`)

	c, err := f.coordinator.AssignModuleToCourse(ctx, 3, 1)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, f.backend.Writes(coursesDoc))
}

func TestAssignLessonToModule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": [{"id": 2, "title": "M"}]}`, `{"lessons": []}`)

	m, err := f.coordinator.AssignLessonToModule(ctx, 2, 9)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []model.Ref{{ID: 9}}, m.Lessons)

	m, err = f.coordinator.AssignLessonToModule(ctx, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 9}}, m.Lessons)
	assert.Equal(t, 1, f.backend.Writes(modulesDoc))

	missing, err := f.coordinator.AssignLessonToModule(ctx, 99, 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRemoveModuleFromCourse_AllMatchesFirstReturned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": [
		{"id": 1, "title": "A", "modules": [{"id": 4}]},
		{"id": 2, "title": "B", "modules": [{"id": 7}, {"id": 5}]},
		{"id": 3, "title": "C", "modules": [{"id": 5}]}
	]}`, `{"modules": []}`, `{"lessons": []}`)

	c, err := f.coordinator.RemoveModuleFromCourse(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.ID)
	assert.Equal(t, []model.Ref{{ID: 7}}, c.Modules)

	all, err := f.courses.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 4}}, all[0].Modules)
	assert.Equal(t, []model.Ref{{ID: 7}}, all[1].Modules)
	assert.Empty(t, all[2].Modules)
	assert.Equal(t, 1, f.backend.Writes(coursesDoc))
}

func TestRemoveModuleFromCourse_NoMatchNoWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": [{"id": 1, "title": "A", "modules": [{"id": 4}]}]}`, `{"modules": []}`, `{"lessons": []}`)

	c, err := f.coordinator.RemoveModuleFromCourse(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, f.backend.Writes(coursesDoc))
}

func TestDeleteModuleCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		`{"cours": [{"id": 1, "title": "A", "modules": [{"id": 4}, {"id": 6}]}]}`,
		`{"modules": [{"id": 4, "title": "M4"}, {"id": 6, "title": "M6"}]}`,
		`{"lessons": []}`)

	deleted, course, err := f.coordinator.DeleteModuleCascade(ctx, 4)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.NotNil(t, course)
	assert.Equal(t, []model.Ref{{ID: 6}}, course.Modules)

	m, err := f.modules.GetModuleByID(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, []string{pubsub.ModuleDeleted, pubsub.ModuleUnassigned}, f.publisher.types())

	deleted, course, err = f.coordinator.DeleteModuleCascade(ctx, 4)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Nil(t, course)
	assert.Equal(t, 1, f.backend.Writes(modulesDoc))
	assert.Equal(t, 1, f.backend.Writes(coursesDoc))
}

func TestDeleteLessonCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t,
		`{"cours": [{"id": 1, "title": "C", "modules": [{"id": 1}]}]}`,
		`{"modules": [{"id": 1, "title": "M", "lessons": [{"id": 1}, {"id": 2}]}]}`,
		`{"lessons": [{"id": 1, "title": "one"}, {"id": 2, "title": "two"}]}`)

	deleted, err := f.coordinator.DeleteLessonCascade(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	m, err := f.modules.GetModuleByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Ref{{ID: 2}}, m.Lessons)

	l, err := f.lessons.GetLessonByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, l)

	deleted, err = f.coordinator.DeleteLessonCascade(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, []string{pubsub.LessonDeleted}, f.publisher.types())
}

func TestCreateModuleInCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": [{"id": 1, "title": "C", "modules": []}]}`, `{"modules": [{"id": 3, "title": "old"}]}`, `{"lessons": []}`)

	m, c, err := f.coordinator.CreateModuleInCourse(ctx, 1, "Basics")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotNil(t, c)
	assert.Equal(t, 4, m.ID)
	assert.Equal(t, []model.Ref{{ID: 4}}, c.Modules)

	m, c, err = f.coordinator.CreateModuleInCourse(ctx, 42, "Nowhere")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Nil(t, c)

	modules, err := f.modules.ListModules(ctx)
	require.NoError(t, err)
	assert.Len(t, modules, 2)
}

func TestCreateLessonInModule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": [{"id": 1, "title": "M"}]}`, `{"lessons": []}`)

	l, m, err := f.coordinator.CreateLessonInModule(ctx, 1, model.Lesson{Title: "Intro", Topics: []string{"a"}})
	require.NoError(t, err)
	require.NotNil(t, l)
	require.NotNil(t, m)
	assert.Equal(t, 1, l.ID)
	assert.Equal(t, []model.Ref{{ID: 1}}, m.Lessons)

	l, m, err = f.coordinator.CreateLessonInModule(ctx, 9, model.Lesson{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.Nil(t, m)
	assert.Equal(t, 1, f.backend.Writes(lessonsDoc))
}

func TestCourseService_Events(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, `{"cours": []}`, `{"modules": []}`, `{"lessons": []}`)

	created, err := f.courseSvc.CreateCourses(ctx, []model.CourseInput{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)
	require.Len(t, created, 2)

	title := "A2"
	_, err = f.courseSvc.UpdateCourse(ctx, 1, model.CoursePatch{Title: &title})
	require.NoError(t, err)

	ok, err := f.courseSvc.DeleteCourse(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.courseSvc.DeleteCourse(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{
		pubsub.CourseCreated, pubsub.CourseCreated, pubsub.CourseUpdated, pubsub.CourseDeleted,
	}, f.publisher.types())
}
