package repository

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const coursesKey = "cours"

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	// ListCourses returns all courses in insertion order without expansion
	ListCourses(ctx context.Context) ([]model.Course, error)
	// ListCoursesExpanded resolves every course's modules and their lessons
	ListCoursesExpanded(ctx context.Context) ([]model.ExpandedCourse, error)
	// GetCourseByID returns nil when the course does not exist
	GetCourseByID(ctx context.Context, id int) (*model.Course, error)
	CreateCourse(ctx context.Context, in model.CourseInput) (*model.Course, error)
	// CreateCourses creates all inputs with a single write
	CreateCourses(ctx context.Context, in []model.CourseInput) ([]model.Course, error)
	// UpdateCourse returns nil when the course does not exist
	UpdateCourse(ctx context.Context, id int, patch model.CoursePatch) (*model.Course, error)
	DeleteCourse(ctx context.Context, id int) (bool, error)
	// SaveCourses replaces the whole course collection
	SaveCourses(ctx context.Context, courses []model.Course) error
}

type courseRepo struct {
	backend storage.Backend
	name    string
	modules ModuleRepository
	lessons LessonRepository
	logger  zerolog.Logger
}

// NewCourseRepo creates a new CourseRepository backed by the named document.
// The module and lesson repositories are only used for expansion.
func NewCourseRepo(backend storage.Backend, name string, modules ModuleRepository, lessons LessonRepository, logger zerolog.Logger) CourseRepository {
	return &courseRepo{
		backend: backend,
		name:    name,
		modules: modules,
		lessons: lessons,
		logger:  logger.With().Str("collection", coursesKey).Logger(),
	}
}

func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	courses, err := storage.LoadCollection[model.Course](ctx, r.backend, r.name, coursesKey)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].Modules == nil {
			courses[i].Modules = []model.Ref{}
		}
	}
	return courses, nil
}

func (r *courseRepo) ListCoursesExpanded(ctx context.Context) ([]model.ExpandedCourse, error) {
	var (
		courses []model.Course
		modules []model.Module
		lessons []model.Lesson
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = r.ListCourses(gctx)
		return err
	})
	g.Go(func() (err error) {
		modules, err = r.modules.ListModules(gctx)
		return err
	})
	g.Go(func() (err error) {
		lessons, err = r.lessons.ListLessons(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	modulesByID := make(map[int]model.Module, len(modules))
	for _, m := range modules {
		modulesByID[m.ID] = m
	}
	lessonsByID := make(map[int]model.Lesson, len(lessons))
	for _, l := range lessons {
		lessonsByID[l.ID] = l
	}

	expanded := make([]model.ExpandedCourse, 0, len(courses))
	for _, c := range courses {
		ec := model.ExpandedCourse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Modules:     make([]model.ExpandedModule, 0, len(c.Modules)),
		}
		for _, ref := range c.Modules {
			m, ok := modulesByID[ref.ID]
			if !ok {
				ec.Modules = append(ec.Modules, model.ExpandedModule{ID: ref.ID})
				continue
			}
			em := model.ExpandedModule{
				ID:       m.ID,
				Title:    m.Title,
				Lessons:  make([]model.ExpandedLesson, 0, len(m.Lessons)),
				Resolved: true,
			}
			for _, lref := range m.Lessons {
				l, ok := lessonsByID[lref.ID]
				if !ok {
					em.Lessons = append(em.Lessons, model.ExpandedLesson{Lesson: model.Lesson{ID: lref.ID}})
					continue
				}
				em.Lessons = append(em.Lessons, model.ExpandedLesson{Lesson: l, Resolved: true})
			}
			ec.Modules = append(ec.Modules, em)
		}
		expanded = append(expanded, ec)
	}
	return expanded, nil
}

func (r *courseRepo) GetCourseByID(ctx context.Context, id int) (*model.Course, error) {
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i], nil
		}
	}
	return nil, nil
}

func (r *courseRepo) CreateCourse(ctx context.Context, in model.CourseInput) (*model.Course, error) {
	created, err := r.CreateCourses(ctx, []model.CourseInput{in})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

func (r *courseRepo) CreateCourses(ctx context.Context, in []model.CourseInput) ([]model.Course, error) {
	if len(in) == 0 {
		return []model.Course{}, nil
	}
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	// IDs are computed once against the pre-batch snapshot.
	next := storage.NextID(courses, courseIDOf)
	created := make([]model.Course, 0, len(in))
	for i, c := range in {
		created = append(created, model.Course{
			ID:          next + i,
			Title:       c.Title,
			Description: c.Description,
			Modules:     []model.Ref{},
		})
	}

	if err := r.SaveCourses(ctx, append(courses, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *courseRepo) UpdateCourse(ctx context.Context, id int, patch model.CoursePatch) (*model.Course, error) {
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(courses, id, courseIDOf)
	if idx == -1 {
		return nil, nil
	}

	c := &courses[idx]
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Modules != nil {
		c.Modules = patch.Modules
	}

	if err := r.SaveCourses(ctx, courses); err != nil {
		return nil, err
	}
	updated := *c
	return &updated, nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, id int) (bool, error) {
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(courses, id, courseIDOf)
	if idx == -1 {
		return false, nil
	}
	if err := r.SaveCourses(ctx, append(courses[:idx], courses[idx+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *courseRepo) SaveCourses(ctx context.Context, courses []model.Course) error {
	if err := storage.SaveCollection(ctx, r.backend, r.name, coursesKey, courses); err != nil {
		return err
	}
	r.logger.Debug().Int("count", len(courses)).Msg("Course collection written")
	return nil
}

func courseIDOf(c model.Course) int { return c.ID }
