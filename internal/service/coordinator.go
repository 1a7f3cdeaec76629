package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/rs/zerolog"
)

// Coordinator maintains the course/module and module/lesson relationships
// across the three collections. Multi-document operations are a sequence of
// independent writes and are not rolled back when a later write fails.
type Coordinator interface {
	// AssignModuleToCourse appends a module reference to the course if it is
	// not already present. Returns nil when the course does not exist. The
	// module itself is not checked.
	AssignModuleToCourse(ctx context.Context, moduleID, courseID int) (*model.Course, error)
	// AssignLessonToModule appends a lesson reference to the module if it is
	// not already present. Returns nil when the module does not exist.
	AssignLessonToModule(ctx context.Context, moduleID, lessonID int) (*model.Module, error)
	// RemoveModuleFromCourse strips moduleID from every course and returns
	// the first affected course, or nil when no course referenced it.
	RemoveModuleFromCourse(ctx context.Context, moduleID int) (*model.Course, error)
	// DeleteModuleCascade deletes the module, then its course references.
	DeleteModuleCascade(ctx context.Context, moduleID int) (bool, *model.Course, error)
	// DeleteLessonCascade deletes the lesson, then its module references.
	DeleteLessonCascade(ctx context.Context, lessonID int) (bool, error)
	// CreateModuleInCourse creates a module and assigns it to an existing
	// course. Both results are nil when the course does not exist.
	CreateModuleInCourse(ctx context.Context, courseID int, title string) (*model.Module, *model.Course, error)
	// CreateLessonInModule creates a lesson and assigns it to an existing
	// module. Both results are nil when the module does not exist.
	CreateLessonInModule(ctx context.Context, moduleID int, lesson model.Lesson) (*model.Lesson, *model.Module, error)
}

type coordinator struct {
	courses  repository.CourseRepository
	modules  repository.ModuleRepository
	lessons  repository.LessonRepository
	notifier *pubsub.Notifier
	logger   zerolog.Logger
}

// NewCoordinator creates a new Coordinator
func NewCoordinator(
	courses repository.CourseRepository,
	modules repository.ModuleRepository,
	lessons repository.LessonRepository,
	notifier *pubsub.Notifier,
	logger zerolog.Logger,
) Coordinator {
	return &coordinator{
		courses:  courses,
		modules:  modules,
		lessons:  lessons,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *coordinator) AssignModuleToCourse(ctx context.Context, moduleID, courseID int) (*model.Course, error) {
	course, err := c.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, nil
	}
	if course.Modules == nil {
		course.Modules = []model.Ref{}
	}
	if model.HasRef(course.Modules, moduleID) {
		return course, nil
	}

	refs := append(course.Modules, model.Ref{ID: moduleID})
	updated, err := c.courses.UpdateCourse(ctx, courseID, model.CoursePatch{Modules: refs})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		c.notify(ctx, pubsub.Event{Type: pubsub.ModuleAssigned, EntityID: moduleID, ParentID: courseID})
	}
	return updated, nil
}

func (c *coordinator) AssignLessonToModule(ctx context.Context, moduleID, lessonID int) (*model.Module, error) {
	module, err := c.modules.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, nil
	}
	if module.Lessons == nil {
		module.Lessons = []model.Ref{}
	}
	if model.HasRef(module.Lessons, lessonID) {
		return module, nil
	}

	refs := append(module.Lessons, model.Ref{ID: lessonID})
	updated, err := c.modules.UpdateModule(ctx, moduleID, model.ModulePatch{Lessons: refs})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		c.notify(ctx, pubsub.Event{Type: pubsub.LessonAssigned, EntityID: lessonID, ParentID: moduleID})
	}
	return updated, nil
}

func (c *coordinator) RemoveModuleFromCourse(ctx context.Context, moduleID int) (*model.Course, error) {
	courses, err := c.courses.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	first := -1
	for i := range courses {
		refs, removed := model.WithoutRef(courses[i].Modules, moduleID)
		if !removed {
			continue
		}
		courses[i].Modules = refs
		if first == -1 {
			first = i
		} else {
			c.logger.Warn().
				Int("module_id", moduleID).
				Int("course_id", courses[i].ID).
				Msg("Module was referenced by more than one course")
		}
	}
	if first == -1 {
		return nil, nil
	}

	if err := c.courses.SaveCourses(ctx, courses); err != nil {
		return nil, err
	}
	affected := courses[first]
	c.notify(ctx, pubsub.Event{Type: pubsub.ModuleUnassigned, EntityID: moduleID, ParentID: affected.ID})
	return &affected, nil
}

func (c *coordinator) DeleteModuleCascade(ctx context.Context, moduleID int) (bool, *model.Course, error) {
	deleted, err := c.modules.DeleteModule(ctx, moduleID)
	if err != nil || !deleted {
		return false, nil, err
	}
	c.notify(ctx, pubsub.Event{Type: pubsub.ModuleDeleted, EntityID: moduleID})

	course, err := c.RemoveModuleFromCourse(ctx, moduleID)
	if err != nil {
		c.logger.Error().Err(err).Int("module_id", moduleID).Msg("Module deleted but course references were not cleaned up")
		return true, nil, err
	}
	c.logger.Info().Int("module_id", moduleID).Bool("course_updated", course != nil).Msg("Module deleted")
	return true, course, nil
}

func (c *coordinator) DeleteLessonCascade(ctx context.Context, lessonID int) (bool, error) {
	deleted, err := c.lessons.DeleteLesson(ctx, lessonID)
	if deleted {
		c.notify(ctx, pubsub.Event{Type: pubsub.LessonDeleted, EntityID: lessonID})
	}
	return deleted, err
}

func (c *coordinator) CreateModuleInCourse(ctx context.Context, courseID int, title string) (*model.Module, *model.Course, error) {
	course, err := c.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, nil
	}

	module, err := c.modules.CreateModule(ctx, title)
	if err != nil {
		return nil, nil, err
	}
	c.notify(ctx, pubsub.Event{Type: pubsub.ModuleCreated, EntityID: module.ID})

	updated, err := c.AssignModuleToCourse(ctx, module.ID, courseID)
	if err != nil {
		return module, nil, err
	}
	return module, updated, nil
}

func (c *coordinator) CreateLessonInModule(ctx context.Context, moduleID int, lesson model.Lesson) (*model.Lesson, *model.Module, error) {
	module, err := c.modules.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, nil, err
	}
	if module == nil {
		return nil, nil, nil
	}

	created, err := c.lessons.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, nil, err
	}
	c.notify(ctx, pubsub.Event{Type: pubsub.LessonCreated, EntityID: created.ID})

	updated, err := c.AssignLessonToModule(ctx, moduleID, created.ID)
	if err != nil {
		return created, nil, err
	}
	return created, updated, nil
}

// notify publishes e. The write it describes has already happened, so a
// publish failure is logged and not returned.
func (c *coordinator) notify(ctx context.Context, e pubsub.Event) {
	notifyEvent(ctx, c.notifier, c.logger, e)
}

func notifyEvent(ctx context.Context, n *pubsub.Notifier, logger zerolog.Logger, e pubsub.Event) {
	if n == nil {
		return
	}
	if _, err := n.Notify(ctx, e); err != nil {
		logger.Error().Err(err).Str("event", e.Type).Int("entity_id", e.EntityID).Msg("Failed to publish change event")
	}
}
