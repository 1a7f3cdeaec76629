package repository

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
)

const lessonsKey = "lessons"

// LessonRepository defines the interface for interacting with lesson data
type LessonRepository interface {
	ListLessons(ctx context.Context) ([]model.Lesson, error)
	// GetLessonByID returns nil when the lesson does not exist
	GetLessonByID(ctx context.Context, id int) (*model.Lesson, error)
	// CreateLesson assigns the next ID; any ID on the input is ignored
	CreateLesson(ctx context.Context, l model.Lesson) (*model.Lesson, error)
	// UpdateLesson returns nil when the lesson does not exist
	UpdateLesson(ctx context.Context, id int, patch model.LessonPatch) (*model.Lesson, error)
	// DeleteLesson removes the lesson, then strips its references from all modules
	DeleteLesson(ctx context.Context, id int) (bool, error)
	// SaveLessons replaces the whole lesson collection
	SaveLessons(ctx context.Context, lessons []model.Lesson) error
}

type lessonRepo struct {
	backend storage.Backend
	name    string
	modules ModuleRepository
	logger  zerolog.Logger
}

// NewLessonRepo creates a new LessonRepository. Deletes cascade into modules.
func NewLessonRepo(backend storage.Backend, name string, modules ModuleRepository, logger zerolog.Logger) LessonRepository {
	return &lessonRepo{
		backend: backend,
		name:    name,
		modules: modules,
		logger:  logger.With().Str("collection", lessonsKey).Logger(),
	}
}

func (r *lessonRepo) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	return storage.LoadCollection[model.Lesson](ctx, r.backend, r.name, lessonsKey)
}

func (r *lessonRepo) GetLessonByID(ctx context.Context, id int) (*model.Lesson, error) {
	lessons, err := r.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOf(lessons, id, lessonIDOf); idx != -1 {
		return &lessons[idx], nil
	}
	return nil, nil
}

func (r *lessonRepo) CreateLesson(ctx context.Context, l model.Lesson) (*model.Lesson, error) {
	lessons, err := r.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	l.ID = storage.NextID(lessons, lessonIDOf)
	if l.Topics == nil {
		l.Topics = []string{}
	}
	if l.Content == nil {
		l.Content = []model.ContentBlock{}
	}
	if err := r.SaveLessons(ctx, append(lessons, l)); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepo) UpdateLesson(ctx context.Context, id int, patch model.LessonPatch) (*model.Lesson, error) {
	lessons, err := r.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(lessons, id, lessonIDOf)
	if idx == -1 {
		return nil, nil
	}

	l := &lessons[idx]
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Description != nil {
		l.Description = *patch.Description
	}
	if patch.Topics != nil {
		l.Topics = patch.Topics
	}
	if patch.Content != nil {
		l.Content = patch.Content
	}

	if err := r.SaveLessons(ctx, lessons); err != nil {
		return nil, err
	}
	updated := *l
	return &updated, nil
}

// DeleteLesson performs two independent writes. A failure after the first
// leaves the lesson removed but still referenced by its module.
func (r *lessonRepo) DeleteLesson(ctx context.Context, id int) (bool, error) {
	lessons, err := r.ListLessons(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(lessons, id, lessonIDOf)
	if idx == -1 {
		return false, nil
	}
	if err := r.SaveLessons(ctx, append(lessons[:idx], lessons[idx+1:]...)); err != nil {
		return false, err
	}

	if err := r.modules.StripLessonReferences(ctx, id); err != nil {
		r.logger.Error().Err(err).Int("lesson_id", id).Msg("Lesson deleted but module references were not cleaned up")
		return true, err
	}
	r.logger.Info().Int("lesson_id", id).Msg("Lesson deleted and module references stripped")
	return true, nil
}

func (r *lessonRepo) SaveLessons(ctx context.Context, lessons []model.Lesson) error {
	if err := storage.SaveCollection(ctx, r.backend, r.name, lessonsKey, lessons); err != nil {
		return err
	}
	r.logger.Debug().Int("count", len(lessons)).Msg("Lesson collection written")
	return nil
}

func lessonIDOf(l model.Lesson) int { return l.ID }
