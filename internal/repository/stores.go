package repository

import (
	"context"

	"coursehub/internal/config"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
)

// Stores groups the three collection repositories over one backend.
type Stores struct {
	Courses CourseRepository
	Modules ModuleRepository
	Lessons LessonRepository
}

// OpenStores opens the configured backend, creates any missing collection
// document and wires the repositories. The returned close function is never nil.
func OpenStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Stores, func(), error) {
	backend, closeFn, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, closeFn, err
	}

	coursesDoc, modulesDoc, lessonsDoc := cfg.DocumentNames()
	for _, d := range []struct{ name, key string }{
		{coursesDoc, coursesKey},
		{modulesDoc, modulesKey},
		{lessonsDoc, lessonsKey},
	} {
		created, err := storage.Bootstrap(ctx, backend, d.name, d.key)
		if err != nil {
			closeFn()
			return nil, func() {}, err
		}
		if created {
			logger.Info().Str("document", d.name).Msg("Created empty collection document")
		}
	}

	return NewStores(backend, cfg, logger), closeFn, nil
}

// NewStores wires the repositories over an already opened backend.
func NewStores(backend storage.Backend, cfg *config.Config, logger zerolog.Logger) *Stores {
	coursesDoc, modulesDoc, lessonsDoc := cfg.DocumentNames()
	modules := NewModuleRepo(backend, modulesDoc, logger)
	lessons := NewLessonRepo(backend, lessonsDoc, modules, logger)
	return &Stores{
		Courses: NewCourseRepo(backend, coursesDoc, modules, lessons, logger),
		Modules: modules,
		Lessons: lessons,
	}
}
