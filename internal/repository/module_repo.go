package repository

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/storage"

	"github.com/rs/zerolog"
)

const modulesKey = "modules"

// ModuleRepository defines the interface for interacting with module data
type ModuleRepository interface {
	ListModules(ctx context.Context) ([]model.Module, error)
	// GetModuleByID returns nil when the module does not exist
	GetModuleByID(ctx context.Context, id int) (*model.Module, error)
	CreateModule(ctx context.Context, title string) (*model.Module, error)
	// UpdateModule returns nil when the module does not exist
	UpdateModule(ctx context.Context, id int, patch model.ModulePatch) (*model.Module, error)
	// DeleteModule removes the module only; course references are left to the caller
	DeleteModule(ctx context.Context, id int) (bool, error)
	// StripLessonReferences removes lessonID from every module's lessons and
	// writes the whole collection, whether or not anything matched
	StripLessonReferences(ctx context.Context, lessonID int) error
	// SaveModules replaces the whole module collection
	SaveModules(ctx context.Context, modules []model.Module) error
}

type moduleRepo struct {
	backend storage.Backend
	name    string
	logger  zerolog.Logger
}

// NewModuleRepo creates a new ModuleRepository backed by the named document
func NewModuleRepo(backend storage.Backend, name string, logger zerolog.Logger) ModuleRepository {
	return &moduleRepo{
		backend: backend,
		name:    name,
		logger:  logger.With().Str("collection", modulesKey).Logger(),
	}
}

func (r *moduleRepo) ListModules(ctx context.Context) ([]model.Module, error) {
	return storage.LoadCollection[model.Module](ctx, r.backend, r.name, modulesKey)
}

func (r *moduleRepo) GetModuleByID(ctx context.Context, id int) (*model.Module, error) {
	modules, err := r.ListModules(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOf(modules, id, moduleIDOf); idx != -1 {
		return &modules[idx], nil
	}
	return nil, nil
}

func (r *moduleRepo) CreateModule(ctx context.Context, title string) (*model.Module, error) {
	modules, err := r.ListModules(ctx)
	if err != nil {
		return nil, err
	}
	m := model.Module{ID: storage.NextID(modules, moduleIDOf), Title: title}
	if err := r.SaveModules(ctx, append(modules, m)); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *moduleRepo) UpdateModule(ctx context.Context, id int, patch model.ModulePatch) (*model.Module, error) {
	modules, err := r.ListModules(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(modules, id, moduleIDOf)
	if idx == -1 {
		return nil, nil
	}

	m := &modules[idx]
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Lessons != nil {
		m.Lessons = patch.Lessons
	}

	if err := r.SaveModules(ctx, modules); err != nil {
		return nil, err
	}
	updated := *m
	return &updated, nil
}

func (r *moduleRepo) DeleteModule(ctx context.Context, id int) (bool, error) {
	modules, err := r.ListModules(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(modules, id, moduleIDOf)
	if idx == -1 {
		return false, nil
	}
	if err := r.SaveModules(ctx, append(modules[:idx], modules[idx+1:]...)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *moduleRepo) StripLessonReferences(ctx context.Context, lessonID int) error {
	modules, err := r.ListModules(ctx)
	if err != nil {
		return err
	}
	for i := range modules {
		if modules[i].Lessons != nil {
			modules[i].Lessons, _ = model.WithoutRef(modules[i].Lessons, lessonID)
		}
	}
	return r.SaveModules(ctx, modules)
}

func (r *moduleRepo) SaveModules(ctx context.Context, modules []model.Module) error {
	if err := storage.SaveCollection(ctx, r.backend, r.name, modulesKey, modules); err != nil {
		return err
	}
	r.logger.Debug().Int("count", len(modules)).Msg("Module collection written")
	return nil
}

func moduleIDOf(m model.Module) int { return m.ID }
