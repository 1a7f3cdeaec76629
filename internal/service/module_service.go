package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/rs/zerolog"
)

// ModuleService covers single-collection module operations. Operations that
// touch courses go through the Coordinator.
type ModuleService interface {
	ListModules(ctx context.Context) ([]model.Module, error)
	GetModuleByID(ctx context.Context, moduleID int) (*model.Module, error)
	UpdateModule(ctx context.Context, moduleID int, patch model.ModulePatch) (*model.Module, error)
}

type moduleService struct {
	repo     repository.ModuleRepository
	notifier *pubsub.Notifier
	logger   zerolog.Logger
}

func NewModuleService(repo repository.ModuleRepository, notifier *pubsub.Notifier, logger zerolog.Logger) ModuleService {
	return &moduleService{repo: repo, notifier: notifier, logger: logger}
}

func (s *moduleService) ListModules(ctx context.Context) ([]model.Module, error) {
	return s.repo.ListModules(ctx)
}

func (s *moduleService) GetModuleByID(ctx context.Context, moduleID int) (*model.Module, error) {
	return s.repo.GetModuleByID(ctx, moduleID)
}

func (s *moduleService) UpdateModule(ctx context.Context, moduleID int, patch model.ModulePatch) (*model.Module, error) {
	m, err := s.repo.UpdateModule(ctx, moduleID, patch)
	if err != nil || m == nil {
		return m, err
	}
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.ModuleUpdated, EntityID: m.ID})
	return m, nil
}
