package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/rs/zerolog"
)

// LessonService covers single-collection lesson operations
type LessonService interface {
	ListLessons(ctx context.Context) ([]model.Lesson, error)
	GetLessonByID(ctx context.Context, lessonID int) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID int, patch model.LessonPatch) (*model.Lesson, error)
}

type lessonService struct {
	repo     repository.LessonRepository
	notifier *pubsub.Notifier
	logger   zerolog.Logger
}

func NewLessonService(repo repository.LessonRepository, notifier *pubsub.Notifier, logger zerolog.Logger) LessonService {
	return &lessonService{repo: repo, notifier: notifier, logger: logger}
}

func (s *lessonService) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	return s.repo.ListLessons(ctx)
}

func (s *lessonService) GetLessonByID(ctx context.Context, lessonID int) (*model.Lesson, error) {
	return s.repo.GetLessonByID(ctx, lessonID)
}

func (s *lessonService) UpdateLesson(ctx context.Context, lessonID int, patch model.LessonPatch) (*model.Lesson, error) {
	l, err := s.repo.UpdateLesson(ctx, lessonID, patch)
	if err != nil || l == nil {
		return l, err
	}
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.LessonUpdated, EntityID: l.ID})
	return l, nil
}
