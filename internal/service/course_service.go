package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/rs/zerolog"
)

// CourseService defines the interface for course operations
type CourseService interface {
	// ListCourses returns every course with its modules and lessons expanded
	ListCourses(ctx context.Context) ([]model.ExpandedCourse, error)
	// GetCourseByID retrieves a course by its ID
	GetCourseByID(ctx context.Context, courseID int) (*model.Course, error)
	CreateCourse(ctx context.Context, in model.CourseInput) (*model.Course, error)
	CreateCourses(ctx context.Context, in []model.CourseInput) ([]model.Course, error)
	// UpdateCourse updates an existing course
	UpdateCourse(ctx context.Context, courseID int, patch model.CoursePatch) (*model.Course, error)
	// DeleteCourse deletes a course by its ID. Its modules are left in place.
	DeleteCourse(ctx context.Context, courseID int) (bool, error)
}

// courseService is the implementation of CourseService
type courseService struct {
	repo     repository.CourseRepository
	notifier *pubsub.Notifier
	logger   zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, notifier *pubsub.Notifier, logger zerolog.Logger) CourseService {
	return &courseService{repo: repo, notifier: notifier, logger: logger}
}

func (s *courseService) ListCourses(ctx context.Context) ([]model.ExpandedCourse, error) {
	return s.repo.ListCoursesExpanded(ctx)
}

func (s *courseService) GetCourseByID(ctx context.Context, courseID int) (*model.Course, error) {
	return s.repo.GetCourseByID(ctx, courseID)
}

func (s *courseService) CreateCourse(ctx context.Context, in model.CourseInput) (*model.Course, error) {
	c, err := s.repo.CreateCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.CourseCreated, EntityID: c.ID})
	return c, nil
}

func (s *courseService) CreateCourses(ctx context.Context, in []model.CourseInput) ([]model.Course, error) {
	created, err := s.repo.CreateCourses(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, c := range created {
		notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.CourseCreated, EntityID: c.ID})
	}
	return created, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID int, patch model.CoursePatch) (*model.Course, error) {
	c, err := s.repo.UpdateCourse(ctx, courseID, patch)
	if err != nil || c == nil {
		return c, err
	}
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.CourseUpdated, EntityID: c.ID})
	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID int) (bool, error) {
	deleted, err := s.repo.DeleteCourse(ctx, courseID)
	if err != nil || !deleted {
		return deleted, err
	}
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{Type: pubsub.CourseDeleted, EntityID: courseID})
	return true, nil
}
