package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/rs/zerolog"
)

// DanglingRef is a reference from OwnerID to a TargetID that no longer exists.
type DanglingRef struct {
	OwnerID  int `json:"owner_id"`
	TargetID int `json:"target_id"`
}

// IntegrityReport lists the dangling references found in the collections.
type IntegrityReport struct {
	CourseModuleRefs []DanglingRef `json:"course_module_refs"`
	ModuleLessonRefs []DanglingRef `json:"module_lesson_refs"`
}

// Clean reports whether no dangling reference was found.
func (r *IntegrityReport) Clean() bool {
	return len(r.CourseModuleRefs) == 0 && len(r.ModuleLessonRefs) == 0
}

// IntegrityService finds and strips references left behind when a cascade
// was interrupted between its two writes.
type IntegrityService interface {
	Audit(ctx context.Context) (*IntegrityReport, error)
	// Repair strips every dangling reference and returns what was removed.
	// Each affected collection is written once.
	Repair(ctx context.Context) (*IntegrityReport, error)
}

type integrityService struct {
	courses  repository.CourseRepository
	modules  repository.ModuleRepository
	lessons  repository.LessonRepository
	notifier *pubsub.Notifier
	logger   zerolog.Logger
}

// NewIntegrityService creates a new IntegrityService
func NewIntegrityService(
	courses repository.CourseRepository,
	modules repository.ModuleRepository,
	lessons repository.LessonRepository,
	notifier *pubsub.Notifier,
	logger zerolog.Logger,
) IntegrityService {
	return &integrityService{courses: courses, modules: modules, lessons: lessons, notifier: notifier, logger: logger}
}

type snapshot struct {
	courses []model.Course
	modules []model.Module
	lessons []model.Lesson
}

func (s *integrityService) load(ctx context.Context) (*snapshot, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	modules, err := s.modules.ListModules(ctx)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{courses: courses, modules: modules, lessons: lessons}, nil
}

func (s *integrityService) Audit(ctx context.Context) (*IntegrityReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return audit(snap), nil
}

func audit(snap *snapshot) *IntegrityReport {
	moduleIDs := make(map[int]bool, len(snap.modules))
	for _, m := range snap.modules {
		moduleIDs[m.ID] = true
	}
	lessonIDs := make(map[int]bool, len(snap.lessons))
	for _, l := range snap.lessons {
		lessonIDs[l.ID] = true
	}

	report := &IntegrityReport{
		CourseModuleRefs: []DanglingRef{},
		ModuleLessonRefs: []DanglingRef{},
	}
	for _, c := range snap.courses {
		for _, ref := range c.Modules {
			if !moduleIDs[ref.ID] {
				report.CourseModuleRefs = append(report.CourseModuleRefs, DanglingRef{OwnerID: c.ID, TargetID: ref.ID})
			}
		}
	}
	for _, m := range snap.modules {
		for _, ref := range m.Lessons {
			if !lessonIDs[ref.ID] {
				report.ModuleLessonRefs = append(report.ModuleLessonRefs, DanglingRef{OwnerID: m.ID, TargetID: ref.ID})
			}
		}
	}
	return report
}

func (s *integrityService) Repair(ctx context.Context) (*IntegrityReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := audit(snap)
	if report.Clean() {
		return report, nil
	}

	if len(report.CourseModuleRefs) > 0 {
		for i := range snap.courses {
			for _, d := range report.CourseModuleRefs {
				if d.OwnerID == snap.courses[i].ID {
					snap.courses[i].Modules, _ = model.WithoutRef(snap.courses[i].Modules, d.TargetID)
				}
			}
		}
		if err := s.courses.SaveCourses(ctx, snap.courses); err != nil {
			return nil, err
		}
	}

	if len(report.ModuleLessonRefs) > 0 {
		for i := range snap.modules {
			for _, d := range report.ModuleLessonRefs {
				if d.OwnerID == snap.modules[i].ID {
					snap.modules[i].Lessons, _ = model.WithoutRef(snap.modules[i].Lessons, d.TargetID)
				}
			}
		}
		if err := s.modules.SaveModules(ctx, snap.modules); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int("course_module_refs", len(report.CourseModuleRefs)).
		Int("module_lesson_refs", len(report.ModuleLessonRefs)).
		Msg("Dangling references stripped")
	notifyEvent(ctx, s.notifier, s.logger, pubsub.Event{
		Type:     pubsub.ReferencesRepaired,
		EntityID: len(report.CourseModuleRefs) + len(report.ModuleLessonRefs),
	})
	return report, nil
}
