package integrity

import (
	"context"
	"time"

	"coursehub/internal/service"

	"github.com/rs/zerolog"
)

// Mode selects what a run does with the dangling references it finds.
type Mode string

const (
	ModeAudit  Mode = "audit"
	ModeRepair Mode = "repair"
)

// Check runs a single audit or repair pass and logs every dangling reference.
func Check(ctx context.Context, logger zerolog.Logger, svc service.IntegrityService, mode Mode) (*service.IntegrityReport, error) {
	var (
		report *service.IntegrityReport
		err    error
	)
	if mode == ModeRepair {
		report, err = svc.Repair(ctx)
	} else {
		report, err = svc.Audit(ctx)
	}
	if err != nil {
		return nil, err
	}

	for _, d := range report.CourseModuleRefs {
		logger.Warn().Int("course_id", d.OwnerID).Int("module_id", d.TargetID).Msg("Course references missing module")
	}
	for _, d := range report.ModuleLessonRefs {
		logger.Warn().Int("module_id", d.OwnerID).Int("lesson_id", d.TargetID).Msg("Module references missing lesson")
	}
	if report.Clean() {
		logger.Info().Str("mode", string(mode)).Msg("No dangling references")
	}
	return report, nil
}

// Watch repeats Check every interval until ctx is cancelled. A failed pass
// is logged and retried on the next tick.
func Watch(ctx context.Context, logger zerolog.Logger, svc service.IntegrityService, mode Mode, interval time.Duration) error {
	logger.Info().Str("mode", string(mode)).Dur("interval", interval).Msg("Starting integrity watcher")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := Check(ctx, logger, svc, mode); err != nil {
			logger.Error().Err(err).Msg("Integrity check failed")
		}
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down integrity watcher")
			return nil
		case <-ticker.C:
		}
	}
}
