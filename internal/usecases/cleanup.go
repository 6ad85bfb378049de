package usecases

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/repositories"
)

type CleanupService interface {
	// CleanupOldTempFiles removes scratch files older than maxAge and reports how many
	// were deleted. Files of requests still in flight are kept however old they are.
	// Errors on single entries are logged and skipped.
	CleanupOldTempFiles(maxAge time.Duration) int
}

type cleanupService struct {
	storage repositories.ScratchStorage
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewCleanupService(storage repositories.ScratchStorage, log logrus.FieldLogger) CleanupService {
	return &cleanupService{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

func (s *cleanupService) CleanupOldTempFiles(maxAge time.Duration) int {
	removed := 0
	for _, dir := range []string{s.storage.UploadsDir(), s.storage.OutputsDir()} {
		removed += s.sweepDir(dir, maxAge)
	}
	if removed > 0 {
		s.log.WithField("removed", removed).Info("old scratch files removed")
	}
	return removed
}

func (s *cleanupService) sweepDir(dir string, maxAge time.Duration) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.WithError(err).WithField("dir", dir).Warn("scratch dir could not be read")
		return 0
	}

	now := s.now()
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed by its own request in the meantime
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if s.storage.InUse(path) {
			s.log.WithField("path", path).Debug("old scratch file still in use, kept")
			continue
		}
		if err := os.Remove(path); err != nil {
			s.log.WithError(err).WithField("path", path).Warn("old scratch file could not be removed")
			continue
		}
		removed++
	}
	return removed
}

// StartSweeper schedules CleanupOldTempFiles on a seconds-enabled cron schedule. The caller
// stops the returned cron on shutdown.
func StartSweeper(svc CleanupService, schedule string, maxAge time.Duration, log logrus.FieldLogger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(schedule, func() {
		svc.CleanupOldTempFiles(maxAge)
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.WithFields(logrus.Fields{"schedule": schedule, "max_age": maxAge.String()}).Info("scratch sweeper started")
	return c, nil
}
