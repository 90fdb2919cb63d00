package auth

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScheduleSessionCleanup registers the expired-session purge on c.
func ScheduleSessionCleanup(c *cron.Cron, sessions SessionManagerInterface, schedule string, logger *zap.Logger) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		if removed := sessions.PurgeExpired(); removed > 0 {
			logger.Info("expired sessions purged", zap.Int("removed", removed))
		}
	})
}
