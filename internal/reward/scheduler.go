package reward

import (
	"context"
	"time"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

// StartDailyReset fires ResetDailyLeaderboard at every UTC midnight until ctx
// is cancelled. Meant for single-instance deployments; multi-instance setups
// should trigger the reset endpoint from an external scheduler instead.
func StartDailyReset(ctx context.Context, svc Service) {
	go func() {
		log := config.WithContext(ctx)
		for {
			now := time.Now().UTC()
			next := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
			timer := time.NewTimer(next.Sub(now))

			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if _, err := svc.ResetDailyLeaderboard(ctx); err != nil {
					log.WithError(err).Error("Scheduled leaderboard reset failed")
				}
			}
		}
	}()
}
