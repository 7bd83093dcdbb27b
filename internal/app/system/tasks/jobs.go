// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	"github.com/wearlab/watchclub/internal/app/store/oauthstate"
	"go.uber.org/zap"
)

// ExpiredFriendPostCleanupJob creates a job that soft-deletes friend
// posts past their expiration. Read paths already hide expired posts;
// the sweep keeps them from piling up in the active set.
func ExpiredFriendPostCleanupJob(posts *friendpoststore.Store, logger *zap.Logger, interval time.Duration) Job {
	return Job{
		Name:     "expired-friend-post-cleanup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			count, err := posts.CleanupExpired(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("swept expired friend posts", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// OAuthStateCleanupJob creates a job that removes expired OAuth state tokens.
// This is a backup for when MongoDB's TTL index cleanup is delayed.
func OAuthStateCleanupJob(stateStore *oauthstate.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "oauth-state-cleanup",
		Interval: 1 * time.Hour, // Run hourly
		Run: func(ctx context.Context) error {
			count, err := stateStore.CleanupExpired(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Debug("cleaned up expired OAuth states", zap.Int64("count", count))
			}
			return nil
		},
	}
}
