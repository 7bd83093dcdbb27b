// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	"github.com/wearlab/watchclub/internal/app/store/oauthstate"
	"github.com/wearlab/watchclub/internal/app/system/normalize"
	"github.com/wearlab/watchclub/internal/app/system/tasks"
)

// jobRunner owns the background cleanup jobs; started here, stopped in Shutdown.
var jobRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.WatchClubMongoDatabase

	if appCfg.BootstrapAdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, db, appCfg.BootstrapAdminEmail, logger); err != nil {
			return err
		}
	}

	jobRunner = tasks.NewRunner(logger,
		tasks.ExpiredFriendPostCleanupJob(friendpoststore.New(db), logger, appCfg.FriendPostCleanupInterval),
		tasks.OAuthStateCleanupJob(oauthstate.New(db), logger),
	)
	jobRunner.Start()

	return nil
}

// ensureBootstrapAdmin promotes the profile with the given email to admin.
// Profiles are created by Google sign-in, so on a fresh deployment the
// promotion happens on the first startup after that account signs in.
func ensureBootstrapAdmin(ctx context.Context, db *mongo.Database, email string, logger *zap.Logger) error {
	email = normalize.Email(email)

	res, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"is_admin":   true,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		logger.Error("bootstrap admin promotion failed",
			zap.String("email", email), zap.Error(err))
		return err
	}

	switch {
	case res.ModifiedCount > 0:
		logger.Info("promoted bootstrap admin", zap.String("email", email))
	case res.MatchedCount > 0:
		logger.Info("bootstrap admin already promoted", zap.String("email", email))
	default:
		logger.Info("bootstrap admin has not signed in yet", zap.String("email", email))
	}
	return nil
}
