// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminfeature "github.com/wearlab/watchclub/internal/app/features/admin"
	authgooglefeature "github.com/wearlab/watchclub/internal/app/features/authgoogle"
	faqfeature "github.com/wearlab/watchclub/internal/app/features/faq"
	friendsfeature "github.com/wearlab/watchclub/internal/app/features/friends"
	healthfeature "github.com/wearlab/watchclub/internal/app/features/health"
	logoutfeature "github.com/wearlab/watchclub/internal/app/features/logout"
	profilefeature "github.com/wearlab/watchclub/internal/app/features/profile"
	qnafeature "github.com/wearlab/watchclub/internal/app/features/qna"
	faqstore "github.com/wearlab/watchclub/internal/app/store/faqs"
	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	loginstore "github.com/wearlab/watchclub/internal/app/store/logins"
	"github.com/wearlab/watchclub/internal/app/store/oauthstate"
	qnastore "github.com/wearlab/watchclub/internal/app/store/qna"
	userstore "github.com/wearlab/watchclub/internal/app/store/users"
	"github.com/wearlab/watchclub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.WatchClubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Stores.
	users := userstore.New(db)
	faqs := faqstore.New(db)
	questions := qnastore.New(db, logger)
	posts := friendpoststore.New(db)
	logins := loginstore.New(db)
	states := oauthstate.New(db)

	// The UserFetcher lets LoadSessionUser refresh the admin flag on every
	// request, so promotions and revocations take effect immediately.
	auth.SetUserFetcher(userstore.NewFetcher(users))

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.WatchClubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Google sign-in.
	googleHandler := authgooglefeature.NewHandler(users, logins, states,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Content APIs.
	faqHandler := faqfeature.NewHandler(faqs, logger)
	r.Mount("/faqs", faqfeature.Routes(faqHandler))

	qnaHandler := qnafeature.NewHandler(questions, logger)
	r.Mount("/qna", qnafeature.Routes(qnaHandler))

	friendsHandler := friendsfeature.NewHandler(posts, logger)
	r.Mount("/friends", friendsfeature.Routes(friendsHandler))

	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Admin panel.
	adminHandler := adminfeature.NewHandler(users, questions, faqs, posts, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
