// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS); AppConfig is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is the externally visible origin, used to build the OAuth
	// callback URL (e.g. "https://watchclub.example.com").
	BaseURL string

	// BootstrapAdminEmail names a profile promoted to admin at startup,
	// so a fresh deployment has at least one admin account.
	BootstrapAdminEmail string

	// FriendPostCleanupInterval is how often the expired-post sweep runs.
	FriendPostCleanupInterval time.Duration
}
