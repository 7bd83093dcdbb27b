// internal/domain/models/user.go
package models

import "time"

// UserProfile is the persisted profile for an authenticated user.
//
// The document is keyed by the identity provider's stable uid (string),
// not a Mongo ObjectID. Identity fields (email, display name, photo) are
// refreshed on every login; IsAdmin is deliberately left untouched by the
// login upsert so a grant survives subsequent sign-ins. Elevation and
// revocation happen only through the explicit admin update path.
type UserProfile struct {
	UID         string `bson:"_id" json:"uid"`
	Email       string `bson:"email" json:"email"`
	DisplayName string `bson:"display_name" json:"display_name"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	IsAdmin     bool   `bson:"is_admin" json:"is_admin"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	LastLogin time.Time `bson:"last_login" json:"last_login"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
