// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/wearlab/watchclub/internal/app/system/auth"
)

// UserCtx returns the current user's uid, display name, and a found flag.
// ok=false means the request is unauthenticated.
func UserCtx(r *http.Request) (uid string, name string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", false
	}
	return user.ID, user.Name, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.IsAdmin
}

// CanModerate reports whether the current user may delete content owned
// by authorID: owners moderate their own content, admins moderate all.
func CanModerate(r *http.Request, authorID string) bool {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	return user.ID == authorID || user.IsAdmin
}
