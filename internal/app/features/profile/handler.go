// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/wearlab/watchclub/internal/app/features/shared"
	userstore "github.com/wearlab/watchclub/internal/app/store/users"
	"github.com/wearlab/watchclub/internal/app/system/authz"
	"github.com/wearlab/watchclub/internal/app/system/htmlsanitize"
	"github.com/wearlab/watchclub/internal/app/system/normalize"
	"github.com/wearlab/watchclub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Users.GetProfile(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "loading profile failed", err)
		return
	}
	shared.JSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	var req struct {
		DisplayName *string `json:"display_name"`
		PhotoURL    *string `json:"photo_url"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}

	upd := userstore.ProfileUpdate{}
	if req.DisplayName != nil {
		name := normalize.Name(htmlsanitize.Text(*req.DisplayName))
		if name == "" {
			shared.Error(w, http.StatusBadRequest, "display name cannot be empty")
			return
		}
		upd.DisplayName = &name
	}
	if req.PhotoURL != nil {
		url := normalize.QueryParam(*req.PhotoURL)
		upd.PhotoURL = &url
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch err := h.Users.UpdateProfile(ctx, uid, upd); {
	case errors.Is(err, userstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "profile not found")
	case err != nil:
		shared.Internal(w, h.Log, "updating profile failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}
