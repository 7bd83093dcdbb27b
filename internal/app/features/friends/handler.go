// internal/app/features/friends/handler.go
package friends

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/features/shared"
	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	"github.com/wearlab/watchclub/internal/app/system/auth"
	"github.com/wearlab/watchclub/internal/app/system/authz"
	"github.com/wearlab/watchclub/internal/app/system/categories"
	"github.com/wearlab/watchclub/internal/app/system/htmlsanitize"
	"github.com/wearlab/watchclub/internal/app/system/normalize"
	"github.com/wearlab/watchclub/internal/app/system/timeouts"
	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the training-partner board.
type Handler struct {
	Store *friendpoststore.Store
	Log   *zap.Logger
}

func NewHandler(store *friendpoststore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /friends.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Store.List(ctx)
	if err != nil {
		shared.Internal(w, h.Log, "listing friend posts failed", err)
		return
	}
	if posts == nil {
		posts = []models.FriendPost{}
	}
	shared.JSON(w, http.StatusOK, posts)
}

// HandleCreate handles POST /friends (signed-in users).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req struct {
		Name         string   `json:"name"`
		Introduction string   `json:"introduction"`
		ProfileURL   string   `json:"profile_url"`
		Location     string   `json:"location"`
		Activities   []string `json:"activities"`
		ExpiresOn    string   `json:"expires_on"` // YYYY-MM-DD
	}
	if !shared.Decode(w, r, &req) {
		return
	}
	if normalize.Name(req.Name) == "" || normalize.Name(req.Introduction) == "" {
		shared.Error(w, http.StatusBadRequest, "name and introduction are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.Create(ctx, models.FriendPost{
		Name:         htmlsanitize.Text(req.Name),
		Introduction: htmlsanitize.Sanitize(req.Introduction),
		ProfileURL:   normalize.QueryParam(req.ProfileURL),
		Location:     htmlsanitize.Text(req.Location),
		Activities:   categories.FilterActivities(req.Activities),
		Author:       u.ID,
		AuthorName:   u.Name,
		AuthorPhoto:  u.PhotoURL,
	}, req.ExpiresOn)
	if errors.Is(err, friendpoststore.ErrBadExpiry) {
		shared.Error(w, http.StatusBadRequest, "invalid expiration date")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "creating friend post failed", err)
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// HandleUpdate handles PUT /friends/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Name         *string  `json:"name"`
		Introduction *string  `json:"introduction"`
		ProfileURL   *string  `json:"profile_url"`
		Location     *string  `json:"location"`
		Activities   []string `json:"activities"`
		ExpiresOn    *string  `json:"expires_on"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}

	upd := friendpoststore.Update{ProfileURL: req.ProfileURL, ExpiresOn: req.ExpiresOn}
	if req.Name != nil {
		n := htmlsanitize.Text(*req.Name)
		upd.Name = &n
	}
	if req.Introduction != nil {
		intro := htmlsanitize.Sanitize(*req.Introduction)
		upd.Introduction = &intro
	}
	if req.Location != nil {
		loc := htmlsanitize.Text(*req.Location)
		upd.Location = &loc
	}
	if req.Activities != nil {
		upd.Activities = categories.FilterActivities(req.Activities)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Store.Update(ctx, id, upd, uid, authz.IsAdmin(r)); {
	case errors.Is(err, friendpoststore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "post not found")
	case errors.Is(err, friendpoststore.ErrNotAllowed):
		shared.Error(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, friendpoststore.ErrBadExpiry):
		shared.Error(w, http.StatusBadRequest, "invalid expiration date")
	case err != nil:
		shared.Internal(w, h.Log, "updating friend post failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// HandleDelete handles DELETE /friends/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Store.SoftDelete(ctx, id, uid, authz.IsAdmin(r)); {
	case errors.Is(err, friendpoststore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "post not found")
	case errors.Is(err, friendpoststore.ErrNotAllowed):
		shared.Error(w, http.StatusForbidden, "not allowed")
	case err != nil:
		shared.Internal(w, h.Log, "deleting friend post failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// HandleLike handles POST /friends/{id}/like.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	liked, err := h.Store.ToggleLike(ctx, id, uid)
	if errors.Is(err, friendpoststore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "toggling like failed", err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"liked": liked})
}
