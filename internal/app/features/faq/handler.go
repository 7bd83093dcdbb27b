// internal/app/features/faq/handler.go
package faq

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/features/shared"
	faqstore "github.com/wearlab/watchclub/internal/app/store/faqs"
	"github.com/wearlab/watchclub/internal/app/system/authz"
	"github.com/wearlab/watchclub/internal/app/system/categories"
	"github.com/wearlab/watchclub/internal/app/system/htmlsanitize"
	"github.com/wearlab/watchclub/internal/app/system/normalize"
	"github.com/wearlab/watchclub/internal/app/system/timeouts"
	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the FAQ board.
type Handler struct {
	Store *faqstore.Store
	Log   *zap.Logger
}

func NewHandler(store *faqstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /faqs?category=…
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := normalize.Category(r.URL.Query().Get("category"))

	var (
		faqs []models.FAQ
		err  error
	)
	if category == "" {
		faqs, err = h.Store.List(ctx)
	} else {
		if !categories.ValidFAQ(category) {
			shared.Error(w, http.StatusBadRequest, "unknown category")
			return
		}
		faqs, err = h.Store.ListByCategory(ctx, category)
	}
	if err != nil {
		shared.Internal(w, h.Log, "listing faqs failed", err)
		return
	}
	if faqs == nil {
		faqs = []models.FAQ{}
	}
	shared.JSON(w, http.StatusOK, faqs)
}

type faqRequest struct {
	DisplayID int      `json:"id"`
	Category  string   `json:"category"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Tags      []string `json:"tags"`
}

// HandleCreate handles POST /faqs (admin only, enforced by routing).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	var req faqRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	req.Category = normalize.Category(req.Category)
	if !categories.ValidFAQ(req.Category) {
		shared.Error(w, http.StatusBadRequest, "unknown category")
		return
	}
	if req.Question == "" || req.Answer == "" {
		shared.Error(w, http.StatusBadRequest, "question and answer are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.Create(ctx, models.FAQ{
		DisplayID: req.DisplayID,
		Category:  req.Category,
		Question:  htmlsanitize.Text(req.Question),
		Answer:    htmlsanitize.Sanitize(req.Answer),
		Tags:      req.Tags,
	}, uid)
	if err != nil {
		shared.Internal(w, h.Log, "creating faq failed", err)
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// HandleUpdate handles PUT /faqs/{id} (admin only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		DisplayID *int     `json:"id"`
		Category  *string  `json:"category"`
		Question  *string  `json:"question"`
		Answer    *string  `json:"answer"`
		Tags      []string `json:"tags"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}

	upd := faqstore.Update{DisplayID: req.DisplayID, Tags: req.Tags}
	if req.Category != nil {
		c := normalize.Category(*req.Category)
		if !categories.ValidFAQ(c) {
			shared.Error(w, http.StatusBadRequest, "unknown category")
			return
		}
		upd.Category = &c
	}
	if req.Question != nil {
		q := htmlsanitize.Text(*req.Question)
		upd.Question = &q
	}
	if req.Answer != nil {
		a := htmlsanitize.Sanitize(*req.Answer)
		upd.Answer = &a
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Store.Update(ctx, id, upd, uid); {
	case errors.Is(err, faqstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "faq not found")
	case err != nil:
		shared.Internal(w, h.Log, "updating faq failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// HandleDelete handles DELETE /faqs/{id} (admin only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Store.SoftDelete(ctx, id); {
	case errors.Is(err, faqstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "faq not found")
	case err != nil:
		shared.Internal(w, h.Log, "deleting faq failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
