// internal/app/features/qna/handler.go
package qna

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/features/shared"
	qnastore "github.com/wearlab/watchclub/internal/app/store/qna"
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

// Handler serves the community Q&A board.
type Handler struct {
	Store *qnastore.Store
	Log   *zap.Logger
}

func NewHandler(store *qnastore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// ServeList handles GET /qna?category=…&limit=…
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := normalize.Category(r.URL.Query().Get("category"))
	if category != "" && !categories.ValidQnA(category) {
		shared.Error(w, http.StatusBadRequest, "unknown category")
		return
	}

	limit := 0
	if s := normalize.QueryParam(r.URL.Query().Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			shared.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	questions, err := h.Store.ListQuestions(ctx, category, limit)
	if err != nil {
		shared.Internal(w, h.Log, "listing questions failed", err)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	shared.JSON(w, http.StatusOK, questions)
}

// ServeQuestion handles GET /qna/{id}
func (h *Handler) ServeQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Store.GetQuestion(ctx, id)
	if errors.Is(err, qnastore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "question not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "loading question failed", err)
		return
	}
	shared.JSON(w, http.StatusOK, q)
}

// HandleCreateQuestion handles POST /qna (signed-in users).
func (h *Handler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req struct {
		Title    string `json:"title"`
		Question string `json:"question"`
		Category string `json:"category"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}
	req.Category = normalize.Category(req.Category)
	if !categories.ValidQnA(req.Category) {
		shared.Error(w, http.StatusBadRequest, "unknown category")
		return
	}
	if normalize.Name(req.Title) == "" || normalize.Name(req.Question) == "" {
		shared.Error(w, http.StatusBadRequest, "title and question are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.CreateQuestion(ctx, models.Question{
		Title:       htmlsanitize.Text(req.Title),
		Question:    htmlsanitize.Sanitize(req.Question),
		Category:    req.Category,
		Author:      u.ID,
		AuthorName:  u.Name,
		AuthorPhoto: u.PhotoURL,
	})
	if err != nil {
		shared.Internal(w, h.Log, "creating question failed", err)
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// HandleCreateAnswer handles POST /qna/{id}/answers (signed-in users).
func (h *Handler) HandleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	questionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}
	if normalize.Name(req.Content) == "" {
		shared.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Store.CreateAnswer(ctx, models.Answer{
		QuestionID:  questionID,
		Content:     htmlsanitize.Sanitize(req.Content),
		Author:      u.ID,
		AuthorName:  u.Name,
		AuthorPhoto: u.PhotoURL,
	})
	if errors.Is(err, qnastore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "question not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "creating answer failed", err)
		return
	}
	shared.JSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// HandleLikeQuestion handles POST /qna/{id}/like.
func (h *Handler) HandleLikeQuestion(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.Store.ToggleLikeQuestion)
}

// HandleLikeAnswer handles POST /qna/answers/{id}/like.
func (h *Handler) HandleLikeAnswer(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.Store.ToggleLikeAnswer)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request, toggle func(context.Context, primitive.ObjectID, string) (bool, error)) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	liked, err := toggle(ctx, id, uid)
	if errors.Is(err, qnastore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "toggling like failed", err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// HandleDeleteQuestion handles DELETE /qna/{id}.
func (h *Handler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.Store.DeleteQuestion, "question")
}

// HandleDeleteAnswer handles DELETE /qna/answers/{id}.
func (h *Handler) HandleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.Store.DeleteAnswer, "answer")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, del func(context.Context, primitive.ObjectID, string, bool) error, what string) {
	uid, _, _ := authz.UserCtx(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := del(ctx, id, uid, authz.IsAdmin(r)); {
	case errors.Is(err, qnastore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, qnastore.ErrNotAllowed):
		shared.Error(w, http.StatusForbidden, "not allowed")
	case err != nil:
		shared.Internal(w, h.Log, "deleting "+what+" failed", err)
	default:
		shared.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
