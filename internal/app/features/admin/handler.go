// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/features/shared"
	faqstore "github.com/wearlab/watchclub/internal/app/store/faqs"
	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	qnastore "github.com/wearlab/watchclub/internal/app/store/qna"
	userstore "github.com/wearlab/watchclub/internal/app/store/users"
	"github.com/wearlab/watchclub/internal/app/system/authz"
	"github.com/wearlab/watchclub/internal/app/system/timeouts"
	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin panel API. Every route is behind
// auth.RequireAdmin (see routes.go).
type Handler struct {
	Users       *userstore.Store
	QnA         *qnastore.Store
	FAQs        *faqstore.Store
	FriendPosts *friendpoststore.Store
	Log         *zap.Logger
}

func NewHandler(users *userstore.Store, qna *qnastore.Store, faqs *faqstore.Store, posts *friendpoststore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       users,
		QnA:         qna,
		FAQs:        faqs,
		FriendPosts: posts,
		Log:         logger,
	}
}

// ServeUsers handles GET /admin/users.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profiles, err := h.Users.ListAll(ctx)
	if err != nil {
		shared.Internal(w, h.Log, "listing users failed", err)
		return
	}
	if profiles == nil {
		profiles = []models.UserProfile{}
	}
	shared.JSON(w, http.StatusOK, profiles)
}

// HandleSetAdmin handles PUT /admin/users/{uid}/admin.
func (h *Handler) HandleSetAdmin(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}

	// An admin revoking their own flag would lock themselves out of the
	// panel mid-session; make them ask someone else.
	if actor, _, _ := authz.UserCtx(r); actor == uid && !req.IsAdmin {
		shared.Error(w, http.StatusBadRequest, "cannot revoke your own admin flag")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Users.SetAdminStatus(ctx, uid, req.IsAdmin); {
	case errors.Is(err, userstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "user not found")
	case err != nil:
		shared.Internal(w, h.Log, "setting admin flag failed", err)
	default:
		h.Log.Info("admin flag changed",
			zap.String("target", uid),
			zap.Bool("is_admin", req.IsAdmin))
		shared.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

// HandleConvertQA handles POST /admin/qna/{id}/convert. The optional
// answer_id picks which answer becomes the FAQ text; without one the
// question body is used.
func (h *Handler) HandleConvertQA(w http.ResponseWriter, r *http.Request) {
	actor, _, _ := authz.UserCtx(r)

	questionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		AnswerID string `json:"answer_id"`
	}
	if !shared.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.QnA.GetQuestion(ctx, questionID)
	if errors.Is(err, qnastore.ErrNotFound) {
		shared.Error(w, http.StatusNotFound, "question not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "loading question failed", err)
		return
	}

	var chosen *models.Answer
	if req.AnswerID != "" {
		answerID, err := primitive.ObjectIDFromHex(req.AnswerID)
		if err != nil {
			shared.Error(w, http.StatusBadRequest, "invalid answer_id")
			return
		}
		for i := range q.Answers {
			if q.Answers[i].DocID == answerID {
				chosen = &q.Answers[i]
				break
			}
		}
		if chosen == nil {
			shared.Error(w, http.StatusNotFound, "answer not found on this question")
			return
		}
	}

	id, err := h.FAQs.ConvertFromQA(ctx, *q, chosen, actor)
	if err != nil {
		shared.Internal(w, h.Log, "converting question to faq failed", err)
		return
	}

	h.Log.Info("question converted to faq",
		zap.String("question_id", questionID.Hex()),
		zap.String("faq_id", id.Hex()))
	shared.JSON(w, http.StatusCreated, map[string]string{"faq_id": id.Hex()})
}

// HandleCleanup handles POST /admin/cleanup: an on-demand run of the
// expired-friend-post sweep.
func (h *Handler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	count, err := h.FriendPosts.CleanupExpired(ctx)
	if err != nil {
		shared.Internal(w, h.Log, "cleanup failed", err)
		return
	}
	shared.JSON(w, http.StatusOK, map[string]int64{"swept": count})
}
