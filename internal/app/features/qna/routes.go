// internal/app/features/qna/routes.go
package qna

import (
	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeQuestion)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/", h.HandleCreateQuestion)
		r.Post("/{id}/answers", h.HandleCreateAnswer)
		r.Post("/{id}/like", h.HandleLikeQuestion)
		r.Post("/answers/{id}/like", h.HandleLikeAnswer)
		r.Delete("/{id}", h.HandleDeleteQuestion)
		r.Delete("/answers/{id}", h.HandleDeleteAnswer)
	})
	return r
}
