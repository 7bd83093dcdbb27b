// internal/app/features/friends/routes.go
package friends

import (
	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Post("/{id}/like", h.HandleLike)
	})
	return r
}
