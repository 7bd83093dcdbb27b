// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/wearlab/watchclub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireAdmin)
	r.Get("/users", h.ServeUsers)
	r.Put("/users/{uid}/admin", h.HandleSetAdmin)
	r.Post("/qna/{id}/convert", h.HandleConvertQA)
	r.Post("/cleanup", h.HandleCleanup)
	return r
}
