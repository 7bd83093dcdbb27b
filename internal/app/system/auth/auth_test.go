package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wearlab/watchclub/internal/app/system/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/qna", nil)
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_WithUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/qna", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "uid-1", Name: "Tester"})
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "uid-1", Name: "Tester"})
	rec := httptest.NewRecorder()

	auth.RequireAdmin(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "uid-1", Name: "Tester", IsAdmin: true})
	rec := httptest.NewRecorder()

	auth.RequireAdmin(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdmin_NotSignedIn(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()

	auth.RequireAdmin(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user in fresh request context")
	}
}
