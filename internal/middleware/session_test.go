package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/NoteShare/internal/models"
)

// dummyHandler records whether it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

type fakeSessions struct {
	token string
	user  *models.PublicUser
}

func (f fakeSessions) Session() (string, models.PublicUser, bool) {
	if f.user == nil || f.token == "" {
		return "", models.PublicUser{}, false
	}
	return f.token, *f.user, true
}

func TestRequireSession(t *testing.T) {
	ana := &models.PublicUser{ID: "u1", Name: "Ana", Email: "ana@x.com"}

	tests := []struct {
		name     string
		sessions fakeSessions
		header   string
		wantCode int
	}{
		{"no header", fakeSessions{token: "t1", user: ana}, "", http.StatusUnauthorized},
		{"wrong scheme", fakeSessions{token: "t1", user: ana}, "Basic t1", http.StatusUnauthorized},
		{"wrong token", fakeSessions{token: "t1", user: ana}, "Bearer t2", http.StatusUnauthorized},
		{"nobody logged in", fakeSessions{}, "Bearer ", http.StatusUnauthorized},
		{"stale token after logout", fakeSessions{}, "Bearer t1", http.StatusUnauthorized},
		{"valid", fakeSessions{token: "t1", user: ana}, "Bearer t1", http.StatusOK},
		{"lowercase scheme", fakeSessions{token: "t1", user: ana}, "bearer t1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			h := RequireSession(tt.sessions)(dummy)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode == http.StatusUnauthorized {
				if dummy.called {
					t.Error("did not expect next handler to be called")
				}
				if loc := rec.Header().Get("Location"); loc != LoginPath {
					t.Errorf("expected Location %q, got %q", LoginPath, loc)
				}
				return
			}

			if !dummy.called {
				t.Fatal("expected next handler to be called")
			}
			u, ok := UserFromContext(dummy.ctx)
			if !ok || u != *ana {
				t.Errorf("expected user %+v in context, got %+v (ok=%v)", *ana, u, ok)
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("expected no user in empty context")
	}
}
