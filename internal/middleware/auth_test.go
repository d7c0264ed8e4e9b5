package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campdir/campdir-api/internal/crypto"
	"github.com/campdir/campdir-api/internal/model"
)

type staticUserLoader struct {
	user *model.User
}

func (l staticUserLoader) GetByID(_ context.Context, id string) (*model.User, error) {
	if l.user != nil && l.user.ID == id {
		return l.user, nil
	}
	return nil, errors.New("user not found")
}

func authTestHandler(t *testing.T, wantUser *model.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Error("user missing from context inside protected handler")
		} else if user.ID != wantUser.ID {
			t.Errorf("context user = %q, want %q", user.ID, wantUser.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthBearerHeader(t *testing.T) {
	user := &model.User{ID: "11111111-1111-1111-1111-111111111111", Role: model.RoleUser}
	token, err := crypto.GenerateToken(user.ID, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := RequireAuth("secret", staticUserLoader{user})(authTestHandler(t, user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthCookie(t *testing.T) {
	user := &model.User{ID: "11111111-1111-1111-1111-111111111111", Role: model.RoleUser}
	token, err := crypto.GenerateToken(user.ID, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := RequireAuth("secret", staticUserLoader{user})(authTestHandler(t, user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthNonBearerHeaderFallsBackToCookie(t *testing.T) {
	user := &model.User{ID: "11111111-1111-1111-1111-111111111111", Role: model.RoleUser}
	token, err := crypto.GenerateToken(user.ID, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := RequireAuth("secret", staticUserLoader{user})(authTestHandler(t, user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	handler := RequireAuth("secret", staticUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	user := &model.User{ID: "11111111-1111-1111-1111-111111111111"}
	handler := RequireAuth("secret", staticUserLoader{user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthWrongSecret(t *testing.T) {
	user := &model.User{ID: "11111111-1111-1111-1111-111111111111"}
	token, err := crypto.GenerateToken(user.ID, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	handler := RequireAuth("secret", staticUserLoader{user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a forged token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	admin := &model.User{ID: "1", Role: model.RoleAdmin}
	plain := &model.User{ID: "2", Role: model.RoleUser}

	handler := RequireRoles(model.RolePublisher, model.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for _, tc := range []struct {
		user *model.User
		want int
	}{
		{admin, http.StatusOK},
		{plain, http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithUser(req.Context(), tc.user))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.user.Role, rec.Code, tc.want)
		}
	}
}
