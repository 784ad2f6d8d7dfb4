package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	userID uuid.UUID
	role   string
}

func (c *fakeClaims) GetUserID() uuid.UUID { return c.userID }
func (c *fakeClaims) GetRole() string      { return c.role }

type fakeValidator struct {
	claims *fakeClaims
	err    error
}

func (v *fakeValidator) ValidateToken(tokenString string) (ClaimsGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newAuthedRequest(t *testing.T, header string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{claims: &fakeClaims{userID: userID, role: "student"}}

	var gotUserID uuid.UUID
	var gotRole string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotUserID, err = GetUserID(r)
		require.NoError(t, err)
		gotRole, err = GetRole(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, "Bearer some-token"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "student", gotRole)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New(), role: "student"}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New(), role: "student"}}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"some-token", "Basic abc", "Bearer"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newAuthedRequest(t, header))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: fmt.Errorf("token expired")}
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, "Bearer bad-token"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodPost, "/questions", nil)
	ctx := context.WithValue(r.Context(), userIDKey, uuid.New())
	ctx = context.WithValue(ctx, roleKey, "admin")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodPost, "/questions", nil)
	ctx := context.WithValue(r.Context(), roleKey, "student")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MissingRole(t *testing.T) {
	handler := RequireRole("admin", "advisor")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserID_Missing(t *testing.T) {
	_, err := GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
