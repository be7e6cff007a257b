package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

func issueTestToken(t *testing.T, auth *services.Auth, role models.Role) string {
	t.Helper()
	token, err := auth.IssueToken(&models.User{
		ID:    uuid.New(),
		Email: "user@colegio.edu",
		Name:  "Usuario",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	auth := services.NewAuth(nil, "test-secret", "", "", "")
	middleware := newAuthMiddleware(auth)

	handler := middleware.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatePassesActorDownstream(t *testing.T) {
	auth := services.NewAuth(nil, "test-secret", "", "", "")
	middleware := newAuthMiddleware(auth)
	token := issueTestToken(t, auth, models.RoleTeacher)

	handler := middleware.authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		require.NoError(t, err)
		assert.Equal(t, models.RoleTeacher, actor.Role)
		assert.Equal(t, "user@colegio.edu", actor.Email)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	auth := services.NewAuth(nil, "test-secret", "", "", "")
	middleware := newAuthMiddleware(auth)

	guarded := middleware.authenticate(
		middleware.requireRole(models.RoleCoordinator)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})))

	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleCoordinator, http.StatusNoContent},
		{models.RoleTeacher, http.StatusForbidden},
		{models.RoleStudent, http.StatusForbidden},
		// federated accounts before completing registration
		{models.Role(""), http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/project/x/status", nil)
		req.Header.Set("Authorization", "Bearer "+issueTestToken(t, auth, tc.role))
		guarded.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "role %q", tc.role)
	}
}
