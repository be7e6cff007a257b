package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
)

func newTestAuth(t *testing.T) (*Auth, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	return NewAuth(users, "test-secret", "", "", ""), users
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newTestAuth(t)

	user, err := auth.Register(context.Background(), "docente@colegio.edu", "s3cret", "Marta Gómez", models.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Equal(t, models.ProviderPassword, user.Provider)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, token, err := auth.Login(context.Background(), "docente@colegio.edu", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Register(context.Background(), "docente@colegio.edu", "s3cret", "Marta", models.RoleTeacher)
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), "docente@colegio.edu", "otra", "Marta", models.RoleTeacher)
	assert.True(t, errs.IsConflict(err))
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "", "pw", "Marta", models.RoleTeacher)
	assert.True(t, errs.IsValidation(err))

	_, err = auth.Register(ctx, "a@b.edu", "", "Marta", models.RoleTeacher)
	assert.True(t, errs.IsValidation(err))

	_, err = auth.Register(ctx, "a@b.edu", "pw", "", models.RoleTeacher)
	assert.True(t, errs.IsValidation(err))

	_, err = auth.Register(ctx, "a@b.edu", "pw", "Marta", models.Role("rector"))
	assert.True(t, errs.IsValidation(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.Register(context.Background(), "docente@colegio.edu", "s3cret", "Marta", models.RoleTeacher)
	require.NoError(t, err)

	// unknown email and wrong password look the same to the caller
	_, _, err = auth.Login(context.Background(), "nadie@colegio.edu", "s3cret")
	assert.True(t, errs.IsAuth(err))

	_, _, err = auth.Login(context.Background(), "docente@colegio.edu", "wrong")
	assert.True(t, errs.IsAuth(err))
}

func TestTokenRoundTrip(t *testing.T) {
	auth, _ := newTestAuth(t)

	user := &models.User{
		ID:    uuid.New(),
		Email: "coord@colegio.edu",
		Name:  "Luis Páez",
		Role:  models.RoleCoordinator,
	}
	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, models.RoleCoordinator, claims.Role)
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	auth, _ := newTestAuth(t)
	otherAuth := NewAuth(newFakeUserStore(), "another-secret", "", "", "")

	user := &models.User{ID: uuid.New(), Email: "a@b.edu", Role: models.RoleStudent}
	token, err := otherAuth.IssueToken(user)
	require.NoError(t, err)

	_, err = auth.VerifyToken(token)
	assert.True(t, errs.IsAuth(err))

	_, err = auth.VerifyToken("not-a-token")
	assert.True(t, errs.IsAuth(err))
}

func TestCompleteRegistrationOnce(t *testing.T) {
	auth, users := newTestAuth(t)

	// a federated account lands without a role
	pending := &models.User{
		ID:       uuid.New(),
		Email:    "nuevo@gmail.com",
		Name:     "Nuevo",
		Provider: models.ProviderGoogle,
	}
	require.NoError(t, users.Add(context.Background(), pending))

	completed, token, err := auth.CompleteRegistration(context.Background(), pending.ID, "Nuevo Docente", models.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, completed.Role)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, claims.Role)

	_, _, err = auth.CompleteRegistration(context.Background(), pending.ID, "Otro", models.RoleStudent)
	assert.True(t, errs.IsConflict(err))
}
