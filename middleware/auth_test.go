package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"lecture-backend/model"
	"lecture-backend/storage"
	"lecture-backend/token"
)

type fakeUsers map[primitive.ObjectID]model.PublicUser

func (f fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (model.PublicUser, error) {
	user, ok := f[id]
	if !ok {
		return model.PublicUser{}, storage.ErrNotFound
	}
	return user, nil
}

func gateFor(t *testing.T, tokens *token.Service, users fakeUsers) (http.Handler, *Identity) {
	t.Helper()
	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(tokens, users, zap.NewNop().Sugar())(next), &seen
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens := token.NewService("secret", time.Minute)
	handler, _ := gateFor(t, tokens, fakeUsers{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lectures", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tokens := token.NewService("secret", time.Minute)
	handler, _ := gateFor(t, tokens, fakeUsers{})

	req := httptest.NewRequest(http.MethodGet, "/lectures", nil)
	req.Header.Set("Authorization", "garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := token.NewService("secret", -time.Minute)
	id := primitive.NewObjectID()
	raw, err := expired.Issue(id, model.RoleTeacher)
	require.NoError(t, err)

	handler, _ := gateFor(t, token.NewService("secret", time.Minute), fakeUsers{
		id: {Id: id, Role: model.RoleTeacher},
	})

	req := httptest.NewRequest(http.MethodGet, "/lectures", nil)
	req.Header.Set("Authorization", raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	tokens := token.NewService("secret", time.Minute)
	raw, err := tokens.Issue(primitive.NewObjectID(), model.RoleTeacher)
	require.NoError(t, err)

	handler, _ := gateFor(t, tokens, fakeUsers{})

	req := httptest.NewRequest(http.MethodGet, "/lectures", nil)
	req.Header.Set("Authorization", raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateResolvesIdentity(t *testing.T) {
	tokens := token.NewService("secret", time.Minute)
	id := primitive.NewObjectID()
	raw, err := tokens.Issue(id, model.RoleStudent)
	require.NoError(t, err)

	handler, seen := gateFor(t, tokens, fakeUsers{
		id: {Id: id, Name: "S", Email: "s@example.com", Role: model.RoleStudent},
	})

	// the header carries the bare token, no Bearer prefix
	req := httptest.NewRequest(http.MethodGet, "/lectures", nil)
	req.Header.Set("Authorization", raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, seen.ID)
	require.Equal(t, model.RoleStudent, seen.Role)
}

func TestAuthenticateRejectsBearerPrefix(t *testing.T) {
	tokens := token.NewService("secret", time.Minute)
	id := primitive.NewObjectID()
	raw, err := tokens.Issue(id, model.RoleStudent)
	require.NoError(t, err)

	handler, _ := gateFor(t, tokens, fakeUsers{
		id: {Id: id, Role: model.RoleStudent},
	})

	req := httptest.NewRequest(http.MethodGet, "/lectures", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
