package middleware

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"lecture-backend/model"
	"lecture-backend/storage"
	"lecture-backend/token"
	"lecture-backend/util"
)

// Identity is the resolved caller attached to the request context by
// Authenticate.
type Identity struct {
	ID   primitive.ObjectID
	Role model.Role
}

type identityKey struct{}

// UserFinder is the slice of the credential store the gate needs.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (model.PublicUser, error)
}

// Authenticate verifies the caller's token and resolves it to a stored
// user. The Authorization header carries the bare token: the client sends
// no "Bearer " prefix, and none is stripped here.
func Authenticate(tokens *token.Service, users UserFinder, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				util.WriteErrorResponse(w, http.StatusUnauthorized, "Access denied: No token provided")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid token")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if err == storage.ErrNotFound {
				util.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			if err != nil {
				log.Errorw("resolve token user", "user_id", claims.UserID, "err", err)
				util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{ID: user.Id, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
