package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"lecture-backend/middleware"
	"lecture-backend/model"
	"lecture-backend/storage"
	"lecture-backend/token"
	"lecture-backend/util"
)

// UserStore is what the auth handlers need from the credential store.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, role model.Role) (primitive.ObjectID, error)
	Authenticate(ctx context.Context, email, password string) (model.PublicUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.PublicUser, error)
}

type AuthController struct {
	users  UserStore
	tokens *token.Service
	log    *zap.SugaredLogger
}

func NewAuthController(users UserStore, tokens *token.Service, log *zap.SugaredLogger) *AuthController {
	return &AuthController{users: users, tokens: tokens, log: log}
}

func (ac *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if !req.Role.Valid() {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid role")
		return
	}

	_, err := ac.users.Create(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err == storage.ErrDuplicateEmail {
		util.WriteErrorResponse(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		ac.log.Errorw("register user", "email", req.Email, "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

func (ac *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := ac.users.Authenticate(r.Context(), req.Email, req.Password)
	if err == storage.ErrInvalidCredentials {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		ac.log.Errorw("login", "email", req.Email, "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	signed, err := ac.tokens.Issue(user.Id, user.Role)
	if err != nil {
		ac.log.Errorw("issue token", "user_id", user.Id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusOK, struct {
		Token string           `json:"token"`
		User  model.PublicUser `json:"user"`
	}{Token: signed, User: user})
}

func (ac *AuthController) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		util.WriteErrorResponse(w, http.StatusUnauthorized, "Access denied: No token provided")
		return
	}

	user, err := ac.users.FindByID(r.Context(), identity.ID)
	if err == storage.ErrNotFound {
		util.WriteErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		ac.log.Errorw("load current user", "user_id", identity.ID.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusOK, user)
}
