package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/database"
	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	auth      *services.Auth
}

func newUserHandler(userRepo *database.UserRepo, auth *services.Auth) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		auth:      auth,
	}
}

// UserCollection lists every registered account
type UserCollection struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total"`
}

// listUsers retrieves all accounts for coordinator administration
func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, UserCollection{Users: users, Total: len(users)})
	}
}

type createUserRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"nombre"`
	Role     models.Role `json:"rol"`
}

// createUser registers a new account on behalf of a coordinator
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, user)
	}
}

type updateUserRequest struct {
	Name string      `json:"nombre"`
	Role models.Role `json:"rol"`
}

// updateUser changes an account's display name and role. A role change
// takes effect the next time the user signs in and gets a fresh token.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParamUUID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if !req.Role.Valid() {
			h.responder.WriteError(w, errs.NewValidationError("rol", "must be estudiante, docente or coordinador"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("nombre", "must not be empty"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user.Name = req.Name
		user.Role = req.Role
		if err := h.userRepo.Update(r.Context(), user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// deleteUser removes an account. Projects it owned keep their owner ID.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParamUUID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}
		if actor.ID == userID {
			h.responder.WriteError(w, errs.NewForbiddenError("cannot delete your own account"))
			return
		}

		if err := h.userRepo.Delete(r.Context(), userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "user deleted successfully",
		})
	}
}
