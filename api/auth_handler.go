package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokaque/proyecto-final-backend/database"
	"github.com/pokaque/proyecto-final-backend/errs"
	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.Auth
	userRepo  *database.UserRepo
}

func newAuthHandler(auth *services.Auth, userRepo *database.UserRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
		userRepo:  userRepo,
	}
}

type registerRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"nombre"`
	Role     models.Role `json:"rol"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// register creates a password account and signs it in
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.auth.IssueToken(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, sessionResponse{Token: token, User: user})
	}
}

// login exchanges password credentials for a session token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, sessionResponse{Token: token, User: user})
	}
}

// googleLogin redirects the browser to the Google consent screen
func (h authHandler) googleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		http.Redirect(w, r, h.auth.GoogleLoginURL(state), http.StatusTemporaryRedirect)
	}
}

// googleCallback finishes federated sign-in
func (h authHandler) googleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing authorization code"))
			return
		}

		user, token, err := h.auth.GoogleCallback(r.Context(), code)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, sessionResponse{Token: token, User: user})
	}
}

type completeRegistrationRequest struct {
	Name string      `json:"nombre"`
	Role models.Role `json:"rol"`
}

// completeRegistration sets name and role on a fresh federated account
func (h authHandler) completeRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		var req completeRegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, token, err := h.auth.CompleteRegistration(r.Context(), actor.ID, req.Name, req.Role)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, sessionResponse{Token: token, User: user})
	}
}

// me returns the live user record behind the session
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := ctxGetActor(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewAuthError("not signed in"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), actor.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
