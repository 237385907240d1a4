package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/ports"
)

type UserHandler struct {
	service ports.CredentialService
}

func NewUserHandler(service ports.CredentialService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// Register godoc
// @Summary      Registers a new user
// @Description  Creates a user account and returns a bearer token plus the public user view.
// @Tags         users
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /user/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid request body")
		return
	}

	token, user, err := h.service.Register(r.Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, kindBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, kindConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid request body")
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, kindUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, kindUnauthorized, "missing user context")
		return
	}

	user, err := h.service.Me(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, kindNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
