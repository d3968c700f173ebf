package handler

import (
	"net/http"
	"time"

	"finance-tracker-go/internal/domain/user"
	"finance-tracker-go/internal/transport/httpserver/middleware"
	"finance-tracker-go/internal/validation"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeValidated(w, r, validation.SchemaRegister, &req) {
		return
	}

	session, err := h.Users.Register(r.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.fail(w, r, "auth.register: register failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeValidated(w, r, validation.SchemaLogin, &req) {
		return
	}

	session, err := h.Users.Login(r.Context(), user.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(w, r, "auth.login: login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	found, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "auth.me: get user failed", err, "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*found))
}

func toSessionResponse(session *user.Session) sessionResponse {
	return sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC(),
		User:      toUserResponse(session.User),
	}
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
