package handler

import (
	"net/http"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/middleware"
	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

type AuthHandler struct {
	login    *usecase.LoginUsecase
	sessions *usecase.SessionUsecase
	users    *usecase.UserUsecase
}

func NewAuthHandler(login *usecase.LoginUsecase, sessions *usecase.SessionUsecase, users *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{login: login, sessions: sessions, users: users}
}

type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login. The body carries either email/password or a
// Google id_token; both paths converge on session issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
		IDToken  string `json:"id_token,omitempty"`
		DeviceID string `json:"device_id,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		account *domain.User
		err     error
	)
	if req.IDToken != "" {
		account, err = h.login.AuthenticateGoogle(r.Context(), req.IDToken)
	} else {
		account, err = h.login.AuthenticatePassword(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	session, role, err := h.sessions.Issue(r.Context(), account, req.DeviceID, clientIP(r), r.UserAgent())
	if err != nil {
		writeErr(w, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Token:     session.AuthToken,
		Email:     account.Email,
		Role:      role,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles DELETE /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), middleware.Token(r.Context())); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "logged out")
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

// Sessions handles GET /auth/sessions: the caller's active sessions.
func (h *AuthHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}
	for _, s := range sessions {
		s.AuthToken = "" // never echo tokens back
	}
	response.JSON(w, http.StatusOK, sessions)
}
