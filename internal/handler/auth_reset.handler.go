package handler

import (
	"net/http"

	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

type AuthResetHandler struct {
	reset *usecase.ResetUsecase
}

func NewAuthResetHandler(reset *usecase.ResetUsecase) *AuthResetHandler {
	return &AuthResetHandler{reset: reset}
}

// RequestReset handles POST /auth/reset/request. The response is the same for
// known and unknown emails; only validation and delivery faults differ.
func (h *AuthResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.reset.RequestReset(r.Context(), req.Email); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "if the account exists, a reset link has been sent")
}

// ValidateReset handles GET /auth/reset/validate?token=...
func (h *AuthResetHandler) ValidateReset(w http.ResponseWriter, r *http.Request) {
	email, err := h.reset.ValidateResetToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"email": email})
}

// CompleteReset handles POST /auth/reset/complete.
func (h *AuthResetHandler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.reset.CompleteReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "password updated, log in with your new password")
}
