package handler

import (
	"net/http"

	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

type AuthOTPHandler struct {
	register *usecase.RegisterUsecase
}

func NewAuthOTPHandler(register *usecase.RegisterUsecase) *AuthOTPHandler {
	return &AuthOTPHandler{register: register}
}

// IssueOTP handles POST /auth/otp/issue.
func (h *AuthOTPHandler) IssueOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.register.IssueSignupOTP(r.Context(), req.Email, req.Password); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "verification code sent")
}

// VerifyOTP handles POST /auth/otp/verify.
func (h *AuthOTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		OTPInput string `json:"otp_input"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.register.VerifySignupOTP(r.Context(), req.Email, req.OTPInput); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "email verified, you can log in now")
}
