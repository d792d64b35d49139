package handler

import (
	"net/http"

	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

type ContactHandler struct {
	contact *usecase.ContactUsecase
}

func NewContactHandler(contact *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Send handles POST /contact.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.contact.Send(r.Context(), req.Name, req.Email, req.Message); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "message sent, we will get back to you")
}
