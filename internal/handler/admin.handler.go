package handler

import (
	"net/http"
	"strconv"

	"github.com/tanmay-mevada/DStrA-sub001/internal/middleware"
	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	users *usecase.UserUsecase
}

func NewAdminHandler(users *usecase.UserUsecase) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /admin/users?limit=&offset=
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, users)
}

// ChangeRole handles PATCH /admin/users/{id}/role.
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := chi.URLParam(r, "id")
	if err := h.users.ChangeRole(r.Context(), middleware.UserID(r.Context()), userID, req.Role); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "role updated")
}
