package handler

import (
	"net/http"
	"strings"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/service/judge"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

const maxCodeBytes = 64 << 10

type ExecuteHandler struct {
	judge *judge.Client
}

func NewExecuteHandler(j *judge.Client) *ExecuteHandler {
	return &ExecuteHandler{judge: j}
}

// Execute handles POST /execute: proxies the snippet to the judge and returns
// the normalized verdict.
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req domain.ExecutionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	if strings.TrimSpace(req.Code) == "" {
		writeErr(w, xerrors.ErrInvalidRequest)
		return
	}
	if len(req.Code) > maxCodeBytes {
		writeErr(w, xerrors.ErrInvalidRequest)
		return
	}

	result, err := h.judge.Execute(r.Context(), &req)
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Languages handles GET /execute/languages.
func (h *ExecuteHandler) Languages(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, judge.Languages())
}
