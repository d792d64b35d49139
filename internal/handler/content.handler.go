package handler

import (
	"net/http"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/usecase"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"

	"github.com/go-chi/chi/v5"
)

type ContentHandler struct {
	content *usecase.ContentUsecase
}

func NewContentHandler(content *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{content: content}
}

// Chapters

func (h *ContentHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.content.ListChapters(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, chapters)
}

func (h *ContentHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	chapter, err := h.content.GetChapter(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, chapter)
}

func (h *ContentHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var c domain.Chapter
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := h.content.CreateChapter(r.Context(), &c); err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, c)
}

func (h *ContentHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	var c domain.Chapter
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = chi.URLParam(r, "id")
	if err := h.content.UpdateChapter(r.Context(), &c); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "chapter updated")
}

func (h *ContentHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteChapter(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "chapter deleted")
}

// Snippets

func (h *ContentHandler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.content.ListSnippets(r.Context(), r.URL.Query().Get("chapter_id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snippets)
}

func (h *ContentHandler) GetSnippet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.content.GetSnippet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snippet)
}

func (h *ContentHandler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	var s domain.Snippet
	if !decodeJSON(w, r, &s) {
		return
	}
	if err := h.content.CreateSnippet(r.Context(), &s); err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, s)
}

func (h *ContentHandler) UpdateSnippet(w http.ResponseWriter, r *http.Request) {
	var s domain.Snippet
	if !decodeJSON(w, r, &s) {
		return
	}
	s.ID = chi.URLParam(r, "id")
	if err := h.content.UpdateSnippet(r.Context(), &s); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "snippet updated")
}

func (h *ContentHandler) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteSnippet(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "snippet deleted")
}

// Programs

func (h *ContentHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.content.ListPrograms(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, programs)
}

func (h *ContentHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := h.content.GetProgram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, program)
}

func (h *ContentHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var p domain.Program
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := h.content.CreateProgram(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, p)
}

func (h *ContentHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	var p domain.Program
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := h.content.UpdateProgram(r.Context(), &p); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "program updated")
}

func (h *ContentHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteProgram(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "program deleted")
}

// Libraries

func (h *ContentHandler) ListLibraries(w http.ResponseWriter, r *http.Request) {
	libraries, err := h.content.ListLibraries(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, libraries)
}

func (h *ContentHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	library, err := h.content.GetLibrary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusOK, library)
}

func (h *ContentHandler) CreateLibrary(w http.ResponseWriter, r *http.Request) {
	var l domain.Library
	if !decodeJSON(w, r, &l) {
		return
	}
	if err := h.content.CreateLibrary(r.Context(), &l); err != nil {
		writeErr(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, l)
}

func (h *ContentHandler) UpdateLibrary(w http.ResponseWriter, r *http.Request) {
	var l domain.Library
	if !decodeJSON(w, r, &l) {
		return
	}
	l.ID = chi.URLParam(r, "id")
	if err := h.content.UpdateLibrary(r.Context(), &l); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "library updated")
}

func (h *ContentHandler) DeleteLibrary(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteLibrary(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	response.Message(w, http.StatusOK, "library deleted")
}
