package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/ports/inbound"
)

// KnowledgeHandlers serves the published article library
type KnowledgeHandlers struct {
	service inbound.KnowledgeService
	logger  *zap.Logger
}

// NewKnowledgeHandlers creates a new knowledge handlers instance
func NewKnowledgeHandlers(service inbound.KnowledgeService, logger *zap.Logger) *KnowledgeHandlers {
	return &KnowledgeHandlers{service: service, logger: logger}
}

// List handles GET /api/v1/articles
func (h *KnowledgeHandlers) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListArticles(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: articles})
}

// Get handles GET /api/v1/articles/{id}
func (h *KnowledgeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	article, err := h.service.GetArticle(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: article})
}
