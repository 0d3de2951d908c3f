package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
)

// PlanHandlers handles weekly plan endpoints
type PlanHandlers struct {
	service inbound.PlanService
	logger  *zap.Logger
}

// NewPlanHandlers creates a new plan handlers instance
func NewPlanHandlers(service inbound.PlanService, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{service: service, logger: logger}
}

// GetCurrent handles GET /api/v1/plans/current
func (h *PlanHandlers) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.service.GetCurrentPlan(r.Context(), userID, time.Now())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: p})
}

// Generate handles POST /api/v1/plans/generate
func (h *PlanHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.service.GenerateWeeklyPlan(r.Context(), userID, time.Now())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: p})
}

// ShoppingList handles GET /api/v1/plans/shopping-list
func (h *PlanHandlers) ShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = recipe.DefaultLanguage
	}

	list, err := h.service.ShoppingList(r.Context(), userID, time.Now(), lang)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}
