package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/ports/inbound"
)

// QuestionnaireHandlers handles questionnaire endpoints
type QuestionnaireHandlers struct {
	service inbound.QuestionnaireService
	logger  *zap.Logger
}

// NewQuestionnaireHandlers creates a new questionnaire handlers instance
func NewQuestionnaireHandlers(service inbound.QuestionnaireService, logger *zap.Logger) *QuestionnaireHandlers {
	return &QuestionnaireHandlers{service: service, logger: logger}
}

// Get handles GET /api/v1/questionnaire
func (h *QuestionnaireHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	q, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: q})
}

// Save handles PUT /api/v1/questionnaire. Saving with a nutrition section
// blocks until the recipe pool has been regenerated.
func (h *QuestionnaireHandlers) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body struct {
		Nutrition     *profile.NutritionProfile `json:"nutrition"`
		RecoveryGoals map[string]any            `json:"recovery_goals"`
		Movement      map[string]any            `json:"movement"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	q, err := h.service.Save(r.Context(), inbound.SaveQuestionnaireCommand{
		UserID:        userID,
		Nutrition:     body.Nutrition,
		RecoveryGoals: body.RecoveryGoals,
		Movement:      body.Movement,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: q})
}
