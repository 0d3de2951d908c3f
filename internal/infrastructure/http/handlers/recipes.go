package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/pkg/errors"
)

// RecipeHandlers handles recipe and favorite endpoints
type RecipeHandlers struct {
	recipeService     inbound.RecipeService
	generationService inbound.GenerationService
	questionnaire     inbound.QuestionnaireService
	logger            *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(
	recipeService inbound.RecipeService,
	generationService inbound.GenerationService,
	questionnaire inbound.QuestionnaireService,
	logger *zap.Logger,
) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService:     recipeService,
		generationService: generationService,
		questionnaire:     questionnaire,
		logger:            logger,
	}
}

// ListPersonalized handles GET /api/v1/recipes/personalized
func (h *RecipeHandlers) ListPersonalized(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	query := inbound.PersonalizedQuery{UserID: userID}
	if raw := r.URL.Query().Get("meal_type"); raw != "" {
		category, err := recipe.ParseCategory(raw)
		if err != nil {
			writeError(w, h.logger, errors.NewBadRequestError("Unknown meal type"))
			return
		}
		query.MealType = category
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, h.logger, errors.NewBadRequestError("Invalid limit"))
			return
		}
		query.Limit = limit
	}

	ranked, err := h.recipeService.ListPersonalized(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: ranked})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.recipeService.GetRecipe(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateRecipeCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.recipeService.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: rec})
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var cmd inbound.UpdateRecipeCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	cmd.UserID = userID
	cmd.RecipeID = id

	rec, err := h.recipeService.UpdateUserRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.recipeService.DeleteUserRecipe(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe deleted"})
}

// ToggleFavorite handles POST /api/v1/recipes/{id}/favorite
func (h *RecipeHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	favorited, err := h.recipeService.ToggleFavorite(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]bool{"favorited": favorited},
	})
}

// ListFavorites handles GET /api/v1/favorites
func (h *RecipeHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	favorites, err := h.recipeService.ListFavorites(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: favorites})
}

// TopUp handles POST /api/v1/recipes/top-up
func (h *RecipeHandlers) TopUp(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var body struct {
		MealType string `json:"meal_type" validate:"required"`
		Count    int    `json:"count" validate:"min=0,max=24"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.logger, err)
		return
	}

	category, err := recipe.ParseCategory(body.MealType)
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("Unknown meal type"))
		return
	}
	if body.Count <= 0 {
		body.Count = 4
	}

	q, err := h.questionnaire.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	scored, err := h.generationService.TopUp(r.Context(), userID, q, category, body.Count)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: scored})
}
