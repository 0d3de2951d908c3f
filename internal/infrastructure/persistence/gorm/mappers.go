package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/lunara/wellness/internal/domain/knowledge"
	"github.com/lunara/wellness/internal/domain/plan"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

func marshalJSON(v interface{}) (RawJSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return RawJSON(data), nil
}

func unmarshalJSON(data RawJSON, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", v, err)
	}
	return nil
}

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(rec *recipe.Recipe) (*RecipeModel, error) {
	title, err := marshalJSON(rec.Title)
	if err != nil {
		return nil, err
	}
	macros, err := marshalJSON(rec.MacrosPerPortion)
	if err != nil {
		return nil, err
	}
	ingredients, err := marshalJSON(rec.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := marshalJSON(rec.Instructions)
	if err != nil {
		return nil, err
	}
	benefits, err := marshalJSON(rec.HormoneBenefits)
	if err != nil {
		return nil, err
	}

	return &RecipeModel{
		ID:               rec.ID,
		Title:            title,
		Category:         string(rec.Category),
		Difficulty:       string(rec.Difficulty),
		Tags:             rec.Tags,
		MacrosPerPortion: macros,
		Ingredients:      ingredients,
		Instructions:     instructions,
		HormoneFriendly:  rec.HormoneFriendly,
		HormoneBenefits:  benefits,
		PrepTimeMinutes:  rec.PrepTimeMinutes,
		CookTimeMinutes:  rec.CookTimeMinutes,
		DefaultPortions:  rec.DefaultPortions,
		ImageURL:         rec.ImageURL,
		IsCustom:         rec.IsCustom,
		IsAIGenerated:    rec.IsAIGenerated,
		OriginalRecipeID: rec.OriginalRecipeID,
		OwnerID:          rec.OwnerID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}, nil
}

// ModelToRecipe converts a GORM model back to the domain recipe
func ModelToRecipe(model *RecipeModel) (*recipe.Recipe, error) {
	rec := &recipe.Recipe{
		ID:               model.ID,
		Category:         recipe.Category(model.Category),
		Difficulty:       recipe.DifficultyLevel(model.Difficulty),
		Tags:             model.Tags,
		HormoneFriendly:  model.HormoneFriendly,
		PrepTimeMinutes:  model.PrepTimeMinutes,
		CookTimeMinutes:  model.CookTimeMinutes,
		DefaultPortions:  model.DefaultPortions,
		ImageURL:         model.ImageURL,
		IsCustom:         model.IsCustom,
		IsAIGenerated:    model.IsAIGenerated,
		OriginalRecipeID: model.OriginalRecipeID,
		OwnerID:          model.OwnerID,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	if err := unmarshalJSON(model.Title, &rec.Title); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.MacrosPerPortion, &rec.MacrosPerPortion); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.Ingredients, &rec.Ingredients); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.Instructions, &rec.Instructions); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.HormoneBenefits, &rec.HormoneBenefits); err != nil {
		return nil, err
	}

	return rec, nil
}

// QuestionnaireToModel converts a domain questionnaire to its GORM model
func QuestionnaireToModel(q *profile.Questionnaire) (*QuestionnaireModel, error) {
	nutrition, err := marshalJSON(q.Nutrition)
	if err != nil {
		return nil, err
	}
	goals, err := marshalJSON(q.RecoveryGoals)
	if err != nil {
		return nil, err
	}
	movement, err := marshalJSON(q.Movement)
	if err != nil {
		return nil, err
	}

	return &QuestionnaireModel{
		ID:            q.ID,
		UserID:        q.UserID,
		Nutrition:     nutrition,
		RecoveryGoals: goals,
		Movement:      movement,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}, nil
}

// ModelToQuestionnaire converts a GORM model back to the domain questionnaire
func ModelToQuestionnaire(model *QuestionnaireModel) (*profile.Questionnaire, error) {
	q := &profile.Questionnaire{
		ID:        model.ID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if len(model.Nutrition) > 0 {
		var n profile.NutritionProfile
		if err := unmarshalJSON(model.Nutrition, &n); err != nil {
			return nil, err
		}
		q.Nutrition = &n
	}
	if err := unmarshalJSON(model.RecoveryGoals, &q.RecoveryGoals); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.Movement, &q.Movement); err != nil {
		return nil, err
	}

	return q, nil
}

// FavoriteToModel converts a domain favorite to its GORM model
func FavoriteToModel(fav *recipe.Favorite) (*FavoriteModel, error) {
	data, err := marshalJSON(fav.ItemData)
	if err != nil {
		return nil, err
	}
	return &FavoriteModel{
		ID:        fav.ID,
		UserID:    fav.UserID,
		ItemID:    fav.ItemID,
		ItemType:  fav.ItemType,
		ItemData:  data,
		CreatedAt: fav.CreatedAt,
	}, nil
}

// ModelToFavorite converts a GORM model back to the domain favorite
func ModelToFavorite(model *FavoriteModel) (*recipe.Favorite, error) {
	fav := &recipe.Favorite{
		ID:        model.ID,
		UserID:    model.UserID,
		ItemID:    model.ItemID,
		ItemType:  model.ItemType,
		CreatedAt: model.CreatedAt,
	}
	if len(model.ItemData) > 0 {
		var rec recipe.Recipe
		if err := unmarshalJSON(model.ItemData, &rec); err != nil {
			return nil, err
		}
		fav.ItemData = &rec
	}
	return fav, nil
}

// PlanToModel converts a domain plan to its GORM model
func PlanToModel(p *plan.Plan) (*PlanModel, error) {
	meals, err := marshalJSON(p.Meals)
	if err != nil {
		return nil, err
	}
	return &PlanModel{
		ID:        p.ID,
		UserID:    p.UserID,
		Type:      p.Type,
		WeekStart: p.WeekStart,
		Meals:     meals,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// ModelToPlan converts a GORM model back to the domain plan
func ModelToPlan(model *PlanModel) (*plan.Plan, error) {
	p := &plan.Plan{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		WeekStart: model.WeekStart,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if err := unmarshalJSON(model.Meals, &p.Meals); err != nil {
		return nil, err
	}
	return p, nil
}

// ModelToArticle converts a GORM model back to the domain article
func ModelToArticle(model *ArticleModel) (*knowledge.Article, error) {
	a := &knowledge.Article{
		ID:          model.ID,
		Category:    model.Category,
		Tags:        model.Tags,
		ImageURL:    model.ImageURL,
		PublishedAt: model.PublishedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if err := unmarshalJSON(model.Title, &a.Title); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.Summary, &a.Summary); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(model.Content, &a.Content); err != nil {
		return nil, err
	}
	return a, nil
}
