// Package openai provides the OpenAI-compatible recipe and image generation
// adapter
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/infrastructure/config"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// Client implements the AIService interface against an OpenAI-compatible API
type Client struct {
	cfg    config.AIConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new provider client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.Named("openai-client"),
	}
}

var _ outbound.AIService = (*Client)(nil)

// Chat completion wire structures
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type imageGenerationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// batchEnvelope wraps the recipe list the model is asked to return
type batchEnvelope struct {
	Recipes []outbound.GeneratedRecipe `json:"recipes"`
}

// GenerateRecipes asks the provider for one batch of recipes matching the
// request constraints
func (c *Client) GenerateRecipes(ctx context.Context, req outbound.RecipeGenerationRequest) ([]outbound.GeneratedRecipe, error) {
	content, err := c.chatCompletion(ctx, systemPrompt, buildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	envelope, err := parseBatch(content)
	if err != nil {
		c.logger.Error("Failed to parse provider response",
			zap.Error(err),
			zap.String("meal_type", string(req.MealType)),
		)
		return nil, err
	}

	return envelope.Recipes, nil
}

// GenerateImage produces a food photo and returns its URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := imageGenerationRequest{
		Model:  c.cfg.ImageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	var resp imageGenerationResponse
	if err := c.post(ctx, "/images/generations", reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image returned")
	}
	return resp.Data[0].URL, nil
}

const systemPrompt = `You are a nutritionist specializing in meal planning for women in menopause. Create recipes that support hormonal balance: rich in phytoestrogens, omega-3 fatty acids, calcium, fiber and lean protein.

CRITICAL: Respond with ONLY a valid JSON object in the exact format below. No explanatory text, no markdown.

{
  "recipes": [
    {
      "title": {"de": "Rezeptname", "en": "Recipe name"},
      "category": "breakfast",
      "prep_time": 15,
      "cook_time": 25,
      "default_portions": 2,
      "macros_per_portion": {"calories": 450, "protein": 25.0, "fat": 18.0, "carbs": 35.0, "fiber": 8.0},
      "ingredients": [{"name": {"de": "Zutat", "en": "Ingredient"}, "amount": 200, "unit": "g"}],
      "instructions": {"de": ["Schritt 1"], "en": ["Step 1"]},
      "hormone_benefits": {"de": "...", "en": "..."},
      "hormone_friendly": true,
      "difficulty": "easy",
      "tags": ["high-protein"]
    }
  ]
}`

func buildUserPrompt(req outbound.RecipeGenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d %s recipes.\n", req.Count, req.MealType)
	fmt.Fprintf(&b, "Target calories per portion: about %.0f kcal.\n", req.TargetCalories)
	fmt.Fprintf(&b, "Maximum carbohydrates per portion: %.0f g.\n", req.MaxCarbsGrams)
	if len(req.PreferredIngredients) > 0 {
		fmt.Fprintf(&b, "Prefer these ingredients where sensible: %s.\n", strings.Join(req.PreferredIngredients, ", "))
	}
	if len(req.AvoidTitles) > 0 {
		fmt.Fprintf(&b, "Do not repeat these recipes: %s.\n", strings.Join(req.AvoidTitles, "; "))
	}
	b.WriteString("Provide German and English text for every localized field.")
	return b.String()
}

// chatCompletion calls the chat endpoint and returns the raw message content
func (c *Client) chatCompletion(ctx context.Context, system, user string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var resp chatCompletionResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Chat completion succeeded",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody interface{}) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// parseBatch extracts the recipe envelope from the model output. Models
// sometimes wrap the JSON in prose or code fences, so parsing is tolerant of
// surrounding text.
func parseBatch(content string) (*batchEnvelope, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var envelope batchEnvelope
	if err := json.Unmarshal([]byte(content[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse recipe batch: %w", err)
	}
	if len(envelope.Recipes) == 0 {
		return nil, fmt.Errorf("response contained no recipes")
	}
	return &envelope, nil
}
