package aiclassify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/categorization"
)

// GeminiClassifier asks a Gemini model to pick the single best category for a
// transaction description. It implements categorization.Classifier; the AI
// strategy decides what to do with the score.
type GeminiClassifier struct {
	client     *genai.Client
	model      string
	categories []CategoryOption
	logger     *slog.Logger
}

// CategoryOption is one label the model may choose from.
type CategoryOption struct {
	CategoryID string
	Name       string
}

// NewGeminiClassifier creates a classifier over the given API key and model.
// The category list is baked into the prompt, so it should hold the
// system-seeded set.
func NewGeminiClassifier(ctx context.Context, apiKey string, model string, categories []CategoryOption, logger *slog.Logger) (*GeminiClassifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClassifier{
		client:     client,
		model:      model,
		categories: categories,
		logger:     logger,
	}, nil
}

var _ categorization.Classifier = (*GeminiClassifier)(nil)

type classification struct {
	CategoryID string  `json:"category_id"`
	Score      float64 `json:"score"`
}

// Classify implements categorization.Classifier. Transport and parse
// failures are wrapped as ErrExternalServiceUnavailable so the caller can
// treat the collaborator as down rather than the input as bad.
func (c *GeminiClassifier) Classify(ctx context.Context, description string) (string, float64, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: c.buildPrompt(description)},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", 0, fmt.Errorf("%w: gemini generate content: %v", apperrors.ErrExternalServiceUnavailable, err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", 0, fmt.Errorf("%w: empty response from model", apperrors.ErrExternalServiceUnavailable)
	}

	var result classification
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &result); err != nil {
		c.logger.Warn("Unparseable classifier response",
			slog.String("raw", rawText))
		return "", 0, fmt.Errorf("%w: unmarshal classification: %v", apperrors.ErrExternalServiceUnavailable, err)
	}

	if !c.knownCategory(result.CategoryID) {
		// A hallucinated label scores zero rather than erroring; the AI
		// strategy declines it and the chain falls through to manual.
		c.logger.Warn("Classifier returned unknown category",
			slog.String("category_id", result.CategoryID))
		return "", 0, nil
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 1 {
		result.Score = 1
	}
	return result.CategoryID, result.Score, nil
}

func (c *GeminiClassifier) buildPrompt(description string) string {
	var b strings.Builder
	b.WriteString("You are a transaction categorizer for a personal finance application.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Pick the single best category for the transaction description below.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output exactly one object with these fields:\n")
	b.WriteString("  - \"category_id\": string, one of the IDs listed below\n")
	b.WriteString("  - \"score\": number in [0,1], your confidence in the choice\n\n")
	b.WriteString("Categories:\n")
	for _, cat := range c.categories {
		fmt.Fprintf(&b, "- %s: %s\n", cat.CategoryID, cat.Name)
	}
	b.WriteString("\nReturn ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Do NOT use ```json or any Markdown.\n\n")
	fmt.Fprintf(&b, "Transaction description: %q\n", description)
	return b.String()
}

func (c *GeminiClassifier) knownCategory(categoryID string) bool {
	for _, cat := range c.categories {
		if cat.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// cleanModelJSON strips Markdown fences if the model ignored instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
