// Package ai provides the application layer for AI recipe generation
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/recetaria/v1/internal/ports/outbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

const systemPrompt = "You are an expert chef who writes detailed recipes."

// ChefService turns a raw ingredient list into a generated recipe text
// using an external chat-completion API.
type ChefService struct {
	client outbound.CompletionClient
	logger *zap.Logger
}

// NewChefService creates a new chef service
func NewChefService(client outbound.CompletionClient, logger *zap.Logger) *ChefService {
	return &ChefService{
		client: client,
		logger: logger.Named("chef-service"),
	}
}

// GenerateRecipe asks the completion API for a recipe built from the given
// comma-separated ingredient list and returns the generated plain text.
// Blank input is rejected before any outbound call is made.
func (s *ChefService) GenerateRecipe(ctx context.Context, rawIngredients string) (string, error) {
	ingredients := ParseIngredients(rawIngredients)
	if len(ingredients) == 0 {
		s.logger.Warn("Recipe generation requested with no ingredients")
		return "", apperrors.NewNoIngredientsError()
	}

	s.logger.Info("Generating recipe", zap.Strings("ingredients", ingredients))

	userPrompt := fmt.Sprintf(
		"Generate a recipe using these ingredients: %s. "+
			"Include a name, a description, the steps and the ingredients with quantities. "+
			"Format the answer as plain text.",
		strings.Join(ingredients, ", "),
	)

	recipeText, err := s.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		appErr := apperrors.Wrap(err, "recipe generation failed")
		s.logger.Error("Recipe generation failed",
			zap.Strings("ingredients", ingredients),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
		return "", appErr
	}

	s.logger.Info("Recipe generated", zap.Int("length", len(recipeText)))
	return recipeText, nil
}

// ParseIngredients splits a comma-separated list, trimming whitespace and
// dropping empty tokens.
func ParseIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	return ingredients
}
