// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for recipe management
// This is the primary port that HTTP handlers and other driving adapters will use
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error

	// RescalePortions recomputes every ingredient quantity proportionally
	// and persists the result atomically.
	RescalePortions(ctx context.Context, recipeID uuid.UUID, newPortions int) (*RecipeDTO, error)

	// ImportRecipes bulk-inserts the recipes found in an XML document.
	// The write is all-or-nothing and returns the number of recipes imported.
	ImportRecipes(ctx context.Context, document []byte) (int, error)

	// Queries - operations that read state
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context) ([]RecipeDTO, error)
	SearchRecipes(ctx context.Context, term string) ([]RecipeDTO, error)
}

// Command objects for operations

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Name         string
	Description  string
	PortionCount int
	Ingredients  []IngredientCommand
}

// UpdateRecipeCommand contains data for updating a recipe
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	Name         string
	Description  string
	PortionCount int
	Ingredients  []IngredientCommand
}

// IngredientCommand describes one ingredient of a create/update command
type IngredientCommand struct {
	Name     string
	Quantity float64
	Unit     string
}

// Data transfer objects

// RecipeDTO represents recipe data returned to driving adapters
type RecipeDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PortionCount int             `json:"portion_count"`
	Ingredients  []IngredientDTO `json:"ingredients"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientDTO represents ingredient data within a RecipeDTO
type IngredientDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
}
