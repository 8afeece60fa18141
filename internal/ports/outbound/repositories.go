// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/domain/recipe"
	"github.com/recetaria/v1/internal/domain/user"
)

// RecipeRepository defines the interface for recipe persistence
// This follows the Repository pattern for data access abstraction
type RecipeRepository interface {
	// Basic CRUD operations. Update and Delete cover the owned ingredient
	// collection as well; Update replaces it atomically.
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// Query operations
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	Search(ctx context.Context, term string) ([]*recipe.Recipe, error)
	Count(ctx context.Context) (int64, error)

	// BulkCreate inserts every recipe in one transaction; either all rows
	// are committed or none are.
	BulkCreate(ctx context.Context, recipes []*recipe.Recipe) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user. It returns user.ErrUsernameTaken when the
	// username is already present (exact, case-sensitive match).
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// CompletionClient defines the interface to the external chat-completion API
type CompletionClient interface {
	// Complete sends a system and user instruction pair and returns the
	// first generated choice's text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
