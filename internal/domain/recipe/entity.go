// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe represents the core recipe entity in our domain.
// It owns its ingredient collection; ingredients never outlive their recipe.
type Recipe struct {
	id           uuid.UUID
	name         string
	description  string
	portionCount int
	ingredients  []Ingredient
	createdAt    time.Time
	updatedAt    time.Time
}

// Ingredient is a quantified component of exactly one recipe.
// The RecipeID foreign key is the source of ownership; there is no
// back-reference to the owning entity.
type Ingredient struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Unit     string
	RecipeID uuid.UUID
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(name, description string, portionCount int) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if portionCount < 0 {
		return nil, ErrInvalidPortions
	}

	now := time.Now()
	return &Recipe{
		id:           uuid.New(),
		name:         name,
		description:  description,
		portionCount: portionCount,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Recipe from persisted state.
// It bypasses creation-time validation; the store is trusted.
func Reconstruct(
	id uuid.UUID,
	name, description string,
	portionCount int,
	ingredients []Ingredient,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		name:         name,
		description:  description,
		portionCount: portionCount,
		ingredients:  ingredients,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Name returns the recipe's name
func (r *Recipe) Name() string {
	return r.name
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// PortionCount returns the number of portions the quantities are scaled for
func (r *Recipe) PortionCount() int {
	return r.portionCount
}

// Ingredients returns the recipe's ingredients
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// AddIngredient appends an ingredient to the owned collection
func (r *Recipe) AddIngredient(name string, quantity float64, unit string) error {
	if strings.TrimSpace(name) == "" {
		return ErrIngredientNameRequired
	}

	r.ingredients = append(r.ingredients, Ingredient{
		ID:       uuid.New(),
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		RecipeID: r.id,
	})
	r.updatedAt = time.Now()
	return nil
}

// UpdateDetails replaces the recipe's name, description and portion count
func (r *Recipe) UpdateDetails(name, description string, portionCount int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if portionCount < 0 {
		return ErrInvalidPortions
	}

	r.name = name
	r.description = description
	r.portionCount = portionCount
	r.updatedAt = time.Now()
	return nil
}

// ReplaceIngredients swaps the owned ingredient collection
func (r *Recipe) ReplaceIngredients(ingredients []Ingredient) {
	for i := range ingredients {
		if ingredients[i].ID == uuid.Nil {
			ingredients[i].ID = uuid.New()
		}
		ingredients[i].RecipeID = r.id
	}
	r.ingredients = ingredients
	r.updatedAt = time.Now()
}

// Rescale recomputes every ingredient quantity proportionally for the new
// portion count: quantity := quantity * newPortions / portionCount.
// The current portion count must be non-zero.
func (r *Recipe) Rescale(newPortions int) error {
	if r.portionCount == 0 {
		return ErrZeroPortions
	}
	if newPortions < 1 {
		return ErrInvalidPortions
	}

	factor := float64(newPortions) / float64(r.portionCount)
	for i := range r.ingredients {
		r.ingredients[i].Quantity *= factor
	}
	r.portionCount = newPortions
	r.updatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
