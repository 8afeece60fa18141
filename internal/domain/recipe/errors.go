package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameRequired           = errors.New("recipe name is required")
	ErrNameTooLong            = errors.New("recipe name must not exceed 200 characters")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrInvalidPortions        = errors.New("portion count must be greater than 0")

	// Scaling errors
	ErrZeroPortions = errors.New("cannot rescale a recipe with zero portions")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
