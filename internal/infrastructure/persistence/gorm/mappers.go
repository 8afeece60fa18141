// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/recetaria/v1/internal/domain/recipe"
	"github.com/recetaria/v1/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(model *UserModel) *user.User {
	return user.Reconstruct(
		model.ID,
		model.Username,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
		model.LastLoginAt,
	)
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	ingredients := make([]IngredientModel, len(r.Ingredients()))
	for i, ingredient := range r.Ingredients() {
		ingredients[i] = IngredientModel{
			ID:       ingredient.ID,
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
			RecipeID: r.ID(),
		}
	}

	return &RecipeModel{
		ID:           r.ID(),
		Name:         r.Name(),
		Description:  r.Description(),
		PortionCount: r.PortionCount(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
		Ingredients:  ingredients,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, len(model.Ingredients))
	for i, ingredient := range model.Ingredients {
		ingredients[i] = recipe.Ingredient{
			ID:       ingredient.ID,
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
			RecipeID: ingredient.RecipeID,
		}
	}

	return recipe.Reconstruct(
		model.ID,
		model.Name,
		model.Description,
		model.PortionCount,
		ingredients,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
