// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/domain/recipe"
	"github.com/recetaria/v1/internal/ports/inbound"
	"github.com/recetaria/v1/internal/ports/outbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo outbound.RecipeRepository, logger *zap.Logger) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe with its owned ingredients
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe", zap.String("name", cmd.Name))

	recipeEntity, err := recipe.NewRecipe(cmd.Name, cmd.Description, cmd.PortionCount)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	for _, ingredientCmd := range cmd.Ingredients {
		if err := recipeEntity.AddIngredient(ingredientCmd.Name, ingredientCmd.Quantity, ingredientCmd.Unit); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, recipeEntity); err != nil {
		return nil, apperrors.NewDatabaseError("create recipe", err)
	}

	dto := entityToDTO(recipeEntity)

	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("name", dto.Name),
	)

	return dto, nil
}

// UpdateRecipe updates an existing recipe and replaces its ingredients
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Updating recipe", zap.String("recipe_id", cmd.RecipeID.String()))

	recipeEntity, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	if err := recipeEntity.UpdateDetails(cmd.Name, cmd.Description, cmd.PortionCount); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	ingredients := make([]recipe.Ingredient, len(cmd.Ingredients))
	for i, ingredientCmd := range cmd.Ingredients {
		ingredients[i] = recipe.Ingredient{
			Name:     ingredientCmd.Name,
			Quantity: ingredientCmd.Quantity,
			Unit:     ingredientCmd.Unit,
		}
	}
	recipeEntity.ReplaceIngredients(ingredients)

	if err := s.recipeRepo.Update(ctx, recipeEntity); err != nil {
		return nil, apperrors.NewDatabaseError("update recipe", err)
	}

	return entityToDTO(recipeEntity), nil
}

// DeleteRecipe deletes a recipe; its ingredients go with it
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	s.logger.Info("Deleting recipe", zap.String("recipe_id", recipeID.String()))

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return apperrors.NewDatabaseError("delete recipe", err)
	}
	return nil
}

// RescalePortions recomputes every ingredient quantity for the new portion
// count and persists the result. The repository update is transactional, so
// readers never observe a partially scaled recipe.
func (s *RecipeService) RescalePortions(ctx context.Context, recipeID uuid.UUID, newPortions int) (*inbound.RecipeDTO, error) {
	s.logger.Info("Rescaling recipe portions",
		zap.String("recipe_id", recipeID.String()),
		zap.Int("new_portions", newPortions),
	)

	recipeEntity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := recipeEntity.Rescale(newPortions); err != nil {
		if errors.Is(err, recipe.ErrZeroPortions) {
			return nil, apperrors.NewZeroPortionsError(recipeID.String())
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Update(ctx, recipeEntity); err != nil {
		return nil, apperrors.NewDatabaseError("rescale recipe", err)
	}

	return entityToDTO(recipeEntity), nil
}

// GetRecipeByID returns one recipe with its ingredients
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	recipeEntity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return entityToDTO(recipeEntity), nil
}

// ListRecipes returns every recipe
func (s *RecipeService) ListRecipes(ctx context.Context) ([]inbound.RecipeDTO, error) {
	recipes, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}
	return entitiesToDTOs(recipes), nil
}

// SearchRecipes returns recipes whose name or description contains the term
func (s *RecipeService) SearchRecipes(ctx context.Context, term string) ([]inbound.RecipeDTO, error) {
	recipes, err := s.recipeRepo.Search(ctx, term)
	if err != nil {
		return nil, apperrors.NewDatabaseError("search recipes", err)
	}
	return entitiesToDTOs(recipes), nil
}

func (s *RecipeService) findRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	recipeEntity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	return recipeEntity, nil
}

func entityToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientDTO, len(r.Ingredients()))
	for i, ingredient := range r.Ingredients() {
		ingredients[i] = inbound.IngredientDTO{
			ID:       ingredient.ID,
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
		}
	}

	return &inbound.RecipeDTO{
		ID:           r.ID(),
		Name:         r.Name(),
		Description:  r.Description(),
		PortionCount: r.PortionCount(),
		Ingredients:  ingredients,
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func entitiesToDTOs(recipes []*recipe.Recipe) []inbound.RecipeDTO {
	dtos := make([]inbound.RecipeDTO, len(recipes))
	for i, r := range recipes {
		dtos[i] = *entityToDTO(r)
	}
	return dtos
}
