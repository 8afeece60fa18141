package recipe

import (
	"context"
	"encoding/xml"

	"github.com/recetaria/v1/internal/domain/recipe"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// The import document uses the legacy wire format: a Recetas root wrapping
// Receta elements with Spanish-named fields.
type xmlDocument struct {
	XMLName xml.Name    `xml:"Recetas"`
	Recipes []xmlRecipe `xml:"Receta"`
}

type xmlRecipe struct {
	// Id is accepted but ignored; the store assigns fresh identities.
	ID          string          `xml:"Id"`
	Name        string          `xml:"Nombre"`
	Description string          `xml:"Descripcion"`
	Portions    int             `xml:"Porciones"`
	Ingredients []xmlIngredient `xml:"Ingredientes>Ingrediente"`
}

type xmlIngredient struct {
	ID       string  `xml:"Id"`
	Name     string  `xml:"Nombre"`
	Quantity float64 `xml:"Cantidad"`
	Unit     string  `xml:"Unidad"`
}

// ImportRecipes parses an XML document and bulk-inserts its recipes.
// Any parse or schema mismatch fails the whole import; the repository insert
// runs in one transaction so no partial writes are visible. Repeated imports
// of the same document create duplicate records on purpose.
func (s *RecipeService) ImportRecipes(ctx context.Context, document []byte) (int, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(document, &doc); err != nil {
		s.logger.Warn("Rejected malformed import document", zap.Error(err))
		return 0, apperrors.NewMalformedDocumentError(err)
	}

	recipes := make([]*recipe.Recipe, 0, len(doc.Recipes))
	for _, entry := range doc.Recipes {
		recipeEntity, err := recipe.NewRecipe(entry.Name, entry.Description, entry.Portions)
		if err != nil {
			s.logger.Warn("Rejected import document with invalid recipe",
				zap.String("name", entry.Name),
				zap.Error(err),
			)
			return 0, apperrors.NewMalformedDocumentError(err)
		}

		for _, ingredient := range entry.Ingredients {
			if err := recipeEntity.AddIngredient(ingredient.Name, ingredient.Quantity, ingredient.Unit); err != nil {
				return 0, apperrors.NewMalformedDocumentError(err)
			}
		}

		recipes = append(recipes, recipeEntity)
	}

	if err := s.recipeRepo.BulkCreate(ctx, recipes); err != nil {
		return 0, apperrors.NewDatabaseError("import recipes", err)
	}

	s.logger.Info("Imported recipes", zap.Int("count", len(recipes)))
	return len(recipes), nil
}
