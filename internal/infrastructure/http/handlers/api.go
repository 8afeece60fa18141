// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/ports/inbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// Import documents are read fully into memory before parsing; cap the body
// size so an oversized upload cannot exhaust the process.
const maxImportSize = 10 << 20

// RecipeAPIHandlers handles recipe REST API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		validate:      validator.New(),
		logger:        logger,
	}
}

// RecipeRequest represents a recipe create/update request
type RecipeRequest struct {
	Name         string              `json:"name" validate:"required,max=100"`
	Description  string              `json:"description"`
	PortionCount int                 `json:"portion_count" validate:"required,min=1"`
	Ingredients  []IngredientRequest `json:"ingredients" validate:"dive"`
}

// IngredientRequest represents one ingredient in a recipe request
type IngredientRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RescaleRequest represents a portion rescale request
type RescaleRequest struct {
	Portions int `json:"portions"`
}

// ImportResponse reports the number of recipes imported from a document
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.ListRecipes(r.Context())
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipes)
}

// SearchRecipes handles GET /api/v1/recipes/search?q=term
func (h *RecipeAPIHandlers) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	recipes, err := h.recipeService.SearchRecipes(r.Context(), term)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipes)
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	recipe, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipe)
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeAPIHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(h.logger, w, apperrors.NewValidationError(err.Error()))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		Name:         req.Name,
		Description:  req.Description,
		PortionCount: req.PortionCount,
		Ingredients:  toIngredientCommands(req.Ingredients),
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusCreated, recipe)
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	var req RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(h.logger, w, apperrors.NewValidationError(err.Error()))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:     id,
		Name:         req.Name,
		Description:  req.Description,
		PortionCount: req.PortionCount,
		Ingredients:  toIngredientCommands(req.Ingredients),
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		writeError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RescalePortions handles POST /api/v1/recipes/{id}/portions
func (h *RecipeAPIHandlers) RescalePortions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	var req RescaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	recipe, err := h.recipeService.RescalePortions(r.Context(), id, req.Portions)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, recipe)
}

// ImportRecipes handles POST /api/v1/recipes/import. The document is taken
// from a multipart "file" field when present, otherwise from the raw body.
func (h *RecipeAPIHandlers) ImportRecipes(w http.ResponseWriter, r *http.Request) {
	document, err := h.readDocument(r)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	count, err := h.recipeService.ImportRecipes(r.Context(), document)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, ImportResponse{Imported: count})
}

func (h *RecipeAPIHandlers) readDocument(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportSize)

	if err := r.ParseMultipartForm(maxImportSize); err == nil {
		file, _, fileErr := r.FormFile("file")
		if fileErr == nil {
			defer file.Close()
			document, readErr := io.ReadAll(file)
			if readErr != nil {
				return nil, apperrors.NewBadRequestError("failed to read uploaded file")
			}
			return document, nil
		}
	}

	document, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to read request body")
	}
	if len(document) == 0 {
		return nil, apperrors.NewBadRequestError("import document is empty")
	}

	return document, nil
}

func toIngredientCommands(ingredients []IngredientRequest) []inbound.IngredientCommand {
	commands := make([]inbound.IngredientCommand, len(ingredients))
	for i, ingredient := range ingredients {
		commands[i] = inbound.IngredientCommand{
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
		}
	}
	return commands
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("invalid recipe id")
	}
	return id, nil
}

// writeJSON writes a JSON response
func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps application errors to their HTTP status and writes the
// uniform error payload.
func writeError(logger *zap.Logger, w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("internal server error").WithCause(err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}

	writeJSON(logger, w, status, apperrors.ToErrorResponse(appErr))
}
