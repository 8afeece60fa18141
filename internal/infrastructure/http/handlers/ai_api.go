// Package handlers provides HTTP handlers for AI recipe generation
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/recetaria/v1/internal/application/ai"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// AIAPIHandlers handles AI recipe generation requests
type AIAPIHandlers struct {
	chefService *ai.ChefService
	logger      *zap.Logger
}

// NewAIAPIHandlers creates a new AI API handlers instance
func NewAIAPIHandlers(chefService *ai.ChefService, logger *zap.Logger) *AIAPIHandlers {
	return &AIAPIHandlers{
		chefService: chefService,
		logger:      logger,
	}
}

// GenerateRequest represents an AI recipe generation request
type GenerateRequest struct {
	Ingredients string `json:"ingredients"`
}

// GenerateResponse carries the generated recipe text
type GenerateResponse struct {
	Recipe string `json:"recipe"`
}

// GenerateRecipe handles POST /api/v1/ai/generate
func (h *AIAPIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	recipe, err := h.chefService.GenerateRecipe(r.Context(), req.Ingredients)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, GenerateResponse{Recipe: recipe})
}
