package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recetaria/v1/internal/application/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompletionClient struct {
	mock.Mock
}

func (s *stubCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := s.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func TestGenerateRecipeHandler(t *testing.T) {
	t.Run("ValidIngredients_ShouldReturnRecipeText", func(t *testing.T) {
		client := new(stubCompletionClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return("Tomato Basil Salad...", nil)
		h := NewAIAPIHandlers(ai.NewChefService(client, zap.NewNop()), zap.NewNop())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/ai/generate",
			bytes.NewReader([]byte(`{"ingredients": "tomato, basil"}`)))
		w := httptest.NewRecorder()

		h.GenerateRecipe(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var got GenerateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Contains(t, got.Recipe, "Tomato Basil Salad")
	})

	t.Run("BlankIngredients_ShouldReturn400WithErrorPayload", func(t *testing.T) {
		client := new(stubCompletionClient)
		h := NewAIAPIHandlers(ai.NewChefService(client, zap.NewNop()), zap.NewNop())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/ai/generate",
			bytes.NewReader([]byte(`{"ingredients": "   "}`)))
		w := httptest.NewRecorder()

		h.GenerateRecipe(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.NotEmpty(t, payload["error"])
		client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}
