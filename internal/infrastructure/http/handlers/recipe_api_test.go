package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/ports/inbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockRecipeService mocks the inbound recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

func (m *MockRecipeService) RescalePortions(ctx context.Context, recipeID uuid.UUID, newPortions int) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, recipeID, newPortions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) ImportRecipes(ctx context.Context, document []byte) (int, error) {
	args := m.Called(ctx, document)
	return args.Int(0), args.Error(1)
}

func (m *MockRecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, term string) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

// RecipeAPITestSuite tests the recipe HTTP handlers through a chi router
type RecipeAPITestSuite struct {
	suite.Suite
	service *MockRecipeService
	router  *chi.Mux
}

func (suite *RecipeAPITestSuite) SetupTest() {
	suite.service = new(MockRecipeService)
	h := NewRecipeAPIHandlers(suite.service, zap.NewNop())

	suite.router = chi.NewRouter()
	suite.router.Route("/api/v1/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/search", h.SearchRecipes)
		r.Post("/import", h.ImportRecipes)
		r.Get("/{id}", h.GetRecipe)
		r.Put("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Post("/{id}/portions", h.RescalePortions)
	})
}

func (suite *RecipeAPITestSuite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)
	return w
}

func (suite *RecipeAPITestSuite) errorPayload(w *httptest.ResponseRecorder) string {
	var payload map[string]string
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &payload))
	return payload["error"]
}

// TestCreateRecipe tests creation request handling
func (suite *RecipeAPITestSuite) TestCreateRecipe() {
	suite.Run("ValidRequest_ShouldReturn201", func() {
		suite.SetupTest()
		dto := &inbound.RecipeDTO{ID: uuid.New(), Name: "Paella", PortionCount: 6}
		suite.service.On("CreateRecipe", mock.Anything, mock.AnythingOfType("inbound.CreateRecipeCommand")).
			Return(dto, nil)

		w := suite.do(http.MethodPost, "/api/v1/recipes", []byte(`{
			"name": "Paella",
			"description": "Valencian rice dish",
			"portion_count": 6,
			"ingredients": [{"name": "Rice", "quantity": 500, "unit": "g"}]
		}`))

		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		var got inbound.RecipeDTO
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(suite.T(), dto.ID, got.ID)
	})

	suite.Run("InvalidJSON_ShouldReturn400WithErrorPayload", func() {
		suite.SetupTest()

		w := suite.do(http.MethodPost, "/api/v1/recipes", []byte(`{not json`))

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		assert.NotEmpty(suite.T(), suite.errorPayload(w))
		suite.service.AssertNotCalled(suite.T(), "CreateRecipe", mock.Anything, mock.Anything)
	})

	suite.Run("MissingName_ShouldFailValidation", func() {
		suite.SetupTest()

		w := suite.do(http.MethodPost, "/api/v1/recipes", []byte(`{"portion_count": 4}`))

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		suite.service.AssertNotCalled(suite.T(), "CreateRecipe", mock.Anything, mock.Anything)
	})
}

// TestGetRecipe tests retrieval and error mapping
func (suite *RecipeAPITestSuite) TestGetRecipe() {
	suite.Run("UnknownID_ShouldReturn404", func() {
		suite.SetupTest()
		id := uuid.New()
		suite.service.On("GetRecipeByID", mock.Anything, id).
			Return(nil, apperrors.NewRecipeNotFoundError(id.String()))

		w := suite.do(http.MethodGet, "/api/v1/recipes/"+id.String(), nil)

		assert.Equal(suite.T(), http.StatusNotFound, w.Code)
		assert.NotEmpty(suite.T(), suite.errorPayload(w))
	})

	suite.Run("MalformedID_ShouldReturn400", func() {
		suite.SetupTest()

		w := suite.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", nil)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	})
}

// TestRescalePortions tests the rescale endpoint
func (suite *RecipeAPITestSuite) TestRescalePortions() {
	suite.Run("ValidRequest_ShouldReturnScaledRecipe", func() {
		suite.SetupTest()
		id := uuid.New()
		dto := &inbound.RecipeDTO{ID: id, Name: "Lentejas", PortionCount: 8}
		suite.service.On("RescalePortions", mock.Anything, id, 8).Return(dto, nil)

		w := suite.do(http.MethodPost, "/api/v1/recipes/"+id.String()+"/portions", []byte(`{"portions": 8}`))

		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var got inbound.RecipeDTO
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(suite.T(), 8, got.PortionCount)
	})

	suite.Run("StoredZeroPortions_ShouldReturn400", func() {
		suite.SetupTest()
		id := uuid.New()
		suite.service.On("RescalePortions", mock.Anything, id, 4).
			Return(nil, apperrors.NewZeroPortionsError(id.String()))

		w := suite.do(http.MethodPost, "/api/v1/recipes/"+id.String()+"/portions", []byte(`{"portions": 4}`))

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		assert.NotEmpty(suite.T(), suite.errorPayload(w))
	})
}

// TestImportRecipes tests the bulk import endpoint
func (suite *RecipeAPITestSuite) TestImportRecipes() {
	suite.Run("RawBody_ShouldReportImportedCount", func() {
		suite.SetupTest()
		document := []byte(`<Recetas></Recetas>`)
		suite.service.On("ImportRecipes", mock.Anything, document).Return(3, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/import", bytes.NewReader(document))
		r.Header.Set("Content-Type", "application/xml")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, r)

		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var got ImportResponse
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(suite.T(), 3, got.Imported)
	})

	suite.Run("MalformedDocument_ShouldReturn400", func() {
		suite.SetupTest()
		document := []byte(`garbage`)
		suite.service.On("ImportRecipes", mock.Anything, document).
			Return(0, apperrors.NewMalformedDocumentError(assert.AnError))

		r := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/import", bytes.NewReader(document))
		r.Header.Set("Content-Type", "application/xml")
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, r)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		assert.NotEmpty(suite.T(), suite.errorPayload(w))
	})
}

// TestDeleteRecipe tests the delete endpoint
func (suite *RecipeAPITestSuite) TestDeleteRecipe() {
	suite.SetupTest()
	id := uuid.New()
	suite.service.On("DeleteRecipe", mock.Anything, id).Return(nil)

	w := suite.do(http.MethodDelete, "/api/v1/recipes/"+id.String(), nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

// TestSearchRecipes tests that the query term is forwarded
func (suite *RecipeAPITestSuite) TestSearchRecipes() {
	suite.SetupTest()
	suite.service.On("SearchRecipes", mock.Anything, "lentil").
		Return([]inbound.RecipeDTO{{ID: uuid.New(), Name: "Lentejas"}}, nil)

	w := suite.do(http.MethodGet, "/api/v1/recipes/search?q=lentil", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got []inbound.RecipeDTO
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), "Lentejas", got[0].Name)
}

// TestRecipeAPITestSuite runs the test suite
func TestRecipeAPITestSuite(t *testing.T) {
	suite.Run(t, new(RecipeAPITestSuite))
}
