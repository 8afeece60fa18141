package ai

import (
	"context"
	"testing"

	apperrors "github.com/recetaria/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockCompletionClient mocks the outbound completion client
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// ChefServiceTestSuite provides a test suite for the chef service
type ChefServiceTestSuite struct {
	suite.Suite
	client  *MockCompletionClient
	service *ChefService
	ctx     context.Context
}

func (suite *ChefServiceTestSuite) SetupTest() {
	suite.client = new(MockCompletionClient)
	suite.service = NewChefService(suite.client, zap.NewNop())
	suite.ctx = context.Background()
}

// TestParseIngredients tests the comma-separated ingredient parser
func (suite *ChefServiceTestSuite) TestParseIngredients() {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"SimpleList", "tomato,basil,mozzarella", []string{"tomato", "basil", "mozzarella"}},
		{"SpacesAroundItems", " tomato , basil ", []string{"tomato", "basil"}},
		{"EmptyTokensDropped", "tomato,,basil,", []string{"tomato", "basil"}},
		{"EmptyString", "", []string{}},
		{"OnlyWhitespace", "   ", []string{}},
		{"OnlyCommas", ",,,", []string{}},
		{"SingleIngredient", "tomato", []string{"tomato"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			assert.Equal(suite.T(), tt.expected, ParseIngredients(tt.input))
		})
	}
}

// TestGenerateRecipe tests recipe generation through the completion client
func (suite *ChefServiceTestSuite) TestGenerateRecipe() {
	suite.Run("ValidIngredients_ShouldReturnGeneratedText", func() {
		suite.SetupTest()
		suite.client.On("Complete", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return("Tomato Basil Salad\n\nA fresh salad...", nil)

		recipe, err := suite.service.GenerateRecipe(suite.ctx, "tomato, basil")

		require.NoError(suite.T(), err)
		assert.Contains(suite.T(), recipe, "Tomato Basil Salad")
		suite.client.AssertExpectations(suite.T())
	})

	suite.Run("PromptMentionsEveryIngredient", func() {
		suite.SetupTest()
		var userPrompt string
		suite.client.On("Complete", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				userPrompt = args.String(2)
			}).
			Return("ok", nil)

		_, err := suite.service.GenerateRecipe(suite.ctx, " tomato , basil ,mozzarella")

		require.NoError(suite.T(), err)
		assert.Contains(suite.T(), userPrompt, "tomato, basil, mozzarella")
	})

	suite.Run("EmptyInput_ShouldRejectBeforeCallingUpstream", func() {
		suite.SetupTest()

		recipe, err := suite.service.GenerateRecipe(suite.ctx, "")

		assert.Empty(suite.T(), recipe)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNoIngredients))
		suite.client.AssertNotCalled(suite.T(), "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("WhitespaceInput_ShouldRejectBeforeCallingUpstream", func() {
		suite.SetupTest()

		recipe, err := suite.service.GenerateRecipe(suite.ctx, "  ,  , ")

		assert.Empty(suite.T(), recipe)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeNoIngredients))
		suite.client.AssertNotCalled(suite.T(), "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("UpstreamFailure_ShouldPreserveErrorCode", func() {
		suite.SetupTest()
		suite.client.On("Complete", suite.ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
			Return("", apperrors.NewUpstreamError(500, "internal error"))

		recipe, err := suite.service.GenerateRecipe(suite.ctx, "tomato")

		assert.Empty(suite.T(), recipe)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeUpstreamError))
	})
}

// TestChefServiceTestSuite runs the test suite
func TestChefServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChefServiceTestSuite))
}
