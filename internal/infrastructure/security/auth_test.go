package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/infrastructure/config"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// AuthServiceTestSuite provides a test suite for the auth service
type AuthServiceTestSuite struct {
	suite.Suite
	authService *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.authService = NewAuthService(testConfig(time.Hour), zap.NewNop())
}

func testConfig(expiration time.Duration) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-auth-tests",
			JWTExpiration: expiration,
			CookieName:    "JwtToken",
			SecureCookie:  false,
		},
	}
}

// TestIssueAndValidate tests the token round trip
func (suite *AuthServiceTestSuite) TestIssueAndValidate() {
	userID := uuid.New()

	token, expiresAt, err := suite.authService.IssueToken(userID, "maria")
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), token)
	assert.WithinDuration(suite.T(), time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := suite.authService.ValidateToken(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), userID.String(), claims.UserID)
	assert.Equal(suite.T(), "maria", claims.Username)
}

// TestExpiredToken tests that an expired token is rejected with the expiry code
func (suite *AuthServiceTestSuite) TestExpiredToken() {
	expiredService := NewAuthService(testConfig(-time.Hour), zap.NewNop())

	token, _, err := expiredService.IssueToken(uuid.New(), "maria")
	require.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateToken(token)
	assert.Nil(suite.T(), claims)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeTokenExpired))
}

// TestBadSignature tests that a token signed with another secret is rejected
func (suite *AuthServiceTestSuite) TestBadSignature() {
	otherConfig := testConfig(time.Hour)
	otherConfig.Auth.JWTSecret = "a-completely-different-secret"
	otherService := NewAuthService(otherConfig, zap.NewNop())

	token, _, err := otherService.IssueToken(uuid.New(), "maria")
	require.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateToken(token)
	assert.Nil(suite.T(), claims)
	assert.True(suite.T(), apperrors.Is(err, apperrors.CodeBadSignature))
}

// TestGarbageToken tests that an unparseable token is rejected
func (suite *AuthServiceTestSuite) TestGarbageToken() {
	claims, err := suite.authService.ValidateToken("not-a-jwt")

	assert.Nil(suite.T(), claims)
	assert.Error(suite.T(), err)
}

// TestTokenFromRequest tests cookie-first token extraction
func (suite *AuthServiceTestSuite) TestTokenFromRequest() {
	suite.Run("CookiePresent_ShouldUseCookie", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "JwtToken", Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		token, err := suite.authService.TokenFromRequest(r)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "cookie-token", token)
	})

	suite.Run("NoCookie_ShouldFallBackToBearerHeader", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		token, err := suite.authService.TokenFromRequest(r)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "header-token", token)
	})

	suite.Run("NoTokenAnywhere_ShouldReturnMissingError", func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		token, err := suite.authService.TokenFromRequest(r)

		assert.Empty(suite.T(), token)
		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeTokenMissing))
	})
}

// TestCookies tests the auth cookie lifecycle
func (suite *AuthServiceTestSuite) TestCookies() {
	suite.Run("SetAuthCookie_ShouldBeHTTPOnly", func() {
		w := httptest.NewRecorder()

		suite.authService.SetAuthCookie(w, "some-token", time.Now().Add(time.Hour))

		cookies := w.Result().Cookies()
		require.Len(suite.T(), cookies, 1)
		assert.Equal(suite.T(), "JwtToken", cookies[0].Name)
		assert.Equal(suite.T(), "some-token", cookies[0].Value)
		assert.True(suite.T(), cookies[0].HttpOnly)
		assert.Equal(suite.T(), "/", cookies[0].Path)
	})

	suite.Run("ClearAuthCookie_ShouldExpireImmediately", func() {
		w := httptest.NewRecorder()

		suite.authService.ClearAuthCookie(w)

		cookies := w.Result().Cookies()
		require.Len(suite.T(), cookies, 1)
		assert.Equal(suite.T(), "JwtToken", cookies[0].Name)
		assert.Empty(suite.T(), cookies[0].Value)
		assert.Equal(suite.T(), -1, cookies[0].MaxAge)
	})
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
