// Package security provides authentication services for the application
package security

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/recetaria/v1/internal/infrastructure/config"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// AuthService issues and validates the signed, time-limited tokens that
// prove an authenticated identity.
type AuthService struct {
	config    *config.Config
	logger    *zap.Logger
	jwtSecret []byte
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		config:    cfg,
		logger:    logger.Named("auth-service"),
		jwtSecret: []byte(cfg.Auth.JWTSecret),
	}
}

// Claims represents JWT claims structure
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken produces a signed HS256 token encoding the username and user
// id, expiring after the configured lifetime (one hour by default).
func (a *AuthService) IssueToken(userID uuid.UUID, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(a.config.Auth.JWTExpiration)

	claims := &Claims{
		UserID:   userID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError("failed to sign token").WithCause(err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates and parses a token, distinguishing expiry from
// signature failures.
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.NewTokenExpiredError().WithCause(err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.NewBadSignatureError().WithCause(err)
		default:
			return nil, apperrors.NewUnauthorizedError("invalid token").WithCause(err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}

	return claims, nil
}

// TokenFromRequest extracts the token, preferring the auth cookie over the
// Authorization header.
func (a *AuthService) TokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(a.config.Auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1], nil
		}
	}

	return "", apperrors.NewTokenMissingError()
}

// CookieName returns the name of the auth token cookie
func (a *AuthService) CookieName() string {
	return a.config.Auth.CookieName
}

// SetAuthCookie writes the token cookie with a 1-hour absolute expiry
func (a *AuthService) SetAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.Auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   a.config.Auth.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie deletes the token cookie on logout
func (a *AuthService) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.config.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.config.Auth.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
