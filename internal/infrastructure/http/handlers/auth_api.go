// Package handlers provides HTTP handlers for authentication API endpoints
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/recetaria/v1/internal/application/user"
	"github.com/recetaria/v1/internal/infrastructure/security"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	userService *user.UserService
	authService *security.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(
	userService *user.UserService,
	authService *security.AuthService,
	logger *zap.Logger,
) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response with token
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *user.UserDTO `json:"user"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(h.logger, w, apperrors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.userService.Register(r.Context(), user.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	h.logger.Info("User registered", zap.String("username", dto.Username))

	writeJSON(h.logger, w, http.StatusCreated, dto)
}

// Login handles POST /api/v1/auth/login. A successful login issues a JWT,
// sets it as an HTTP-only cookie and returns it in the body for API clients.
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, apperrors.NewBadRequestError("invalid JSON payload"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(h.logger, w, apperrors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.userService.Login(r.Context(), user.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	token, expiresAt, err := h.authService.IssueToken(dto.ID, dto.Username)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	h.authService.SetAuthCookie(w, token, expiresAt)

	h.logger.Info("User logged in", zap.String("username", dto.Username))

	writeJSON(h.logger, w, http.StatusOK, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        dto,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
