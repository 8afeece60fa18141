// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	CodeTransportError ErrorCode = "TRANSPORT_ERROR"

	// Authentication errors
	CodeTokenMissing       ErrorCode = "TOKEN_MISSING"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeBadSignature       ErrorCode = "BAD_SIGNATURE"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Business logic errors
	CodeRecipeNotFound        ErrorCode = "RECIPE_NOT_FOUND"
	CodeUsernameAlreadyExists ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeZeroPortions          ErrorCode = "ZERO_PORTIONS"
	CodeMalformedDocument     ErrorCode = "MALFORMED_DOCUMENT"

	// AI generation errors
	CodeNoIngredients     ErrorCode = "NO_INGREDIENTS"
	CodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	CodeUpstreamError     ErrorCode = "UPSTREAM_ERROR"
	CodeEmptyResponse     ErrorCode = "EMPTY_RESPONSE"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeZeroPortions, CodeMalformedDocument,
		CodeNoIngredients, CodeUpstreamError, CodeEmptyResponse, CodeMalformedResponse:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenMissing, CodeTokenExpired, CodeBadSignature:
		return http.StatusUnauthorized
	case CodeNotFound, CodeRecipeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeUsernameAlreadyExists:
		return http.StatusConflict
	case CodeTransportError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAppError(CodeUnauthorized, message, "")
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Authentication errors

// NewTokenMissingError creates an error for requests carrying no token
func NewTokenMissingError() *AppError {
	return NewAppError(CodeTokenMissing, "Authentication token missing", "")
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError() *AppError {
	return NewAppError(CodeTokenExpired, "Authentication token expired", "")
}

// NewBadSignatureError creates an error for tokens whose signature does not verify
func NewBadSignatureError() *AppError {
	return NewAppError(CodeBadSignature, "Authentication token signature invalid", "")
}

// NewInvalidCredentialsError creates an invalid credentials error.
// The message is identical for unknown usernames and wrong passwords so the
// response never reveals which half failed.
func NewInvalidCredentialsError() *AppError {
	return NewAppError(
		CodeInvalidCredentials,
		"Invalid credentials",
		"The provided username or password is incorrect",
	)
}

// Business domain errors

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewUsernameAlreadyExistsError creates a username already exists error
func NewUsernameAlreadyExistsError(username string) *AppError {
	return NewAppError(
		CodeUsernameAlreadyExists,
		"Username already exists",
		"This username is already taken",
	).WithMetadata("username", username)
}

// NewZeroPortionsError creates an error for rescaling a recipe whose
// portion count is zero
func NewZeroPortionsError(recipeID string) *AppError {
	return NewAppError(
		CodeZeroPortions,
		"Recipe has zero portions",
		"Cannot rescale a recipe whose portion count is zero",
	).WithMetadata("recipe_id", recipeID)
}

// NewMalformedDocumentError creates an error for unparseable import documents
func NewMalformedDocumentError(cause error) *AppError {
	return NewAppError(
		CodeMalformedDocument,
		"Malformed import document",
		"The uploaded document could not be parsed",
	).WithCause(cause)
}

// AI generation errors

// NewNoIngredientsError creates an error for empty ingredient input
func NewNoIngredientsError() *AppError {
	return NewAppError(
		CodeNoIngredients,
		"No ingredients provided",
		"At least one ingredient is required to generate a recipe",
	)
}

// NewMissingCredentialError creates an error for a missing API credential.
// This is a server misconfiguration, not a user error.
func NewMissingCredentialError() *AppError {
	return NewAppError(
		CodeMissingCredential,
		"Completion API credential not configured",
		"",
	)
}

// NewUpstreamError creates an error surfacing the upstream status and body verbatim
func NewUpstreamError(status int, body string) *AppError {
	return NewAppError(
		CodeUpstreamError,
		"Completion API returned an error",
		fmt.Sprintf("%d - %s", status, body),
	).WithMetadata("status", status).WithMetadata("body", body)
}

// NewEmptyResponseError creates an error for a completion reply with no usable content
func NewEmptyResponseError() *AppError {
	return NewAppError(
		CodeEmptyResponse,
		"Completion API returned an empty response",
		"",
	)
}

// NewMalformedResponseError creates an error for unparseable completion replies
func NewMalformedResponseError(cause error) *AppError {
	return NewAppError(
		CodeMalformedResponse,
		"Completion API response could not be parsed",
		"",
	).WithCause(cause)
}

// NewTransportError creates an error for network failures reaching the completion API
func NewTransportError(cause error) *AppError {
	return NewAppError(
		CodeTransportError,
		"Completion API request failed",
		"",
	).WithCause(cause)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents the uniform client-facing error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToErrorResponse converts an AppError to the client-facing payload
func ToErrorResponse(err *AppError) ErrorResponse {
	msg := err.Message
	if err.Details != "" {
		msg = fmt.Sprintf("%s: %s", err.Message, err.Details)
	}
	return ErrorResponse{Error: msg}
}
