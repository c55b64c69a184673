package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/internal/database"
	"gorm.io/gorm"
)

// Sentinel errors for typed HTTP failures.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrServer         = errors.New("server error")
)

// APIError carries an explicit status code and a message safe to return at
// any status.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// AuthenticationError is a failed credential or token check.
type AuthenticationError struct {
	reason string
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(reason string) *AuthenticationError {
	return &AuthenticationError{reason: reason}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAuthentication.Error(), e.reason)
}

// Unwrap returns ErrAuthentication.
func (e *AuthenticationError) Unwrap() error { return ErrAuthentication }

// ServerError is a 5xx failure with a client-facing message.
type ServerError struct {
	statusCode int
	message    string
}

// NewServerError creates a new ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{statusCode: statusCode, message: message}
}

// StatusCode returns the HTTP status code.
func (e *ServerError) StatusCode() int { return e.statusCode }

// Message returns the client-facing message.
func (e *ServerError) Message() string { return e.message }

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.statusCode, e.message)
}

// Unwrap returns ErrServer.
func (e *ServerError) Unwrap() error { return ErrServer }

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	ID    string `json:"id,omitempty"`
}

const genericServerMessage = "internal server error"

// StatusFor maps an error to its HTTP status code and the message that may
// be shown to the caller. APIError and ServerError messages are shown as
// written; other 5xx causes are replaced by a generic message. 4xx messages
// are the text of the error that wrapped the sentinel, without the context
// added by outer layers.
func StatusFor(err error) (int, string) {
	var apiErr *APIError
	var serverErr *ServerError
	var authErr *AuthenticationError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code(), apiErr.Message()
	case errors.As(err, &serverErr):
		return serverErr.StatusCode(), serverErr.Message()
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, clientMessage(err, domain.ErrValidation)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, clientMessage(err, domain.ErrUnauthorized)
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, clientMessage(err, database.ErrNotFound)
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, clientMessage(err, domain.ErrConflict)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, clientMessage(err, gorm.ErrDuplicatedKey)
	}
	return http.StatusInternalServerError, genericServerMessage
}

// ServerMessage gives a 5xx failure a client-facing message. Errors that map
// to a 4xx status are returned unchanged.
func ServerMessage(err error, message string) error {
	if status, _ := StatusFor(err); status < http.StatusInternalServerError {
		return err
	}
	return NewAPIError(http.StatusInternalServerError, message, err)
}

// clientMessage walks the wrap chain to the error that wrapped sentinel
// directly and returns its text.
func clientMessage(err, sentinel error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Unwrap(e) == sentinel {
			return e.Error()
		}
	}
	return err.Error()
}

// WriteError writes err as an ErrorResponse with the mapped status code.
// Server errors are logged with the correlation id; client errors at debug.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := StatusFor(err)
	correlationID := GetCorrelationID(r.Context())

	if logger != nil {
		attrs := []any{
			"correlation_id", correlationID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "request error", attrs...)
		} else {
			logger.DebugContext(r.Context(), "request rejected", attrs...)
		}
	}

	WriteJSON(w, status, ErrorResponse{Error: message, ID: correlationID})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
