package api

import (
	"fmt"
	"net/http"
)

// Error type strings used in the gateway's own error envelopes. Upstream
// error bodies are relayed untouched and never rewritten into these.
const (
	TypeInvalidRequest = "invalid_request_error"
	TypeNotFound       = "not_found_error"
	TypeAuthentication = "authentication_error"
	TypeRateLimit      = "rate_limit_error"
	TypeInternal       = "internal_error"
)

// ErrorBody is the wire shape for errors the gateway fabricates itself:
// {"error":{"message":"...","type":"..."}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Error is the gateway's typed error: an HTTP status plus the envelope
// fields, with an optional wrapped cause for server-side logging.
type Error struct {
	Status  int
	Type    string
	Message string
	Log     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Log
}

// Body returns the JSON envelope for this error.
func (e *Error) Body() ErrorBody {
	return ErrorBody{Error: ErrorDetail{Message: e.Message, Type: e.Type}}
}

// MissingModelError reports a completion request without a string "model" field.
func MissingModelError() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Type:    TypeInvalidRequest,
		Message: "Missing model field",
	}
}

// ModelNotFoundError reports a model no configured provider serves.
// The model name is kept in the message for diagnostics.
func ModelNotFoundError(model string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Type:    TypeNotFound,
		Message: fmt.Sprintf("Model '%s' not found", model),
	}
}

// UnauthorizedError reports a missing or invalid gateway credential.
func UnauthorizedError(msg string) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Type:    TypeAuthentication,
		Message: msg,
	}
}

// ForwardError wraps a transport failure while relaying a completion
// request upstream. This is the one case where the gateway fabricates an
// error body instead of relaying one.
func ForwardError(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Type:    TypeInternal,
		Message: fmt.Sprintf("Failed to forward request: %v", err),
		Log:     err,
	}
}

// InternalError wraps any other server-side failure.
func InternalError(msg string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Type:    TypeInternal,
		Message: msg,
		Log:     err,
	}
}
