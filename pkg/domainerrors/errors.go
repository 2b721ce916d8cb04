// Package domainerrors defines coded errors that cross the transport boundary.
// Handlers translate them into JSON error envelopes; internal causes are never
// leaked for internal-class codes.
package domainerrors

import "net/http"

// Code classifies an error for HTTP translation and logging.
type Code string

const (
	CodeBadRequest  Code = "bad_request"
	CodeNotFound    Code = "not_found"
	CodeUnavailable Code = "service_unavailable"
	CodeInternal    Code = "internal_error"
)

// Error carries a code plus a human-readable description.
type Error struct {
	Code        Code
	Description string
}

func (e Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// New constructs a coded error.
func New(code Code, description string) Error {
	return Error{Code: code, Description: description}
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
