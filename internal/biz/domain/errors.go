package domain

import (
	"errors"
	"fmt"
)

// APIError is a server-rejected request: a machine error code, the HTTP
// status, and the server's human-readable message.
type APIError struct {
	Code    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %s (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
}

// GenericErrorMessage is the last-resort user-facing error string.
const GenericErrorMessage = "Something went wrong. Please try again."

// ErrorCatalog maps server error codes to localized strings.
type ErrorCatalog map[string]string

// DefaultErrorCatalog covers the codes the client acts on. Codes absent
// here fall through to the server message.
var DefaultErrorCatalog = ErrorCatalog{
	"INVALID_PIN":      "The PIN you entered is incorrect.",
	"PIN_REQUIRED":     "A PIN is required for this action.",
	"SCHEDULE_INVALID": "The schedule is not valid. Check the date and time.",
	"IM_NOT_FOUND":     "No initial message is set up yet.",
	"UNAUTHORIZED":     "Your session expired. Please sign in again.",
	"RATE_LIMITED":     "Too many requests. Wait a moment and try again.",
}

// TranslateError funnels every API error into a display string with a
// three-tier fallback: localized message for the server error code, the
// raw server message, then the generic string. It never fails itself;
// any error, nil catalog included, yields a usable string.
func TranslateError(err error, catalog ErrorCatalog) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg, ok := catalog[apiErr.Code]; ok && msg != "" {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return GenericErrorMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
