package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	catalog := ErrorCatalog{
		"SCHEDULE_INVALID": "That schedule combination is not allowed.",
	}

	t.Run("localized code", func(t *testing.T) {
		err := &APIError{Code: "SCHEDULE_INVALID", Status: 422, Message: "invalid combination"}
		assert.Equal(t, "That schedule combination is not allowed.", TranslateError(err, catalog))
	})

	t.Run("falls back to server message", func(t *testing.T) {
		err := &APIError{Code: "UNKNOWN_CODE", Status: 400, Message: "recipients limit exceeded"}
		assert.Equal(t, "recipients limit exceeded", TranslateError(err, catalog))
	})

	t.Run("falls back to generic", func(t *testing.T) {
		err := &APIError{Code: "UNKNOWN_CODE", Status: 500}
		assert.Equal(t, GenericErrorMessage, TranslateError(err, catalog))
	})

	t.Run("wrapped api error", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", &APIError{Code: "SCHEDULE_INVALID", Status: 422})
		assert.Equal(t, "That schedule combination is not allowed.", TranslateError(err, catalog))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "connection refused", TranslateError(errors.New("connection refused"), catalog))
	})

	t.Run("nil catalog never panics", func(t *testing.T) {
		err := &APIError{Code: "X", Status: 400, Message: "boom"}
		assert.Equal(t, "boom", TranslateError(err, nil))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "", TranslateError(nil, catalog))
	})
}
