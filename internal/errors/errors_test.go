package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeRead,
				Message: "failed to open 'revenue_page.html'",
				Err:     ErrFileNotFound,
			},
			expected: "read: failed to open 'revenue_page.html': file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "invalid JSON syntax",
				Err:     nil,
			},
			expected: "parsing: invalid JSON syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := NewDecodeError("cp950 decode failed", ErrInvalidBytes)

	assert.Equal(t, ErrInvalidBytes, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, ErrInvalidBytes))
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: NewLocateError("no match", nil),
			target:   NewLocateError("different message", errors.New("some error")),
			expected: true,
		},
		{
			name:     "different type",
			appError: NewLocateError("no match", nil),
			target:   NewParsingError("no match", nil),
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: NewReadError("test message", nil),
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("attempt utf-8: %w", NewDecodeError("invalid", ErrInvalidBytes))

	assert.Equal(t, ErrorTypeDecode, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(errors.New("plain")))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(nil))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "read error",
			err:      NewReadError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "decode error",
			err:      NewDecodeError("bytes are not valid cp950", nil),
			expected: "Decoding error: bytes are not valid cp950",
		},
		{
			name:     "locate error",
			err:      NewLocateError("no script block", nil),
			expected: "Extraction error: no script block",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("invalid JSON syntax", nil),
			expected: "JSON parsing error: invalid JSON syntax",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown locator 'xpath'", nil),
			expected: "Configuration error: unknown locator 'xpath'",
		},
		{
			name:     "standard error - no payload",
			err:      ErrNoPayload,
			expected: "Error: The page does not contain a __NEXT_DATA__ script block.",
		},
		{
			name:     "standard error - invalid JSON",
			err:      ErrInvalidJSON,
			expected: "Error: The embedded payload is not valid JSON.",
		},
		{
			name:     "standard error - exhausted",
			err:      ErrExhausted,
			expected: "Error: Extraction failed with every configured encoding.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
