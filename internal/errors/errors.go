package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidFilePath     = errors.New("invalid file path")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrInvalidBytes        = errors.New("byte sequence is invalid for the encoding")
	ErrNoPayload           = errors.New("no __NEXT_DATA__ script block found")
	ErrEmptyInput          = errors.New("payload is empty or contains only whitespace")
	ErrInvalidJSON         = errors.New("invalid JSON format")
	ErrMultipleJSON        = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrExhausted           = errors.New("every encoding failed")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// ErrorType categorizes errors by the stage that produced them
type ErrorType string

const (
	ErrorTypeRead    ErrorType = "read"
	ErrorTypeDecode  ErrorType = "decode"
	ErrorTypeLocate  ErrorType = "locate"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewReadError creates a new error related to opening or reading the input file
func NewReadError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeRead, Message: message, Err: err}
}

// NewDecodeError creates a new error related to text decoding
func NewDecodeError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDecode, Message: message, Err: err}
}

// NewLocateError creates a new error related to finding the embedded script block
func NewLocateError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeLocate, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// TypeOf returns the stage recorded on err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeRead:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeDecode:
			return fmt.Sprintf("Decoding error: %s", appErr.Message)
		case ErrorTypeLocate:
			return fmt.Sprintf("Extraction error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrUnsupportedEncoding) {
		return "Error: Unsupported encoding. Use utf-8, cp950, latin-1, cp1252 or auto."
	}
	if errors.Is(err, ErrNoPayload) {
		return "Error: The page does not contain a __NEXT_DATA__ script block."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The embedded payload is not valid JSON."
	}
	if errors.Is(err, ErrExhausted) {
		return "Error: Extraction failed with every configured encoding."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
