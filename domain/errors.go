package domain

import (
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	// ErrCodeSyntaxError: malformed or unrecognized input during parsing
	ErrCodeSyntaxError = "SYNTAX_ERROR"
	// ErrCodeStructuralError: valid syntax but invalid control flow,
	// e.g. break outside a loop
	ErrCodeStructuralError = "STRUCTURAL_ERROR"
	// ErrCodeNotFound: graph queried with an unknown block id
	ErrCodeNotFound = "NOT_FOUND"

	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewSyntaxError creates a syntax error for the given source
func NewSyntaxError(source string, cause error) error {
	return NewDomainError(ErrCodeSyntaxError, fmt.Sprintf("failed to parse: %s", source), cause)
}

// NewStructuralError creates a structural error for the given source
func NewStructuralError(source string, cause error) error {
	return NewDomainError(ErrCodeStructuralError, fmt.Sprintf("invalid control flow: %s", source), cause)
}

// NewNotFoundError creates a not found error for a graph query
func NewNotFoundError(message string, cause error) error {
	return NewDomainError(ErrCodeNotFound, message, cause)
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}
