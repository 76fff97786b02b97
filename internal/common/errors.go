package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Kind    error
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Error kinds. A run aborts on any of these; a field that was not found is not an error.
var (
	ErrInput           = errors.New("input error")
	ErrSchema          = errors.New("schema error")
	ErrExternalService = errors.New("external service error")
)

// Error codes carried in AppError.Code
const (
	CodeInput           = "INPUT_ERROR"
	CodeSchema          = "SCHEMA_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeConfig          = "CONFIG_ERROR"
)

// Error constructors
func NewAppError(kind error, code, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInputError flags an unreadable or empty document, or OCR that produced nothing.
func NewInputError(message string, cause error) *AppError {
	return NewAppError(ErrInput, CodeInput, message, cause)
}

// NewSchemaError flags an LLM response that is missing required keys.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrSchema, CodeSchema, message, cause)
}

// NewExternalServiceError flags a failed or unreachable OCR or LLM call.
func NewExternalServiceError(message string, cause error) *AppError {
	return NewAppError(ErrExternalService, CodeExternalService, message, cause)
}

func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrInput, CodeConfig, message, cause)
}

func IsInput(err error) bool           { return errors.Is(err, ErrInput) }
func IsSchema(err error) bool          { return errors.Is(err, ErrSchema) }
func IsExternalService(err error) bool { return errors.Is(err, ErrExternalService) }

// ExitCode maps an error kind to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsInput(err):
		return 2
	case IsSchema(err):
		return 3
	case IsExternalService(err):
		return 4
	default:
		return 1
	}
}
