package errors

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	CategoryLoad            ErrorCategory = "load"
	CategoryNotLoaded       ErrorCategory = "not_loaded"
	CategoryUnknownCategory ErrorCategory = "unknown_category"
	CategoryMissingField    ErrorCategory = "missing_field"
	CategoryValidation      ErrorCategory = "validation"
	CategoryStorage         ErrorCategory = "storage"
	CategoryInternal        ErrorCategory = "internal"
)

// AppError wraps errbuilder error with domain context. Field and Value carry
// the offending column/value for per-record errors so callers can surface a
// precise diagnostic without parsing the message.
type AppError struct {
	*errbuilder.ErrBuilder
	Category  ErrorCategory `json:"category"`
	Field     string        `json:"field,omitempty"`
	Value     string        `json:"value,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	codeStr := "INTERNAL_ERROR"
	switch e.Category {
	case CategoryLoad:
		codeStr = "LOAD_ERROR"
	case CategoryNotLoaded:
		codeStr = "NOT_LOADED"
	case CategoryUnknownCategory:
		codeStr = "UNKNOWN_CATEGORY"
	case CategoryMissingField:
		codeStr = "MISSING_FIELD"
	case CategoryValidation:
		codeStr = "VALIDATION_ERROR"
	case CategoryStorage:
		codeStr = "STORAGE_ERROR"
	}

	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from errbuilder with a category
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		Timestamp:  time.Now(),
	}
}

// NewLoadError creates a fatal artifact-load error. Startup must abort on it:
// serving predictions from a half-initialized bundle corrupts every result.
func NewLoadError(artifact string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("artifact", stderrors.New(artifact))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("failed to load %s artifact", artifact)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryLoad)
}

// NewNotLoadedError signals use of a component before initialization.
// Fatal to the call, not to the process.
func NewNotLoadedError(component string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s used before being fitted or loaded", component))

	appErr := NewAppError(builder, CategoryNotLoaded)
	appErr.Field = component
	return appErr
}

// NewUnknownCategoryError creates a typed per-request error for a categorical
// value outside the fitted vocabulary. It must never be silently mapped to a
// code; the caller decides whether to reject or re-bucket the record.
func NewUnknownCategoryError(column, value string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("column", stderrors.New(column))
	errorMap.Set("value", stderrors.New(value))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown category %q for column %q", value, column)).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	appErr := NewAppError(builder, CategoryUnknownCategory)
	appErr.Field = column
	appErr.Value = value
	return appErr
}

// NewMissingFieldError creates a per-request error for an attribute that is
// absent and not coverable by imputation
func NewMissingFieldError(field string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("required field %q is missing", field))

	appErr := NewAppError(builder, CategoryMissingField)
	appErr.Field = field
	return appErr
}

// NewValidationError creates a validation error for malformed attribute values
func NewValidationError(message string, field, value string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if field != "" || value != "" {
		errorMap := errbuilder.ErrorMap{}
		if field != "" {
			errorMap.Set("field", stderrors.New(field))
		}
		if value != "" {
			errorMap.Set("value", stderrors.New(value))
		}
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	appErr := NewAppError(builder, CategoryValidation)
	appErr.Field = field
	appErr.Value = value
	return appErr
}

// NewStorageError creates a storage error
func NewStorageError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryStorage)
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryInternal)
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCategory(err error, category ErrorCategory) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Category == category
}

// IsLoadError reports whether err is a fatal artifact-load error
func IsLoadError(err error) bool { return hasCategory(err, CategoryLoad) }

// IsNotLoaded reports whether err signals use before initialization
func IsNotLoaded(err error) bool { return hasCategory(err, CategoryNotLoaded) }

// IsUnknownCategory reports whether err is an unseen-category rejection
func IsUnknownCategory(err error) bool { return hasCategory(err, CategoryUnknownCategory) }

// IsMissingField reports whether err is a missing-attribute rejection
func IsMissingField(err error) bool { return hasCategory(err, CategoryMissingField) }

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return NewAppError(ebErr, CategoryInternal)
	}

	return NewInternalError("unexpected error", err)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	contextMsg := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", contextMsg, err)
}
