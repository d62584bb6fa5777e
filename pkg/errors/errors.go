// Package errors defines structured error types for the MRM Governance Service.
// Every error carries an application error code and an HTTP status so that
// handlers can map failures to responses without inspecting error strings.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/quantgov/mrm/pkg/constants"
)

// AppError represents a structured application error
type AppError struct {
	Code       constants.ErrorCode
	HTTPStatus int
	Message    string
	Details    map[string]any
	cause      error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain support
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if stderrors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// clone returns a shallow copy so the predefined error values stay immutable.
func (e *AppError) clone() *AppError {
	cp := *e
	if e.Details != nil {
		cp.Details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			cp.Details[k] = v
		}
	}
	return &cp
}

// WithError attaches a cause to the error chain
func (e *AppError) WithError(cause error) *AppError {
	cp := e.clone()
	cp.cause = cause
	return cp
}

// WithMessage replaces the message while keeping code and status
func (e *AppError) WithMessage(format string, args ...any) *AppError {
	cp := e.clone()
	cp.Message = fmt.Sprintf(format, args...)
	return cp
}

// WithDetails attaches structured context to the error
func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := e.clone()
	if cp.Details == nil {
		cp.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		cp.Details[k] = v
	}
	return cp
}

// WithDetail attaches a single key-value pair to the error
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// NewError creates a new AppError with the specified parameters
func NewError(code constants.ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// ================================================================================
// Predefined Errors
// ================================================================================

var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = NewError(constants.ErrCodeNotFound, http.StatusNotFound, "resource not found")

	// ErrDuplicateID indicates an identifier collision on registration.
	ErrDuplicateID = NewError(constants.ErrCodeDuplicateID, http.StatusConflict, "identifier already exists")

	// ErrInvalidRubric indicates a rubric that fails structural validation.
	ErrInvalidRubric = NewError(constants.ErrCodeInvalidRubric, http.StatusUnprocessableEntity, "rubric is invalid")

	// ErrPersistence indicates an underlying storage failure.
	ErrPersistence = NewError(constants.ErrCodePersistence, http.StatusInternalServerError, "persistence operation failed")

	// ErrValidation indicates a request that fails field validation.
	ErrValidation = NewError(constants.ErrCodeInvalidRequest, http.StatusBadRequest, "validation failed")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = NewError(constants.ErrCodeUnauthorized, http.StatusUnauthorized, "unauthorized")

	// ErrForbidden indicates valid credentials without the required role.
	ErrForbidden = NewError(constants.ErrCodeForbidden, http.StatusForbidden, "forbidden")

	// ErrInternal indicates an unexpected server-side failure.
	ErrInternal = NewError(constants.ErrCodeInternal, http.StatusInternalServerError, "internal server error")

	// ErrCache indicates a cache-layer failure. Callers treat it as best effort.
	ErrCache = NewError(constants.ErrCodeInternal, http.StatusInternalServerError, "cache operation failed")
)

// ================================================================================
// Domain-Specific Error Constructors
// ================================================================================

// ErrModelNotFound creates a not_found error for a missing model
func ErrModelNotFound(modelID string) *AppError {
	return ErrNotFound.
		WithMessage("model not found: %s", modelID).
		WithDetail("model_id", modelID)
}

// ErrTieringNotFound creates a not_found error for a model with no tiering runs
func ErrTieringNotFound(modelID string) *AppError {
	return ErrNotFound.
		WithMessage("no tiering record for model: %s", modelID).
		WithDetail("model_id", modelID)
}

// ErrDuplicateModelID creates a duplicate_id error for a registration collision
func ErrDuplicateModelID(modelID string) *AppError {
	return ErrDuplicateID.
		WithMessage("model already registered: %s", modelID).
		WithDetail("model_id", modelID)
}

// ErrRubricInvalid creates an invalid_rubric error with the violated constraint
func ErrRubricInvalid(reason string) *AppError {
	return ErrInvalidRubric.
		WithMessage("invalid rubric: %s", reason).
		WithDetail("reason", reason)
}

// ErrPersistenceFailure wraps a storage error with the failed operation name
func ErrPersistenceFailure(operation string, cause error) *AppError {
	return ErrPersistence.
		WithMessage("persistence failure during %s", operation).
		WithDetail("operation", operation).
		WithError(cause)
}

// ================================================================================
// Error Inspection Utilities
// ================================================================================

// AsAppError attempts to cast an error to *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsNotFound reports whether err is a not_found error
func IsNotFound(err error) bool {
	return hasCode(err, constants.ErrCodeNotFound)
}

// IsDuplicateID reports whether err is a duplicate_id error
func IsDuplicateID(err error) bool {
	return hasCode(err, constants.ErrCodeDuplicateID)
}

// IsInvalidRubric reports whether err is an invalid_rubric error
func IsInvalidRubric(err error) bool {
	return hasCode(err, constants.ErrCodeInvalidRubric)
}

// IsPersistence reports whether err is a persistence_failure error
func IsPersistence(err error) bool {
	return hasCode(err, constants.ErrCodePersistence)
}

func hasCode(err error, code constants.ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusOf maps any error to an HTTP status code
func HTTPStatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
