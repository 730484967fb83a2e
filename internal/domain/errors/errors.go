package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDeadlinePassed     = errors.New("campaign deadline has passed")
	ErrDeadlineNotReached = errors.New("campaign deadline not reached")
	ErrGoalNotMet         = errors.New("campaign goal not met")
	ErrGoalMet            = errors.New("campaign goal met")
	ErrAlreadySettled     = errors.New("already settled")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrTransferFailed     = errors.New("asset transfer failed")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches a message to a domain sentinel so callers can still errors.Is on it.
func Wrap(sentinel error, message string) *AppError {
	status, code := Classify(sentinel)
	return NewAppError(status, code, message, sentinel)
}

// Classify maps a domain error to its HTTP status and stable error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "ERR_NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "ERR_INVALID_INPUT"
	case errors.Is(err, ErrDeadlinePassed):
		return http.StatusConflict, "ERR_DEADLINE_PASSED"
	case errors.Is(err, ErrDeadlineNotReached):
		return http.StatusConflict, "ERR_DEADLINE_NOT_REACHED"
	case errors.Is(err, ErrGoalNotMet):
		return http.StatusConflict, "ERR_GOAL_NOT_MET"
	case errors.Is(err, ErrGoalMet):
		return http.StatusConflict, "ERR_GOAL_MET"
	case errors.Is(err, ErrAlreadySettled):
		return http.StatusConflict, "ERR_ALREADY_SETTLED"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "ERR_UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "ERR_FORBIDDEN"
	case errors.Is(err, ErrTransferFailed):
		return http.StatusUnprocessableEntity, "ERR_TRANSFER_FAILED"
	default:
		return http.StatusInternalServerError, "ERR_INTERNAL"
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return Wrap(ErrNotFound, message)
}

func BadRequest(message string) *AppError {
	return Wrap(ErrInvalidInput, message)
}

func Unauthorized(message string) *AppError {
	return Wrap(ErrUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return Wrap(ErrForbidden, message)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", err)
}
