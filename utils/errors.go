package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Domain errors returned by the configuration steps, the wizard and the
// messaging panel.
var (
	// Teams
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamUndeletable = errors.New("team cannot be deleted")
	ErrMemberNotFound  = errors.New("member not found in directory")

	// Records
	ErrCategoryNotFound    = errors.New("category not found")
	ErrServiceTypeNotFound = errors.New("service type not found")
	ErrStatusNotFound      = errors.New("status not found")
	ErrFieldNotFound       = errors.New("form field not found")
	ErrCoreField           = errors.New("core form fields cannot be deleted or renamed")
	ErrDuplicateSlug       = errors.New("another record already uses this name")

	// Validation
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidFieldType = errors.New("invalid form field type")
	ErrInvalidInput     = errors.New("invalid input")

	// Wizard
	ErrStepIncomplete  = errors.New("step is incomplete")
	ErrWizardFinished  = errors.New("wizard already finished")
	ErrSessionNotFound = errors.New("session not found")

	// Assistant and messaging
	ErrEmptyMessage         = errors.New("message is empty")
	ErrSessionClosed        = errors.New("session is closed")
	ErrConversationNotFound = errors.New("conversation not found")
)

const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeForbidden      = "forbidden"
	ErrCodeIncomplete     = "step_incomplete"
	ErrCodeInternal       = "internal_server_error"
)

// AppError carries an HTTP status and a stable code alongside the cause.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StepIncompleteError lists what is missing on a wizard step.
type StepIncompleteError struct {
	Step     int
	Problems []string
}

func (e *StepIncompleteError) Error() string {
	return fmt.Sprintf("step %d is incomplete: %s", e.Step, strings.Join(e.Problems, "; "))
}

func (e *StepIncompleteError) Unwrap() error {
	return ErrStepIncomplete
}

// ToAppError maps domain errors onto HTTP statuses.
func ToAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	status, code := fiber.StatusInternalServerError, ErrCodeInternal
	switch {
	case errors.Is(err, ErrTeamNotFound), errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrServiceTypeNotFound),
		errors.Is(err, ErrStatusNotFound), errors.Is(err, ErrFieldNotFound),
		errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrConversationNotFound):
		status, code = fiber.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, ErrTeamUndeletable), errors.Is(err, ErrCoreField):
		status, code = fiber.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, ErrWizardFinished), errors.Is(err, ErrSessionClosed):
		status, code = fiber.StatusConflict, ErrCodeConflict
	case errors.Is(err, ErrStepIncomplete):
		status, code = fiber.StatusUnprocessableEntity, ErrCodeIncomplete
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidFieldType),
		errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEmptyMessage):
		status, code = fiber.StatusBadRequest, ErrCodeValidation
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "An unexpected error occurred"
	}
	return &AppError{StatusCode: status, Code: code, Message: msg, Err: err}
}
