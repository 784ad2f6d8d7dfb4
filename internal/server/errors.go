// Package server provides the HTTP REST API for the orientation platform.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/survey"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the authenticated user lacks the required role
type ErrForbidden struct {
	Role string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("requires role: %s", e.Role)
}

// ErrSessionNotFound indicates the orientation session was not found
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrActiveSessionExists indicates the user already has an uncompleted session
type ErrActiveSessionExists struct {
	SessionID uuid.UUID
}

func (e *ErrActiveSessionExists) Error() string {
	return fmt.Sprintf("an active session already exists: %s", e.SessionID)
}

// ErrSessionCompleted indicates an answer submission against a session
// that has already been completed
type ErrSessionCompleted struct {
	SessionID uuid.UUID
}

func (e *ErrSessionCompleted) Error() string {
	return fmt.Sprintf("session is completed and no longer accepts answers: %s", e.SessionID)
}

// ErrQuestionNotFound indicates the referenced question does not exist
type ErrQuestionNotFound struct {
	QuestionID uuid.UUID
}

func (e *ErrQuestionNotFound) Error() string {
	return fmt.Sprintf("question not found: %s", e.QuestionID)
}

// ErrDuplicateCompletion indicates a completion attempt on an already
// completed session; completion is one-shot per session
type ErrDuplicateCompletion struct {
	SessionID uuid.UUID
}

func (e *ErrDuplicateCompletion) Error() string {
	return fmt.Sprintf("session already completed: %s", e.SessionID)
}

// ErrAlreadyFavorite indicates the field is already in the user's favorites
type ErrAlreadyFavorite struct {
	FieldID uuid.UUID
}

func (e *ErrAlreadyFavorite) Error() string {
	return fmt.Sprintf("field already in favorites: %s", e.FieldID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalidAnswer *survey.InvalidAnswerError
	if errors.As(err, &invalidAnswer) {
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrDuplicateCompletion, *ErrAlreadyFavorite, *ErrSessionCompleted:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrSessionNotFound, *ErrQuestionNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrActiveSessionExists:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
