// Package apperr defines the error types the HTTP layer maps to status codes.
package apperr

import "fmt"

// NotFoundError signals that a referenced entity does not exist
type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key '%v' was not found", e.Entity, e.Key)
}

// NotFound builds a NotFoundError for the given entity and key
func NotFound(entity string, key interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// UnauthorizedError signals that the caller does not own the target entity
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "you are not authorized to perform this action"
	}
	return e.Message
}

// Unauthorized builds an UnauthorizedError with the default message
func Unauthorized() *UnauthorizedError {
	return &UnauthorizedError{}
}

// BadRequestError signals invalid caller input
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// BadRequest builds a BadRequestError with the given message
func BadRequest(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

// ConflictError signals a uniqueness violation
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError with the given message
func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}
