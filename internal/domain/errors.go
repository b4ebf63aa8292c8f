package domain

import "fmt"

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// Quiz specific errors
	ErrMalformedQuestion    ErrorCode = "MALFORMED_QUESTION"
	ErrNoQuestionsAvailable ErrorCode = "NO_QUESTIONS_AVAILABLE"
	ErrStoreFailure         ErrorCode = "STORE_FAILURE"
	ErrInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrStaleAnswer          ErrorCode = "STALE_ANSWER"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewMalformedQuestionError(key string) *DomainError {
	return NewError(ErrMalformedQuestion, fmt.Sprintf("question %s has no usable text", key), nil)
}

func NewStoreFailureError(message string, err error) *DomainError {
	return NewError(ErrStoreFailure, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}
