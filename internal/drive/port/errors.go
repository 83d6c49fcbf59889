package port

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds. The transport maps each kind to one status code.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrRateLimited      = errors.New("rate limited")
	ErrStreamFailure    = errors.New("stream failure")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrGone             = errors.New("gone")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// Error is a failure with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds a typed error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

const QuotaExceededMessage = "You have reached your quota. Try again later."

// RateLimitError reports an exhausted quota window.
type RateLimitError struct {
	Count      int
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return QuotaExceededMessage
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// RetryAfterSeconds rounds the retry delay up to whole seconds.
func (e *RateLimitError) RetryAfterSeconds() int {
	secs := int(e.RetryAfter / time.Second)
	if e.RetryAfter%time.Second != 0 {
		secs++
	}
	return secs
}

// StreamError wraps a failure that happened while archive bytes were being produced.
func StreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStreamFailure, op, err)
}
