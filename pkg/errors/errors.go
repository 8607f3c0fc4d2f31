// Package errors defines the error taxonomy shared by the feature engine.
// Callers match failures with errors.Is against the sentinels below; the
// FeatureError wrapper carries the offending key or parameter.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration     = errors.New("invalid configuration")
	ErrUnknownKey        = errors.New("unknown key")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrEmptyInput        = errors.New("empty input")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrExtractorMismatch = errors.New("features come from different extractors")
	ErrInvalidInput      = errors.New("invalid input")
	ErrCacheMiss         = errors.New("cache miss")
)

type FeatureError struct {
	Err     error
	Message string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *FeatureError {
	return &FeatureError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *FeatureError {
	return &FeatureError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// Kind returns the sentinel a failure belongs to, or nil when err does not
// belong to the taxonomy.
func Kind(err error) error {
	var featErr *FeatureError
	if errors.As(err, &featErr) {
		return featErr.Err
	}

	switch {
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration
	case errors.Is(err, ErrUnknownKey):
		return ErrUnknownKey
	case errors.Is(err, ErrIndexOutOfRange):
		return ErrIndexOutOfRange
	case errors.Is(err, ErrEmptyInput):
		return ErrEmptyInput
	case errors.Is(err, ErrAuthorNotFound):
		return ErrAuthorNotFound
	case errors.Is(err, ErrExtractorMismatch):
		return ErrExtractorMismatch
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ErrCacheMiss):
		return ErrCacheMiss
	default:
		return nil
	}
}
