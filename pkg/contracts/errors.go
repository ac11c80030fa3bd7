package contracts

import (
	"errors"
	"fmt"
)

// Error kinds recognized across the core. Callers match them with errors.Is.
var (
	// ErrValidation marks a commit attempted with an uncommittable draft.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a targeted operation on an unknown record id.
	// Delete is exempt and is a no-op instead.
	ErrNotFound = errors.New("record not found")
	// ErrExtraction marks a file that could not be read at all.
	ErrExtraction = errors.New("extraction failed")
	// ErrPersistence marks a storage write failure. The in-memory state
	// already reflects the mutation when this is returned.
	ErrPersistence = errors.New("persistence failed")
)

// KindError pairs one of the sentinel kinds above with detail.
type KindError struct {
	Kind error
	Msg  string
}

func (e *KindError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *KindError) Unwrap() error { return e.Kind }

func validationf(format string, args ...any) error {
	return &KindError{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds an ErrNotFound with detail.
func NotFoundf(format string, args ...any) error {
	return &KindError{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Extractionf builds an ErrExtraction with detail.
func Extractionf(format string, args ...any) error {
	return &KindError{Kind: ErrExtraction, Msg: fmt.Sprintf(format, args...)}
}

// Persistencef builds an ErrPersistence wrapping the underlying cause.
func Persistencef(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, fmt.Sprintf(format, args...), cause)
}
