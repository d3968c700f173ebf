package entries

import "errors"

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidEntry  = errors.New("invalid entry")
	ErrBatchWrite    = errors.New("recurrence batch write failed")
)

// ValidationError reports a rejected field. It matches ErrInvalidEntry with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntry
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
