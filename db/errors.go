package db

import (
	"errors"
	"fmt"
)

// ErrInvalidID marks an identifier that is not valid ObjectID hex.
// Callers reject these before any lookup hits storage.
var ErrInvalidID = errors.New("invalid ID format")

// NotFoundError names the entity a lookup failed to find.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// ValidationError marks out-of-domain input to a create/update operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
