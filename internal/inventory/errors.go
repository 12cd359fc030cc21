package inventory

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// ValidationError reports bad operator input before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
