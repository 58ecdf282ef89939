package columns

import (
	"errors"
	"fmt"
)

// Common errors returned by the columns package.
var (
	// ErrInvalidColumnReference is returned when an operation names a column
	// id that is not known to the registry or the current order.
	ErrInvalidColumnReference = errors.New("invalid column reference")

	// ErrDuplicateColumn is returned when the same id is registered twice.
	ErrDuplicateColumn = errors.New("duplicate column id")

	// ErrNoAccessor is returned when a descriptor has no accessor.
	ErrNoAccessor = errors.New("column has no accessor")
)

func invalidRef(id, suggestion string) error {
	if suggestion != "" {
		return fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidColumnReference, id, suggestion)
	}
	return fmt.Errorf("%w: %q", ErrInvalidColumnReference, id)
}
