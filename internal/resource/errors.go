package resource

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no search root and no bundle candidate holds
// the configuration resource.
var ErrNotFound = errors.New("application configuration not found")

// UnsupportedSchemeError is returned when a locator carries a scheme no
// component can serve.
type UnsupportedSchemeError struct {
	Scheme  string
	Locator string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported deployment scheme '%s' in locator %s", e.Scheme, e.Locator)
}
