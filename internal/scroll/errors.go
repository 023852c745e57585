// internal/scroll/errors.go
package scroll

import "errors"

var (
	// ErrInvalidTarget is returned by Compute when the target is not an element.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidOption is returned when an alignment or scroll mode name is not recognised.
	ErrInvalidOption = errors.New("invalid scroll option")
)
