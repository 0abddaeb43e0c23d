package mnist

import "errors"

// Common errors.
var (
	ErrBadMagic       = errors.New("invalid IDX magic number")
	ErrCountMismatch  = errors.New("image count does not match label count")
	ErrHeaderTooLarge = errors.New("IDX header dimensions too large")
)
