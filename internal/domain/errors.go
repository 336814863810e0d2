package domain

import "errors"

var (
	ErrInvalidViewID      = errors.New("invalid view id")
	ErrInvalidField       = errors.New("invalid field")
	ErrInvalidWidth       = errors.New("invalid width")
	ErrDuplicateField     = errors.New("duplicate field")
	ErrInvalidColumnState = errors.New("invalid column state")
)
