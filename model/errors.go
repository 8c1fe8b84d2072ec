package model

import "errors"

// ErrNotFound is returned when a named component or parameter does not exist.
var ErrNotFound = errors.New("not found")
