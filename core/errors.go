package core

import "errors"

// ErrUnsupportedOperation is returned in debug mode when an operation is not
// permitted in the current state of an object (for example setting a
// disabled descriptor).
var ErrUnsupportedOperation = errors.New("unsupported operation")
