package undo

import "errors"

var (
	// ErrInvalidMacroState is returned by BeginMacro while a macro is already
	// open and by EndMacro when none is open.
	ErrInvalidMacroState = errors.New("invalid macro state")
)
