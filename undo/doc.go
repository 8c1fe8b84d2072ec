// Package undo implements a command-based undo/redo stack with atomic macro
// (compound) commands.
//
// The stack keeps two bounded sequences: history (most recent first) and
// future. Pushing a command executes it, records it at the front of history
// and clears the future. Undo moves the front history entry to the future and
// reverts it; Redo moves it back and re-applies it.
//
// A macro groups every command pushed between BeginMacro and EndMacro into a
// single entry. While a macro is open nothing can be undone or redone.
//
//	stack := undo.NewStack()
//	_ = stack.BeginMacro("Setting bounds")
//	_ = stack.Push(setMin)
//	_ = stack.Push(setMax)
//	_ = stack.EndMacro()
//	_ = stack.Undo() // reverts setMax, then setMin
//
// The stack is not safe for concurrent use.
package undo
