package undo

import (
	"errors"
	"fmt"
)

// Command is a reversible unit of change.
type Command interface {
	// Redo applies the change. Pushing a command onto a stack calls Redo.
	Redo() error
	// Undo reverts the change.
	Undo() error
	// Text is the human readable label shown by UndoText/RedoText.
	Text() string
}

// PropertyCommand replays a value change through a setter.
type PropertyCommand[T any] struct {
	text     string
	set      func(T) error
	oldValue T
	newValue T
}

// NewPropertyCommand returns a command that sets newValue on Redo and
// oldValue on Undo. An empty text yields a generic "value changed" label.
func NewPropertyCommand[T any](set func(T) error, oldValue, newValue T, text string) *PropertyCommand[T] {
	if text == "" {
		text = fmt.Sprintf("value changed from %v to %v", oldValue, newValue)
	}
	return &PropertyCommand[T]{text: text, set: set, oldValue: oldValue, newValue: newValue}
}

// Redo sets the new value.
func (c *PropertyCommand[T]) Redo() error { return c.set(c.newValue) }

// Undo restores the old value.
func (c *PropertyCommand[T]) Undo() error { return c.set(c.oldValue) }

// Text returns the command label.
func (c *PropertyCommand[T]) Text() string { return c.text }

// OldValue returns the value restored by Undo.
func (c *PropertyCommand[T]) OldValue() T { return c.oldValue }

// NewValue returns the value applied by Redo.
func (c *PropertyCommand[T]) NewValue() T { return c.newValue }

// FunctionCommand pairs two closures.
type FunctionCommand struct {
	text   string
	doFn   func() error
	undoFn func() error
}

// NewFunctionCommand returns a command calling doFn on Redo and undoFn on Undo.
func NewFunctionCommand(text string, doFn, undoFn func() error) *FunctionCommand {
	return &FunctionCommand{text: text, doFn: doFn, undoFn: undoFn}
}

// Redo calls the do closure.
func (c *FunctionCommand) Redo() error { return c.doFn() }

// Undo calls the undo closure.
func (c *FunctionCommand) Undo() error { return c.undoFn() }

// Text returns the command label.
func (c *FunctionCommand) Text() string { return c.text }

// Macro is an ordered group of commands treated as one unit.
type Macro struct {
	text     string
	commands []Command
}

// NewMacro returns an empty macro labelled text.
func NewMacro(text string) *Macro {
	return &Macro{text: text}
}

// Append adds cmd to the end of the macro without executing it.
func (m *Macro) Append(cmd Command) { m.commands = append(m.commands, cmd) }

// Len returns the number of grouped commands.
func (m *Macro) Len() int { return len(m.commands) }

// Commands returns the grouped commands in insertion order.
func (m *Macro) Commands() []Command {
	out := make([]Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// Text returns the macro label, falling back to the first command's label.
func (m *Macro) Text() string {
	if m.text != "" || len(m.commands) == 0 {
		return m.text
	}
	return m.commands[0].Text()
}

// Redo applies every command in insertion order. A failing command does not
// stop the remaining ones; all failures are joined.
func (m *Macro) Redo() error {
	var errs []error
	for _, c := range m.commands {
		if err := c.Redo(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Undo reverts every command in reverse insertion order. A failing command
// does not stop the remaining ones; all failures are joined.
func (m *Macro) Undo() error {
	var errs []error
	for i := len(m.commands) - 1; i >= 0; i-- {
		if err := m.commands[i].Undo(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Macro) popLast() Command {
	last := m.commands[len(m.commands)-1]
	m.commands = m.commands[:len(m.commands)-1]
	return last
}
