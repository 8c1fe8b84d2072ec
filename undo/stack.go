package undo

import (
	"fmt"
	"time"

	"github.com/EasyScience/EasyCore-sub001/logging"
)

// StackOptions configures a Stack.
type StackOptions struct {
	// MaxHistory bounds both history and future. Zero means unbounded.
	MaxHistory int
	// Enabled controls whether pushed commands are recorded. A disabled
	// stack still executes pushed commands.
	Enabled bool
	// Logger receives debug traces of stack operations. Defaults to NoOpLogger.
	Logger logging.Logger
}

// DefaultStackOptions returns an enabled, unbounded configuration.
func DefaultStackOptions() StackOptions {
	return StackOptions{Enabled: true, Logger: logging.NoOpLogger{}}
}

type commandLogger interface {
	LogCommand(op, label string, dur time.Duration, err error)
}

// Stack is a bounded undo/redo history with macro grouping.
type Stack struct {
	history    []Command
	future     []Command
	macro      *Macro
	maxHistory int
	enabled    bool
	running    bool
	logger     logging.Logger
}

// NewStack creates a stack using DefaultStackOptions with optional overrides.
func NewStack(optFns ...func(o *StackOptions)) *Stack {
	opts := DefaultStackOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxHistory < 0 {
		opts.MaxHistory = 0
	}
	return &Stack{maxHistory: opts.MaxHistory, enabled: opts.Enabled, logger: opts.Logger}
}

// Enabled reports whether pushes are recorded.
func (s *Stack) Enabled() bool { return s.enabled }

// SetEnabled toggles recording. Disabling while a macro is open closes it.
func (s *Stack) SetEnabled(enabled bool) {
	if s.enabled && !enabled && s.macro != nil {
		_ = s.EndMacro()
	}
	s.enabled = enabled
}

// MaxHistory returns the history bound (zero when unbounded).
func (s *Stack) MaxHistory() int { return s.maxHistory }

// Push executes cmd and records it. While a macro is open the command joins
// the macro instead of history. When the stack is disabled, or a command is
// already being applied by the stack, cmd is executed without being recorded.
// A command whose Redo fails is not recorded.
func (s *Stack) Push(cmd Command) error {
	if !s.enabled || s.running {
		return cmd.Redo()
	}
	if err := s.apply("push", cmd, cmd.Redo); err != nil {
		return err
	}
	if s.macro != nil {
		s.macro.Append(cmd)
		return nil
	}
	s.history = s.bounded(prepend(s.history, cmd))
	s.future = nil
	return nil
}

// Pop removes the most recent command without undoing it. It reaches into an
// open macro first and then into the front history entry, splitting a macro
// entry one command at a time. The caller is responsible for reverting any
// state the command changed.
func (s *Stack) Pop() (Command, bool) {
	if s.macro != nil && s.macro.Len() > 0 {
		return s.macro.popLast(), true
	}
	if len(s.history) == 0 {
		return nil, false
	}
	front := s.history[0]
	if m, ok := front.(*Macro); ok && m.Len() > 1 {
		return m.popLast(), true
	}
	s.history = s.history[1:]
	if m, ok := front.(*Macro); ok && m.Len() == 1 {
		return m.commands[0], true
	}
	return front, true
}

// Clear drops all history, future and any open macro.
func (s *Stack) Clear() {
	s.history = nil
	s.future = nil
	s.macro = nil
}

// Undo reverts the most recent history entry and moves it to the future.
// It is a no-op when history is empty or a macro is open.
func (s *Stack) Undo() error {
	if !s.CanUndo() {
		return nil
	}
	cmd := s.history[0]
	s.history = s.history[1:]
	s.future = s.bounded(prepend(s.future, cmd))
	return s.apply("undo", cmd, cmd.Undo)
}

// Redo re-applies the most recent future entry and moves it back to history.
// It is a no-op when the future is empty or a macro is open.
func (s *Stack) Redo() error {
	if !s.CanRedo() {
		return nil
	}
	cmd := s.future[0]
	s.future = s.future[1:]
	s.history = s.bounded(prepend(s.history, cmd))
	return s.apply("redo", cmd, cmd.Redo)
}

// BeginMacro opens a macro; subsequent pushes are grouped under label.
func (s *Stack) BeginMacro(label string) error {
	if s.macro != nil {
		return fmt.Errorf("begin macro %q while %q is open: %w", label, s.macro.text, ErrInvalidMacroState)
	}
	s.macro = NewMacro(label)
	s.logger.Debug("stack.macro.begin", "label", label)
	return nil
}

// EndMacro closes the open macro and records it as one history entry.
// An empty macro records nothing.
func (s *Stack) EndMacro() error {
	if s.macro == nil {
		return fmt.Errorf("end macro without begin: %w", ErrInvalidMacroState)
	}
	m := s.macro
	s.macro = nil
	s.logger.Debug("stack.macro.end", "label", m.Text(), "commands", m.Len())
	if m.Len() == 0 {
		return nil
	}
	s.history = s.bounded(prepend(s.history, Command(m)))
	s.future = nil
	return nil
}

// MacroOpen reports whether a macro is currently open.
func (s *Stack) MacroOpen() bool { return s.macro != nil }

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return len(s.history) > 0 && s.macro == nil }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return len(s.future) > 0 && s.macro == nil }

// UndoText returns the label of the entry Undo would revert, or "".
func (s *Stack) UndoText() string {
	if !s.CanUndo() {
		return ""
	}
	return s.history[0].Text()
}

// RedoText returns the label of the entry Redo would re-apply, or "".
func (s *Stack) RedoText() string {
	if !s.CanRedo() {
		return ""
	}
	return s.future[0].Text()
}

// History returns the labels of history entries, most recent first.
func (s *Stack) History() []string { return labels(s.history) }

// Future returns the labels of future entries, next redo first.
func (s *Stack) Future() []string { return labels(s.future) }

func (s *Stack) apply(op string, cmd Command, fn func() error) error {
	s.running = true
	start := time.Now()
	err := fn()
	s.running = false
	if cl, ok := s.logger.(commandLogger); ok {
		cl.LogCommand(op, cmd.Text(), time.Since(start), err)
	} else {
		s.logger.Debug("stack."+op, "label", cmd.Text(), "error", err)
	}
	return err
}

func (s *Stack) bounded(list []Command) []Command {
	if s.maxHistory > 0 && len(list) > s.maxHistory {
		return list[:s.maxHistory]
	}
	return list
}

func prepend(list []Command, cmd Command) []Command {
	out := make([]Command, 0, len(list)+1)
	out = append(out, cmd)
	return append(out, list...)
}

func labels(list []Command) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Text()
	}
	return out
}
