// Package easycore provides a high-level façade over the registry, the model
// layer and the sampling boundary. Most applications interact with this
// package by:
//  1. Creating a Session via New() (optionally overriding registry options)
//  2. Building parameters, descriptors and objects through the session
//  3. Editing values, grouping edits with Macro, and stepping through
//     history with Undo and Redo
//  4. Exporting the recorded script or a YAML snapshot of the model
//
// The façade delegates to core, variable, model and sampling while keeping
// setup concise.
package easycore

import (
	"errors"
	"io"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/logging"
	"github.com/EasyScience/EasyCore-sub001/model"
	"github.com/EasyScience/EasyCore-sub001/sampling"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// Options configures a Session.
type Options struct {
	// Registry options (history bound, script and undo toggles, debug).
	Registry core.Options

	// Cache is shared by every evaluator created from the session. Defaults
	// to a fresh cache.
	Cache *sampling.ParameterCache

	// Logger overrides Registry.Logger when set.
	Logger logging.Logger
}

// Session is the high-level façade aggregating one registry and its helpers.
type Session struct {
	opts Options
	reg  *core.Registry
}

// New creates a new Session with optional overrides.
func New(optFns ...func(o *Options)) *Session {
	opts := Options{
		Registry: core.DefaultOptions(),
		Cache:    sampling.NewParameterCache(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	reg := core.NewRegistry(func(o *core.Options) {
		*o = opts.Registry
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
	})

	return &Session{opts: opts, reg: reg}
}

// Registry returns the underlying registry.
func (s *Session) Registry() *core.Registry { return s.reg }

// Parameter creates a parameter in the session.
func (s *Session) Parameter(name string, value float64, optFns ...func(o *variable.ParameterOptions)) (*variable.Parameter, error) {
	return variable.NewParameter(s.reg, name, value, optFns...)
}

// Descriptor creates a descriptor in the session.
func (s *Session) Descriptor(name string, value any, optFns ...func(o *variable.DescriptorOptions)) (*variable.Descriptor, error) {
	return variable.NewDescriptor(s.reg, name, value, optFns...)
}

// Object creates a model object in the session.
func (s *Session) Object(class, name string, components ...model.Component) (*model.Object, error) {
	return model.NewObject(s.reg, class, name, components...)
}

// Collection creates a collection in the session.
func (s *Session) Collection(name string, items ...model.Component) (*model.Collection, error) {
	return model.NewCollection(s.reg, name, items...)
}

// Macro runs fn with every undoable change grouped under label. The macro is
// closed even when fn fails; the changes made before the failure stay
// recorded as one step.
func (s *Session) Macro(label string, fn func() error) error {
	st := s.reg.Stack()
	if err := st.BeginMacro(label); err != nil {
		return err
	}
	err := fn()
	return errors.Join(err, st.EndMacro())
}

// Undo reverts the most recent step.
func (s *Session) Undo() error { return s.reg.Stack().Undo() }

// Redo re-applies the most recently undone step.
func (s *Session) Redo() error { return s.reg.Stack().Redo() }

// History returns the undo labels, most recent first.
func (s *Session) History() []string { return s.reg.Stack().History() }

// Script returns the recorded statements in call order.
func (s *Session) Script() []string { return s.reg.Script().History() }

// WriteScript writes the recorded statements to w, one per line.
func (s *Session) WriteScript(w io.Writer) error {
	_, err := s.reg.Script().WriteTo(w)
	return err
}

// ExportYAML writes a snapshot of c to w.
func (s *Session) ExportYAML(w io.Writer, c model.Component) error {
	return model.ExportYAML(w, c)
}

// Evaluator creates a sampling evaluator of fn over src sharing the
// session's parameter cache.
func (s *Session) Evaluator(src sampling.Source, fn sampling.ModelFunc, optFns ...func(o *sampling.Options)) (*sampling.Evaluator, error) {
	return sampling.NewEvaluator(src, fn, append([]func(o *sampling.Options){
		func(o *sampling.Options) {
			o.Cache = s.opts.Cache
			o.Logger = s.reg.Logger()
		},
	}, optFns...)...)
}
