package core

import (
	"fmt"
	"strings"

	"github.com/EasyScience/EasyCore-sub001/graph"
	"github.com/EasyScience/EasyCore-sub001/logging"
	"github.com/EasyScience/EasyCore-sub001/script"
	"github.com/EasyScience/EasyCore-sub001/undo"
)

// Options configures a Registry.
type Options struct {
	// Logger receives debug traces. Defaults to NoOpLogger.
	Logger logging.Logger
	// MaxHistory bounds the undo stack. Zero means unbounded.
	MaxHistory int
	// Debug enables verbose traces and strict errors for no-op operations.
	Debug bool
	// ScriptEnabled controls whether observed accessors record statements.
	ScriptEnabled bool
	// UndoEnabled controls whether the undo stack records pushed commands.
	UndoEnabled bool
}

// DefaultOptions returns the baseline registry configuration.
func DefaultOptions() Options {
	return Options{
		Logger:        logging.NoOpLogger{},
		MaxHistory:    20,
		ScriptEnabled: true,
		UndoEnabled:   true,
	}
}

// Registry aggregates the provenance graph, the script store and the undo
// stack of one modelling session.
type Registry struct {
	*loggerAdapter
	graph  *graph.Graph
	script *script.Store
	stack  *undo.Stack
	debug  bool
	opts   Options
}

// NewRegistry creates a registry using DefaultOptions with optional overrides.
func NewRegistry(optFns ...func(o *Options)) *Registry {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	s := script.NewStore()
	s.SetEnabled(opts.ScriptEnabled)
	return &Registry{
		loggerAdapter: newLoggerAdapter(opts.Logger),
		graph:         graph.New(),
		script:        s,
		debug:         opts.Debug,
		opts:          opts,
	}
}

// Graph returns the provenance graph.
func (r *Registry) Graph() *graph.Graph { return r.graph }

// Script returns the script store.
func (r *Registry) Script() *script.Store { return r.script }

// Stack returns the undo stack, creating it on first use.
func (r *Registry) Stack() *undo.Stack {
	if r.stack == nil {
		r.stack = undo.NewStack(func(o *undo.StackOptions) {
			o.MaxHistory = r.opts.MaxHistory
			o.Enabled = r.opts.UndoEnabled
			o.Logger = r.Logger()
		})
	}
	return r.stack
}

// Debug reports whether debug mode is on.
func (r *Registry) Debug() bool { return r.debug }

// SetDebug toggles debug mode.
func (r *Registry) SetDebug(debug bool) { r.debug = debug }

// Register records obj as a created vertex. A non-nil parent gains an edge
// to obj.
func (r *Registry) Register(obj Object, parent Object) error {
	r.graph.AddVertex(obj.ID(), graph.RoleCreated)
	if parent == nil || isNil(parent) {
		return nil
	}
	if !r.graph.IsKnown(parent.ID()) {
		r.graph.AddVertex(parent.ID(), graph.RoleCreated)
	}
	return r.graph.AddEdge(parent.ID(), obj.ID())
}

// Alias returns the script name of obj. Created objects are named after
// their lower-cased class and their position among created objects; returned
// and argument objects use the store's ret/var prefixes and their position
// within their role. Unregistered objects fall back to the bare class name.
func (r *Registry) Alias(obj Object) string {
	key := obj.ID()
	role, ok := r.graph.RoleOf(key)
	if !ok {
		return strings.ToLower(obj.ClassName())
	}
	idx, _ := r.graph.IndexOf(role, key)
	switch role {
	case graph.RoleReturned:
		return fmt.Sprintf("%s%d", r.script.RetIdent(), idx)
	case graph.RoleArgument:
		return fmt.Sprintf("%s%d", r.script.VarIdent(), idx)
	default:
		return fmt.Sprintf("%s_%d", strings.ToLower(obj.ClassName()), idx)
	}
}

// Unsupported returns ErrUnsupportedOperation wrapped with msg in debug mode
// and nil otherwise.
func (r *Registry) Unsupported(msg string) error {
	if !r.debug {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, ErrUnsupportedOperation)
}
