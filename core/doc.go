// Package core provides the process-wide context shared by every model
// object. It defines:
//
//   - Registry (the explicit context aggregating the provenance graph, the
//     script store, the undo stack, a debug flag and a logger)
//   - Object (anything with a stable identity and a class name)
//   - Property (an observed accessor pair that records script statements,
//     classifies touched objects and pushes undo commands)
//
// Model packages obtain a *Registry once and pass it by reference to every
// object they construct. Nothing in this package locks; a registry belongs
// to a single goroutine at a time.
package core
