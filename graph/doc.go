// Package graph holds the session provenance graph: a directed graph of object
// identities, each classified by the role it plays in the user's session
// (created, argument or returned).
//
// Vertices are keyed by uuid. Objects that carry their own identity implement
// Identifiable; any other comparable value is assigned a stable key on first
// sight by ConvertIDToKey. Vertices are never removed during a session: the
// graph is a provenance record, not a liveness tracker.
//
// The graph performs no locking. It is owned by a single registry and used
// from one logical session at a time.
package graph
