package graph

import "errors"

var (
	// ErrUnknownVertex is returned when a query or mutation names an identity
	// that has never been registered with AddVertex.
	ErrUnknownVertex = errors.New("unknown vertex")
)
