package graph

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Role classifies how an object entered the session.
type Role string

const (
	// RoleCreated marks objects constructed by the user.
	RoleCreated Role = "created"
	// RoleArgument marks objects passed into the observed API.
	RoleArgument Role = "argument"
	// RoleReturned marks objects handed back by an observed getter.
	RoleReturned Role = "returned"
)

func (r Role) rank() int {
	switch r {
	case RoleCreated:
		return 0
	case RoleArgument:
		return 1
	case RoleReturned:
		return 2
	default:
		return -1
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.rank() >= 0 }

// Identifiable is implemented by objects that carry their own stable key.
type Identifiable interface {
	ID() uuid.UUID
}

// Vertex is a snapshot of one graph entry.
type Vertex struct {
	Key   uuid.UUID
	Role  Role
	Edges []uuid.UUID
}

type entry struct {
	role  Role
	edges []uuid.UUID
}

// Graph is a directed graph of object identities.
type Graph struct {
	entries map[uuid.UUID]*entry
	order   []uuid.UUID
	ids     map[any]uuid.UUID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		entries: make(map[uuid.UUID]*entry),
		ids:     make(map[any]uuid.UUID),
	}
}

// ConvertIDToKey maps a runtime identity to its stable key. uuid values map
// to themselves, Identifiable values to their ID, and any other comparable
// value to a key minted on first use. Nil and non-comparable values map to
// uuid.Nil.
func (g *Graph) ConvertIDToKey(v any) uuid.UUID {
	switch t := v.(type) {
	case nil:
		return uuid.Nil
	case uuid.UUID:
		return t
	case Identifiable:
		return t.ID()
	}
	if !reflect.TypeOf(v).Comparable() {
		return uuid.Nil
	}
	if key, ok := g.ids[v]; ok {
		return key
	}
	key := uuid.New()
	g.ids[v] = key
	return key
}

// AddVertex registers key with role. Registering an existing key overwrites
// its role and keeps its edges.
func (g *Graph) AddVertex(key uuid.UUID, role Role) {
	if e, ok := g.entries[key]; ok {
		e.role = role
		return
	}
	g.entries[key] = &entry{role: role}
	g.order = append(g.order, key)
}

// IsKnown reports whether key has been registered.
func (g *Graph) IsKnown(key uuid.UUID) bool {
	_, ok := g.entries[key]
	return ok
}

// ChangeType reclassifies a registered vertex.
func (g *Graph) ChangeType(key uuid.UUID, role Role) error {
	e, ok := g.entries[key]
	if !ok {
		return fmt.Errorf("change type of %s: %w", key, ErrUnknownVertex)
	}
	e.role = role
	return nil
}

// Promote upserts key so that its role is at least role in the
// created < argument < returned order. It reports whether the stored role changed.
func (g *Graph) Promote(key uuid.UUID, role Role) bool {
	e, ok := g.entries[key]
	if !ok {
		g.AddVertex(key, role)
		return true
	}
	if e.role.rank() >= role.rank() {
		return false
	}
	e.role = role
	return true
}

// RoleOf returns the current role of key.
func (g *Graph) RoleOf(key uuid.UUID) (Role, bool) {
	e, ok := g.entries[key]
	if !ok {
		return "", false
	}
	return e.role, true
}

// AddEdge adds a directed edge start -> end. The start vertex must be known;
// duplicate edges are ignored.
func (g *Graph) AddEdge(start, end uuid.UUID) error {
	e, ok := g.entries[start]
	if !ok {
		return fmt.Errorf("add edge from %s: %w", start, ErrUnknownVertex)
	}
	for _, n := range e.edges {
		if n == end {
			return nil
		}
	}
	e.edges = append(e.edges, end)
	return nil
}

// PruneEdge removes the edge start -> end if present.
func (g *Graph) PruneEdge(start, end uuid.UUID) {
	e, ok := g.entries[start]
	if !ok {
		return
	}
	for i, n := range e.edges {
		if n == end {
			e.edges = append(e.edges[:i:i], e.edges[i+1:]...)
			return
		}
	}
}

// Edges returns a copy of the adjacency list of key.
func (g *Graph) Edges(key uuid.UUID) ([]uuid.UUID, error) {
	e, ok := g.entries[key]
	if !ok {
		return nil, fmt.Errorf("edges of %s: %w", key, ErrUnknownVertex)
	}
	out := make([]uuid.UUID, len(e.edges))
	copy(out, e.edges)
	return out, nil
}

// Vertices returns snapshots of all vertices in registration order.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.order))
	for _, k := range g.order {
		e := g.entries[k]
		edges := make([]uuid.UUID, len(e.edges))
		copy(edges, e.edges)
		out = append(out, Vertex{Key: k, Role: e.role, Edges: edges})
	}
	return out
}

// Len returns the number of registered vertices.
func (g *Graph) Len() int { return len(g.order) }

// Keys returns the keys currently classified as role, in registration order.
func (g *Graph) Keys(role Role) []uuid.UUID {
	var out []uuid.UUID
	for _, k := range g.order {
		if g.entries[k].role == role {
			out = append(out, k)
		}
	}
	return out
}

// IndexOf returns the position of key within Keys(role).
func (g *Graph) IndexOf(role Role, key uuid.UUID) (int, bool) {
	idx := 0
	for _, k := range g.order {
		if g.entries[k].role != role {
			continue
		}
		if k == key {
			return idx, true
		}
		idx++
	}
	return -1, false
}

// IsolatedVertices returns the keys of vertices without outgoing edges.
func (g *Graph) IsolatedVertices() []uuid.UUID {
	var out []uuid.UUID
	for _, k := range g.order {
		if len(g.entries[k].edges) == 0 {
			out = append(out, k)
		}
	}
	return out
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph object of %d vertices.", len(g.order))
}
