package graph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ident struct{ id uuid.UUID }

func (i ident) ID() uuid.UUID { return i.id }

func TestGraph_Reclassification(t *testing.T) {
	g := New()
	x := uuid.New()
	g.AddVertex(x, RoleCreated)
	require.NoError(t, g.ChangeType(x, RoleReturned))

	assert.True(t, g.IsKnown(x))
	role, ok := g.RoleOf(x)
	require.True(t, ok)
	assert.Equal(t, RoleReturned, role)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_AddVertexUpsertKeepsEdges(t *testing.T) {
	g := New()
	a, b := uuid.New(), uuid.New()
	g.AddVertex(a, RoleCreated)
	g.AddVertex(b, RoleCreated)
	require.NoError(t, g.AddEdge(a, b))

	g.AddVertex(a, RoleArgument)
	edges, err := g.Edges(a)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, edges)
	assert.Equal(t, 2, g.Len())
}

func TestGraph_UnknownVertex(t *testing.T) {
	g := New()
	missing := uuid.New()

	err := g.ChangeType(missing, RoleReturned)
	assert.True(t, errors.Is(err, ErrUnknownVertex))

	err = g.AddEdge(missing, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownVertex)

	_, err = g.Edges(missing)
	assert.ErrorIs(t, err, ErrUnknownVertex)
	assert.False(t, g.IsKnown(missing))
}

func TestGraph_Promote(t *testing.T) {
	g := New()
	k := uuid.New()
	assert.True(t, g.Promote(k, RoleArgument))
	assert.False(t, g.Promote(k, RoleCreated))
	role, _ := g.RoleOf(k)
	assert.Equal(t, RoleArgument, role)
	assert.True(t, g.Promote(k, RoleReturned))
	role, _ = g.RoleOf(k)
	assert.Equal(t, RoleReturned, role)
}

func TestGraph_KeysAndIndexFollowRegistrationOrder(t *testing.T) {
	g := New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	g.AddVertex(a, RoleCreated)
	g.AddVertex(b, RoleReturned)
	g.AddVertex(c, RoleCreated)

	if diff := cmp.Diff([]uuid.UUID{a, c}, g.Keys(RoleCreated)); diff != "" {
		t.Errorf("created keys mismatch (-want +got):\n%s", diff)
	}
	idx, ok := g.IndexOf(RoleCreated, c)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = g.IndexOf(RoleArgument, a)
	assert.False(t, ok)
}

func TestGraph_FindShortestPath(t *testing.T) {
	g := New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	for _, k := range []uuid.UUID{a, b, c} {
		g.AddVertex(k, RoleCreated)
	}
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(b, c))
	require.NoError(t, g.AddEdge(a, c))

	path, ok := g.FindShortestPath(a, c)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{a, c}, path)

	for _, alt := range g.FindAllPaths(a, c) {
		assert.LessOrEqual(t, len(path), len(alt))
	}
	assert.Len(t, g.FindAllPaths(a, c), 2)

	_, ok = g.FindShortestPath(c, a)
	assert.False(t, ok)
	_, ok = g.FindShortestPath(uuid.New(), a)
	assert.False(t, ok)

	self, ok := g.FindShortestPath(b, b)
	assert.True(t, ok)
	assert.Equal(t, []uuid.UUID{b}, self)
}

func TestGraph_FindShortestPathTieBreaksByInsertion(t *testing.T) {
	g := New()
	a, b1, b2, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	for _, k := range []uuid.UUID{a, b1, b2, d} {
		g.AddVertex(k, RoleCreated)
	}
	require.NoError(t, g.AddEdge(a, b2))
	require.NoError(t, g.AddEdge(a, b1))
	require.NoError(t, g.AddEdge(b1, d))
	require.NoError(t, g.AddEdge(b2, d))

	path, ok := g.FindShortestPath(a, d)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{a, b2, d}, path)
}

func TestGraph_ReverseRoute(t *testing.T) {
	g := New()
	root, mid, leaf := uuid.New(), uuid.New(), uuid.New()
	for _, k := range []uuid.UUID{root, mid, leaf} {
		g.AddVertex(k, RoleCreated)
	}
	require.NoError(t, g.AddEdge(root, mid))
	require.NoError(t, g.AddEdge(mid, leaf))

	assert.Equal(t, []uuid.UUID{leaf, mid, root}, g.ReverseRoute(leaf, root))
	assert.Equal(t, []uuid.UUID{leaf, mid}, g.ReverseRoute(leaf, uuid.Nil))
	assert.Empty(t, g.ReverseRoute(root, leaf))
}

func TestGraph_PruneEdgeAndIsolated(t *testing.T) {
	g := New()
	a, b := uuid.New(), uuid.New()
	g.AddVertex(a, RoleCreated)
	g.AddVertex(b, RoleCreated)
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(a, b))
	assert.Equal(t, []uuid.UUID{b}, g.IsolatedVertices())

	g.PruneEdge(a, b)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, g.IsolatedVertices())
}

func TestGraph_ConvertIDToKey(t *testing.T) {
	g := New()
	id := uuid.New()
	assert.Equal(t, id, g.ConvertIDToKey(id))
	assert.Equal(t, id, g.ConvertIDToKey(ident{id: id}))

	type plain struct{ n int }
	p := &plain{n: 1}
	k1 := g.ConvertIDToKey(p)
	assert.NotEqual(t, uuid.Nil, k1)
	assert.Equal(t, k1, g.ConvertIDToKey(p))
	assert.NotEqual(t, k1, g.ConvertIDToKey(&plain{n: 1}))

	assert.Equal(t, uuid.Nil, g.ConvertIDToKey(nil))
	assert.Equal(t, uuid.Nil, g.ConvertIDToKey([]int{1}))
}

func TestGraph_VerticesSnapshot(t *testing.T) {
	g := New()
	a, b := uuid.New(), uuid.New()
	g.AddVertex(a, RoleCreated)
	g.AddVertex(b, RoleArgument)
	require.NoError(t, g.AddEdge(a, b))

	vs := g.Vertices()
	require.Len(t, vs, 2)
	vs[0].Edges[0] = uuid.Nil
	edges, _ := g.Edges(a)
	assert.Equal(t, b, edges[0])
	assert.Equal(t, "Graph object of 2 vertices.", g.String())
	assert.True(t, RoleCreated.Valid())
	assert.False(t, Role("bogus").Valid())
}
