package graph

import "github.com/google/uuid"

// FindShortestPath runs a breadth-first search from start to end and returns
// the first minimal path discovered, inclusive of both ends. Neighbours are
// visited in edge insertion order, so ties resolve to the earliest-inserted
// edges. The boolean is false when no path exists or start is unknown.
func (g *Graph) FindShortestPath(start, end uuid.UUID) ([]uuid.UUID, bool) {
	if _, ok := g.entries[start]; !ok {
		return nil, false
	}
	if start == end {
		return []uuid.UUID{start}, true
	}
	prev := map[uuid.UUID]uuid.UUID{}
	seen := map[uuid.UUID]bool{start: true}
	queue := []uuid.UUID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		e, ok := g.entries[cur]
		if !ok {
			continue
		}
		for _, n := range e.edges {
			if seen[n] {
				continue
			}
			seen[n] = true
			prev[n] = cur
			if n == end {
				return buildPath(prev, start, end), true
			}
			queue = append(queue, n)
		}
	}
	return nil, false
}

func buildPath(prev map[uuid.UUID]uuid.UUID, start, end uuid.UUID) []uuid.UUID {
	path := []uuid.UUID{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindAllPaths returns every simple path from start to end, depth-first in
// edge insertion order.
func (g *Graph) FindAllPaths(start, end uuid.UUID) [][]uuid.UUID {
	var out [][]uuid.UUID
	var walk func(cur uuid.UUID, path []uuid.UUID)
	walk = func(cur uuid.UUID, path []uuid.UUID) {
		path = append(path, cur)
		if cur == end {
			p := make([]uuid.UUID, len(path))
			copy(p, path)
			out = append(out, p)
			return
		}
		e, ok := g.entries[cur]
		if !ok {
			return
		}
		for _, n := range e.edges {
			if contains(path, n) {
				continue
			}
			walk(n, path)
		}
	}
	walk(start, nil)
	return out
}

// ReverseRoute returns the route from start to end reversed, i.e. beginning at
// end. When start is uuid.Nil the shortest route from any vertex with an edge
// into end is used. An empty slice means no route.
func (g *Graph) ReverseRoute(end, start uuid.UUID) []uuid.UUID {
	var best []uuid.UUID
	if start != uuid.Nil {
		best, _ = g.FindShortestPath(start, end)
	} else {
		for _, k := range g.order {
			if !contains(g.entries[k].edges, end) {
				continue
			}
			p, ok := g.FindShortestPath(k, end)
			if ok && (best == nil || len(p) < len(best)) {
				best = p
			}
		}
	}
	out := make([]uuid.UUID, len(best))
	for i, k := range best {
		out[len(best)-1-i] = k
	}
	return out
}

func contains(list []uuid.UUID, key uuid.UUID) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}
