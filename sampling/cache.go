package sampling

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

// Source is a model whose parameters can be sampled.
type Source interface {
	core.Object
	Parameters() []*variable.Parameter
}

// ParameterCache remembers the free parameters of each model by identity.
// It is safe for concurrent use.
type ParameterCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]*variable.Parameter
}

// NewParameterCache returns an empty cache.
func NewParameterCache() *ParameterCache {
	return &ParameterCache{entries: map[uuid.UUID][]*variable.Parameter{}}
}

// Parameters returns the enabled, non-fixed parameters of src, computing
// them on first use. The returned slice is a copy.
func (c *ParameterCache) Parameters(src Source) []*variable.Parameter {
	c.mu.RLock()
	params, ok := c.entries[src.ID()]
	c.mu.RUnlock()
	if ok {
		return slices.Clone(params)
	}

	free := make([]*variable.Parameter, 0)
	for _, p := range src.Parameters() {
		if p.FitParameter().Vary && p.Enabled() {
			free = append(free, p)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[src.ID()]; ok {
		return slices.Clone(existing)
	}
	c.entries[src.ID()] = free
	return slices.Clone(free)
}

// Invalidate drops the cached entry of id.
func (c *ParameterCache) Invalidate(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached models.
func (c *ParameterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
