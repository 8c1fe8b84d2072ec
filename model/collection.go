package model

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/EasyScience/EasyCore-sub001/core"
	"github.com/EasyScience/EasyCore-sub001/undo"
	"github.com/EasyScience/EasyCore-sub001/variable"
)

var (
	_ Component       = (*Collection)(nil)
	_ parameterHolder = (*Collection)(nil)
)

// Collection is an ordered, undoable list of components.
type Collection struct {
	reg   *core.Registry
	id    uuid.UUID
	name  string
	items []Component
}

// NewCollection creates a collection holding items in order.
func NewCollection(reg *core.Registry, name string, items ...Component) (*Collection, error) {
	c := &Collection{reg: reg, id: uuid.New(), name: name}
	if err := reg.Register(c, nil); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := c.insert(len(c.items), it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ID returns the stable identity of the collection.
func (c *Collection) ID() uuid.UUID { return c.id }

// ClassName returns "Collection".
func (c *Collection) ClassName() string { return "Collection" }

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// At returns the item at index i.
func (c *Collection) At(i int) (Component, bool) {
	if i < 0 || i >= len(c.items) {
		return nil, false
	}
	return c.items[i], true
}

// Items returns the items in order.
func (c *Collection) Items() []Component { return slices.Clone(c.items) }

// Append adds item at the end as an undoable change.
func (c *Collection) Append(item Component) error {
	return c.Insert(len(c.items), item)
}

// Insert adds item at index i as an undoable change.
func (c *Collection) Insert(i int, item Component) error {
	if i < 0 || i > len(c.items) {
		return fmt.Errorf("insert into %q at %d: index out of range [0, %d]", c.name, i, len(c.items))
	}
	return c.reg.Stack().Push(undo.NewFunctionCommand(
		fmt.Sprintf("%s added to %s", item.Name(), c.name),
		func() error { return c.insert(i, item) },
		func() error { _, err := c.remove(i); return err },
	))
}

// Remove deletes the item at index i as an undoable change and returns it.
func (c *Collection) Remove(i int) (Component, error) {
	item, ok := c.At(i)
	if !ok {
		return nil, fmt.Errorf("remove %d from %q: %w", i, c.name, ErrNotFound)
	}
	err := c.reg.Stack().Push(undo.NewFunctionCommand(
		fmt.Sprintf("%s removed from %s", item.Name(), c.name),
		func() error { _, err := c.remove(i); return err },
		func() error { return c.insert(i, item) },
	))
	return item, err
}

// Parameters returns every parameter held by the items, depth first.
func (c *Collection) Parameters() []*variable.Parameter {
	return collectParameters(c.items)
}

// FitParameters returns the minimizer view of every enabled, non-fixed
// parameter held by the items.
func (c *Collection) FitParameters() []variable.FitParameter {
	return fitParameters(c.Parameters())
}

func (c *Collection) insert(i int, item Component) error {
	if ow, ok := item.(ownable); ok {
		if err := ow.SetOwner(c); err != nil {
			return err
		}
	} else if err := c.reg.Register(item, c); err != nil {
		return err
	}
	c.items = slices.Insert(c.items, i, item)
	return nil
}

func (c *Collection) remove(i int) (Component, error) {
	if i < 0 || i >= len(c.items) {
		return nil, fmt.Errorf("remove %d from %q: %w", i, c.name, ErrNotFound)
	}
	item := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	if ow, ok := item.(ownable); ok {
		return item, ow.SetOwner(nil)
	}
	c.reg.Graph().PruneEdge(c.id, item.ID())
	return item, nil
}
