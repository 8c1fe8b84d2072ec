package model

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/EasyScience/EasyCore-sub001/variable"
)

// Snapshot is the serializable state of a component subtree. It is built
// from raw accessors and records nothing in the script.
type Snapshot struct {
	Name       string     `yaml:"name"`
	Class      string     `yaml:"class"`
	ID         string     `yaml:"id"`
	Value      any        `yaml:"value,omitempty"`
	Unit       string     `yaml:"unit,omitempty"`
	Error      *float64   `yaml:"error,omitempty"`
	Min        *float64   `yaml:"min,omitempty"`
	Max        *float64   `yaml:"max,omitempty"`
	Fixed      *bool      `yaml:"fixed,omitempty"`
	Enabled    *bool      `yaml:"enabled,omitempty"`
	Components []Snapshot `yaml:"components,omitempty"`
}

// TakeSnapshot captures c and its children.
func TakeSnapshot(c Component) Snapshot {
	s := Snapshot{Name: c.Name(), Class: c.ClassName(), ID: c.ID().String()}
	switch t := c.(type) {
	case *variable.Parameter:
		m := t.ToMap()
		s.Value = t.RawValue()
		s.Unit, _ = m["units"].(string)
		s.Error = ptr(m["error"].(float64))
		s.Min = ptr(m["min"].(float64))
		s.Max = ptr(m["max"].(float64))
		s.Fixed = ptr(m["fixed"].(bool))
		s.Enabled = ptr(t.Enabled())
	case *variable.Descriptor:
		s.Value = t.RawValue()
		s.Unit, _ = t.ToMap()["units"].(string)
		s.Enabled = ptr(t.Enabled())
	case *Object:
		for _, child := range t.components {
			s.Components = append(s.Components, TakeSnapshot(child))
		}
	case *Collection:
		for _, child := range t.items {
			s.Components = append(s.Components, TakeSnapshot(child))
		}
	}
	return s
}

// ExportYAML writes the snapshot of c as YAML.
func ExportYAML(w io.Writer, c Component) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(TakeSnapshot(c)); err != nil {
		return fmt.Errorf("export %q: %w", c.Name(), err)
	}
	return enc.Close()
}

// DecodeSnapshot reads a snapshot previously written by ExportYAML.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

func ptr[T any](v T) *T { return &v }
