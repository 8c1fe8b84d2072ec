package core

import (
	"reflect"

	"github.com/google/uuid"
)

// Object is any model entity tracked by a Registry.
type Object interface {
	// ID is the stable identity used as graph key.
	ID() uuid.UUID
	// ClassName names the concrete kind of object; its lower-cased form
	// prefixes script aliases.
	ClassName() string
}

// objectsOf extracts the Objects held by v, which may be a single Object or
// a slice or array of values some of which are Objects.
func objectsOf(v any) []Object {
	if v == nil {
		return nil
	}
	if o, ok := v.(Object); ok {
		if isNil(o) {
			return nil
		}
		return []Object{o}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	var out []Object
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i)
		if !el.CanInterface() {
			continue
		}
		if o, ok := el.Interface().(Object); ok && !isNil(o) {
			out = append(out, o)
		}
	}
	return out
}

func isNil(o Object) bool {
	rv := reflect.ValueOf(o)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
