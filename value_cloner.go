package readthroughcache

import "reflect"

// ValueCloner is an interface for cloning values.
// The cache hands every caller the value returned by CloneValue, so that a caller mutating
// its copy cannot corrupt the cached value seen by others.
// The CloneValue method should return a deep copy of the input value.
type ValueCloner[V ValueConstraint] interface {
	CloneValue(V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V ValueConstraint] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a value cloner that does not clone values.
// It is the default of the cache, suitable for immutable values and values without references.
type NopValueCloner[V ValueConstraint] struct{}

// CloneValue returns the input value.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// DefaultValueCloner returns a cloner that uses the Clone or DeepCopy method of the value type.
// It falls back to NopValueCloner for value types without references (numbers, strings,
// and arrays or structs made only of them), and panics for any other type.
func DefaultValueCloner[V ValueConstraint]() ValueCloner[V] {
	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	var zero V
	switch any(zero).(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(cloner).Clone()
		})
	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(deepCopier).DeepCopy()
		})
	}

	if typ := reflect.TypeFor[V](); !hasReferences(typ) {
		return NopValueCloner[V]{}
	}
	panic("value type has references but does not have Clone or DeepCopy method")
}

// hasReferences reports whether values of the type may share memory when copied.
func hasReferences(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return false
	case reflect.Array:
		return hasReferences(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if hasReferences(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
