// Package bridge is a typed bridge to a managed object runtime.
//
// The runtime exposes classes, methods, fields and live objects through the
// primitives in bridge/raw. This package layers typed, checked access on
// top: entity views over runtime-owned metadata, capability types that tie
// host Go types to runtime type descriptors, overload resolution with a
// unique-match policy, and typed invocation and field access.
//
// Views never copy or own runtime records. Metadata is created at assembly
// load and lives for the process, so views are safe to hold and to share
// across goroutines.
package bridge

import (
	"unsafe"

	"github.com/chazu/tether/bridge/raw"
)

// Type is a view over a runtime type descriptor: a builtin kind, possibly a
// backing class, plus modifiers exposed only for matching.
//
// Each view is a single-field struct over its record, converted in place
// through unsafe.Pointer: a view pointer and its record pointer are the
// same address, so record identity carries over to view identity and
// nothing is copied. The field is unexported so the accessor methods can
// carry the record field names.
type Type struct{ rec raw.TypeRecord }

func wrapType(r *raw.TypeRecord) *Type { return (*Type)(unsafe.Pointer(r)) }

func (t *Type) raw() *raw.TypeRecord { return (*raw.TypeRecord)(unsafe.Pointer(t)) }

// Kind returns the builtin kind tag of the type.
func (t *Type) Kind() raw.Kind { return t.raw().Kind }

// Class returns the backing class for class/struct/enum types, or nil for
// builtins without one.
func (t *Type) Class() *Class { return wrapClass(t.raw().Class) }

// IsBuiltin reports whether the type is exactly the given builtin kind,
// passed by value.
func (t *Type) IsBuiltin(k raw.Kind) bool {
	return t.raw().Kind == k && !t.raw().ByRef
}

// IsByRef reports whether the slot is a by-reference slot.
func (t *Type) IsByRef() bool { return t.raw().ByRef }

// IsReference reports whether values of this type are passed as object
// references.
func (t *Type) IsReference() bool { return t.raw().Kind.IsReference() }

// String renders the type for diagnostics: the class display name when one
// backs the type, the kind name otherwise.
func (t *Type) String() string {
	if c := t.Class(); c != nil {
		return c.String()
	}
	return t.Kind().String()
}

// wrapSlice reinterprets a runtime-owned record pointer slice as a slice of
// view pointers without copying. Views are single-field structs over the
// records, so the element representations are identical.
func wrapSlice[R, V any](recs []*R) []*V {
	if len(recs) == 0 {
		return nil
	}
	return unsafe.Slice((**V)(unsafe.Pointer(&recs[0])), len(recs))
}
