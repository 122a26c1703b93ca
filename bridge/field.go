package bridge

import (
	"fmt"
	"unsafe"

	"github.com/chazu/tether/bridge/raw"
)

// Field is a view over a runtime field record.
type Field struct{ rec raw.FieldRecord }

func wrapField(r *raw.FieldRecord) *Field { return (*Field)(unsafe.Pointer(r)) }

func (f *Field) raw() *raw.FieldRecord { return (*raw.FieldRecord)(unsafe.Pointer(f)) }

// Name returns the field name.
func (f *Field) Name() string {
	name := f.raw().Name
	if name == "" {
		panic("bridge: field record has no name")
	}
	return name
}

// Type returns the field's type descriptor.
func (f *Field) Type() *Type { return wrapType(f.raw().Type) }

// DeclaringClass returns the class the field is declared on.
func (f *Field) DeclaringClass() *Class { return wrapClass(f.raw().Parent) }

// String renders the field as Class.Name for diagnostics.
func (f *Field) String() string {
	return f.DeclaringClass().String() + "." + f.Name()
}

// Store writes a value into the field on the given instance, asserting the
// capability against the field's type first. A mismatch is a programmer
// error and panics.
func (f *Field) Store(obj *Object, v Argument) {
	if !v.matches(f.Type()) {
		panic(fmt.Sprintf("bridge: stored capability does not match field %s", f))
	}
	f.StoreUnchecked(obj, v)
}

// StoreUnchecked writes a value into the field without the type assertion.
// The caller must independently guarantee the capability matches the field
// type; a violated guarantee is undefined behavior at the runtime boundary.
func (f *Field) StoreUnchecked(obj *Object, v Argument) {
	raw.Current().FieldSet(obj.raw(), f.raw(), v.slot())
}

// Load reads the field's value from the given instance into dst, asserting
// the capability against the field's type first.
func (f *Field) Load(obj *Object, dst Result) {
	if !dst.matches(f.Type()) {
		panic(fmt.Sprintf("bridge: loaded capability does not match field %s", f))
	}
	f.LoadUnchecked(obj, dst)
}

// LoadUnchecked reads the field's value without the type assertion. Same
// caller obligation as StoreUnchecked.
func (f *Field) LoadUnchecked(obj *Object, dst Result) {
	dst.load(raw.Current().FieldGet(obj.raw(), f.raw()))
}

// LoadField resolves a field by name on the object's class and loads it as
// the concrete capability type T.
func LoadField[T any, P resultPtr[T]](obj *Object, name string) (T, error) {
	var out T
	f, err := obj.Class().FindField(name)
	if err != nil {
		return out, err
	}
	f.Load(obj, P(&out))
	return out, nil
}
