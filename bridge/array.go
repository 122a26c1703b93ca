package bridge

import "github.com/chazu/tether/bridge/raw"

// Array is a view over a managed array instance. Element storage stays on
// the runtime side; access goes through the array primitives.
type Array raw.ObjectRecord

func (a *Array) raw() *raw.ObjectRecord { return (*raw.ObjectRecord)(a) }

// AsArray reinterprets an object as an array view. The object's class must
// be array-shaped; anything else is a programmer error and panics.
func AsArray(o *Object) *Array {
	if o.Class().ByValArgType().Kind() != raw.KindArray {
		panic("bridge: object is not an array instance")
	}
	return (*Array)(o.raw())
}

// Object returns the array as a plain object view.
func (a *Array) Object() *Object { return wrapObject(a.raw()) }

// Len returns the element count.
func (a *Array) Len() int { return raw.Current().ArrayLen(a.raw()) }

// Get reads the element at index i into dst. The caller guarantees the
// capability matches the array's element type, as with the other unchecked
// access paths.
func (a *Array) Get(i int, dst Result) {
	dst.load(raw.Current().ArrayGet(a.raw(), i))
}

// Set writes the element at index i. Same caller obligation as Get.
func (a *Array) Set(i int, v Argument) {
	raw.Current().ArraySet(a.raw(), i, v.slot())
}

// NewString allocates a managed string and returns its object view.
func NewString(s string) *Object {
	return wrapObject(raw.Current().NewString(s))
}

// StringContent returns the content of a managed string object.
func StringContent(o *Object) string {
	return raw.Current().StringContent(o.raw())
}
