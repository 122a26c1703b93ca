package bridge

import (
	"unsafe"

	"github.com/chazu/tether/bridge/raw"
)

// Object is a view over a live managed instance. The bridge never
// interprets the instance's internal layout; all access goes through field
// views or method invocation. Lifetime is owned by the runtime's own
// allocator.
type Object struct{ rec raw.ObjectRecord }

func wrapObject(r *raw.ObjectRecord) *Object { return (*Object)(unsafe.Pointer(r)) }

func (o *Object) raw() *raw.ObjectRecord { return (*raw.ObjectRecord)(unsafe.Pointer(o)) }

// Class returns the runtime class of the instance.
func (o *Object) Class() *Class { return wrapClass(o.raw().Class) }

// Ref returns a non-null reference capability for the instance, with the
// instance's runtime class as the static class.
func (o *Object) Ref() Ref { return Ref{Class: o.Class(), Obj: o} }

// OptRef returns a nullable reference capability for the instance.
func (o *Object) OptRef() OptRef { return OptRef{Class: o.Class(), Obj: o} }

// Invoke resolves an instance method on the object's class by name and
// signature, then invokes it with the object as receiver. Resolution
// failures and managed exceptions come back as distinct error classes.
func (o *Object) Invoke(name string, ret Result, args ...Argument) error {
	m, err := o.Class().FindMethod(name, ret, args...)
	if err != nil {
		return err
	}
	return m.Invoke(o.Ref(), ret, args...)
}

// String renders the object as its class display name for diagnostics.
func (o *Object) String() string { return o.Class().String() + " instance" }
