package bridge

import (
	"unsafe"

	"github.com/chazu/tether/bridge/raw"
)

// Exception is a view over a thrown managed exception object. It is the
// error channel of invocation: managed code that throws surfaces here, and
// only here.
type Exception struct{ rec raw.ObjectRecord }

func wrapException(r *raw.ObjectRecord) *Exception { return (*Exception)(unsafe.Pointer(r)) }

// Object returns the exception as a plain object view.
func (e *Exception) Object() *Object { return wrapObject((*raw.ObjectRecord)(unsafe.Pointer(e))) }

// Class returns the runtime class of the exception.
func (e *Exception) Class() *Class { return e.Object().Class() }

// Message returns the exception message, read through the standard message
// field on the exception's class. Falls back to the class display name when
// the field is absent or holds null.
func (e *Exception) Message() string {
	f, err := e.Class().FindField("message")
	if err != nil {
		return e.Class().String()
	}
	if !f.Type().IsBuiltin(raw.KindString) {
		return e.Class().String()
	}
	s := raw.Current().FieldGet(e.Object().raw(), f.raw())
	if s.Obj == nil {
		return e.Class().String()
	}
	return raw.Current().StringContent(s.Obj)
}

// String renders the exception as Class: message.
func (e *Exception) String() string {
	return e.Class().String() + ": " + e.Message()
}

// ManagedError wraps a managed exception as a Go error. It is distinct
// from the resolution sentinels: a ManagedError means the method was found
// and ran, and the managed code threw.
type ManagedError struct {
	Exception *Exception
}

func (e *ManagedError) Error() string {
	return "managed exception: " + e.Exception.String()
}
