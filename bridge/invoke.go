package bridge

import (
	"fmt"

	"github.com/chazu/tether/bridge/raw"
)

// ---------------------------------------------------------------------------
// Invocation
// ---------------------------------------------------------------------------
//
// Invocation converts the receiver and argument capabilities into the
// runtime's type-erased slots, calls the generic invoke primitive, and
// converts the result slot back. The conversions assume exactly the layout
// the capability matches validated; that link between the check and the
// conversion is the safety invariant of this layer.

// Invoke executes the method with the given receiver and arguments, loading
// the return value into ret on success. Capabilities are asserted against
// the method's metadata first: a mismatch is a programmer error and panics
// rather than returning an error.
//
// A managed exception thrown by the method comes back as *ManagedError; the
// return destination is left untouched in that case.
func (m *Method) Invoke(recv Receiver, ret Result, args ...Argument) error {
	if !recv.matchesThis(m) {
		panic(fmt.Sprintf("bridge: receiver capability does not match %s", m))
	}
	if !signatureMatches(m, ret, args) {
		panic(fmt.Sprintf("bridge: signature capabilities do not match %s", m))
	}
	return m.InvokeUnchecked(recv, ret, args...)
}

// InvokeUnchecked executes the method without asserting capability matches.
// The caller must independently guarantee that every capability matches the
// method's signature; a violated guarantee is undefined behavior at the
// runtime boundary, not a checked error.
func (m *Method) InvokeUnchecked(recv Receiver, ret Result, args ...Argument) error {
	rt := raw.Current()

	// Marshalling buffer scoped to this call on every exit path.
	var slots []raw.Slot
	if len(args) > 0 {
		slots = make([]raw.Slot, len(args))
		for i, a := range args {
			slots[i] = a.slot()
		}
	}

	res, exc := rt.Invoke(m.raw(), recv.recvSlot(), slots)
	if exc != nil {
		return &ManagedError{Exception: wrapException(exc)}
	}
	ret.load(res)
	return nil
}

// resultPtr constrains a result destination to a pointer to a concrete
// capability type, so generic invocation can allocate and fill it.
type resultPtr[T any] interface {
	*T
	Result
}

// Invoke executes a method and returns its result as the concrete
// capability type T:
//
//	sum, err := bridge.Invoke[bridge.Int32](m, bridge.Static{}, bridge.Int32(2), bridge.Int32(3))
func Invoke[T any, P resultPtr[T]](m *Method, recv Receiver, args ...Argument) (T, error) {
	var out T
	err := m.Invoke(recv, P(&out), args...)
	return out, err
}

// InvokeStatic resolves a static method on the class by name and signature,
// then invokes it. Resolution failures (ErrMethodNotFound,
// ErrAmbiguousMethod) and managed exceptions remain distinct error classes.
func InvokeStatic[T any, P resultPtr[T]](c *Class, name string, args ...Argument) (T, error) {
	var out T
	m, err := c.FindMethodStatic(name, P(&out), args...)
	if err != nil {
		return out, err
	}
	err = m.InvokeUnchecked(Static{}, P(&out), args...)
	return out, err
}
