package bridge

import "github.com/chazu/tether/bridge/raw"

// ---------------------------------------------------------------------------
// Reference capabilities
// ---------------------------------------------------------------------------
//
// Ref and OptRef are the two host forms of a managed object reference. They
// match the same runtime slots; they differ only in how they treat null.
// Ref converts the runtime's null into an explicit panic at load time,
// OptRef surfaces it as a nil Obj.

// Ref is an always-non-null reference of a known static class.
//
// As an argument or receiver the Obj must be set; passing a Ref with a nil
// Obj into an invocation is a contract violation and panics. As a result,
// Ref panics if the runtime produced a null reference.
type Ref struct {
	// Class is the static class of the reference, used for matching.
	Class *Class
	// Obj is the referenced instance.
	Obj *Object
}

// RefTo returns a Ref matcher/destination for the given class with no
// instance attached. Use it for resolution and as an invocation result
// destination.
func RefTo(class *Class) *Ref { return &Ref{Class: class} }

func (r Ref) matches(t *Type) bool { return refMatches(r.Class, t) }

func (r Ref) slot() raw.Slot {
	if r.Obj == nil {
		panic("bridge: nil Obj passed as a non-null Ref argument")
	}
	return raw.ObjSlot(r.Obj.raw())
}

func (r *Ref) load(s raw.Slot) {
	if s.Obj == nil {
		panic("bridge: runtime returned null for a non-null Ref of class " + r.Class.String())
	}
	r.Obj = wrapObject(s.Obj)
}

func (r Ref) matchesThis(m *Method) bool { return thisMatches(r.Class, m) }

func (r Ref) recvSlot() raw.Slot { return r.slot() }

// OptRef is a nullable reference of a known static class. A nil Obj is the
// runtime's null reference, in both directions.
type OptRef struct {
	Class *Class
	Obj   *Object
}

// OptRefTo returns an OptRef matcher/destination for the given class.
func OptRefTo(class *Class) *OptRef { return &OptRef{Class: class} }

func (r OptRef) matches(t *Type) bool { return refMatches(r.Class, t) }

func (r OptRef) slot() raw.Slot {
	if r.Obj == nil {
		return raw.Slot{}
	}
	return raw.ObjSlot(r.Obj.raw())
}

func (r *OptRef) load(s raw.Slot) { r.Obj = wrapObject(s.Obj) }

func (r OptRef) matchesThis(m *Method) bool { return thisMatches(r.Class, m) }

func (r OptRef) recvSlot() raw.Slot { return r.slot() }

// refMatches is the shared reference-compatibility predicate: the slot must
// be a by-value reference type whose class, when it has one, is assignable
// from the host reference's static class.
func refMatches(class *Class, t *Type) bool {
	if class == nil {
		return false
	}
	if !t.IsReference() || t.IsByRef() {
		return false
	}
	tc := t.Class()
	if tc == nil {
		// Reference builtins with no backing class accept any reference.
		return true
	}
	return tc.IsAssignableFrom(class)
}

// thisMatches is the shared receiver-compatibility predicate: instance
// methods only, declared on a class assignable from the reference's static
// class.
func thisMatches(class *Class, m *Method) bool {
	if class == nil || m.IsStatic() {
		return false
	}
	return m.DeclaringClass().IsAssignableFrom(class)
}
