package bridge

import (
	"math"

	"github.com/chazu/tether/bridge/raw"
)

// ---------------------------------------------------------------------------
// Capability roles
// ---------------------------------------------------------------------------
//
// A host type takes part in the bridge by satisfying one or more of three
// capability roles: receiver (`this` parameter), argument (parameter or
// stored value), and result (return value or loaded value). Each role pairs
// a pure matching predicate against runtime type metadata with a conversion
// to or from the runtime's type-erased Slot representation.
//
// The predicate and the conversion must agree: a capability whose matches
// says yes but whose slot encoding differs from what the runtime expects is
// a memory-safety hazard at the boundary, not a logic bug. The role
// interfaces use unexported methods so the set of implementations stays
// inside this package.

// Argument is the capability of serving as a method parameter or a stored
// field value.
type Argument interface {
	// matches reports whether the host type is compatible with the given
	// runtime type. Pure and deterministic.
	matches(t *Type) bool
	// slot converts the value into the runtime representation.
	slot() raw.Slot
}

// Result is the capability of receiving a method return value or a loaded
// field value. Implementations load through a pointer receiver.
type Result interface {
	matches(t *Type) bool
	// load converts the runtime representation back into the host value.
	load(s raw.Slot)
}

// Receiver is the capability of serving as the `this` parameter of a
// method.
type Receiver interface {
	// matchesThis reports whether the host type may be the receiver of the
	// given method.
	matchesThis(m *Method) bool
	// recvSlot converts the receiver into the runtime representation.
	recvSlot() raw.Slot
}

// ---------------------------------------------------------------------------
// Static receiver
// ---------------------------------------------------------------------------

// Static is the receiver of a static method: it matches only methods
// flagged static and marshals to the null receiver slot.
type Static struct{}

func (Static) matchesThis(m *Method) bool { return m.IsStatic() }
func (Static) recvSlot() raw.Slot         { return raw.Slot{} }

// ---------------------------------------------------------------------------
// Void
// ---------------------------------------------------------------------------

// Void is the result capability of methods that return nothing.
type Void struct{}

func (Void) matches(t *Type) bool { return t.IsBuiltin(raw.KindVoid) }
func (Void) load(raw.Slot)        {}

// ---------------------------------------------------------------------------
// Primitive capabilities
// ---------------------------------------------------------------------------
//
// Each primitive matches exactly its own builtin kind, passed by value.
// Scalars are carried in the slot's bit field; the load/slot pair below is
// the single place each primitive's bit layout is defined.

// Bool is the host form of the runtime boolean.
type Bool bool

func (Bool) matches(t *Type) bool { return t.IsBuiltin(raw.KindBool) }

func (v Bool) slot() raw.Slot {
	if v {
		return raw.BitsSlot(1)
	}
	return raw.BitsSlot(0)
}

func (v *Bool) load(s raw.Slot) { *v = s.Bits != 0 }

// Char is the host form of the runtime character, a UTF-16 code unit.
type Char uint16

func (Char) matches(t *Type) bool  { return t.IsBuiltin(raw.KindChar) }
func (v Char) slot() raw.Slot      { return raw.BitsSlot(uint64(v)) }
func (v *Char) load(s raw.Slot)    { *v = Char(s.Bits) }

// Int8 is the host form of the runtime signed 8-bit integer.
type Int8 int8

func (Int8) matches(t *Type) bool { return t.IsBuiltin(raw.KindInt8) }
func (v Int8) slot() raw.Slot     { return raw.BitsSlot(uint64(int64(v))) }
func (v *Int8) load(s raw.Slot)   { *v = Int8(s.Bits) }

// UInt8 is the host form of the runtime unsigned 8-bit integer.
type UInt8 uint8

func (UInt8) matches(t *Type) bool { return t.IsBuiltin(raw.KindUInt8) }
func (v UInt8) slot() raw.Slot     { return raw.BitsSlot(uint64(v)) }
func (v *UInt8) load(s raw.Slot)   { *v = UInt8(s.Bits) }

// Int16 is the host form of the runtime signed 16-bit integer.
type Int16 int16

func (Int16) matches(t *Type) bool { return t.IsBuiltin(raw.KindInt16) }
func (v Int16) slot() raw.Slot     { return raw.BitsSlot(uint64(int64(v))) }
func (v *Int16) load(s raw.Slot)   { *v = Int16(s.Bits) }

// UInt16 is the host form of the runtime unsigned 16-bit integer.
type UInt16 uint16

func (UInt16) matches(t *Type) bool { return t.IsBuiltin(raw.KindUInt16) }
func (v UInt16) slot() raw.Slot     { return raw.BitsSlot(uint64(v)) }
func (v *UInt16) load(s raw.Slot)   { *v = UInt16(s.Bits) }

// Int32 is the host form of the runtime signed 32-bit integer.
type Int32 int32

func (Int32) matches(t *Type) bool { return t.IsBuiltin(raw.KindInt32) }
func (v Int32) slot() raw.Slot     { return raw.BitsSlot(uint64(int64(v))) }
func (v *Int32) load(s raw.Slot)   { *v = Int32(s.Bits) }

// UInt32 is the host form of the runtime unsigned 32-bit integer.
type UInt32 uint32

func (UInt32) matches(t *Type) bool { return t.IsBuiltin(raw.KindUInt32) }
func (v UInt32) slot() raw.Slot     { return raw.BitsSlot(uint64(v)) }
func (v *UInt32) load(s raw.Slot)   { *v = UInt32(s.Bits) }

// Int64 is the host form of the runtime signed 64-bit integer.
type Int64 int64

func (Int64) matches(t *Type) bool { return t.IsBuiltin(raw.KindInt64) }
func (v Int64) slot() raw.Slot     { return raw.BitsSlot(uint64(v)) }
func (v *Int64) load(s raw.Slot)   { *v = Int64(s.Bits) }

// UInt64 is the host form of the runtime unsigned 64-bit integer.
type UInt64 uint64

func (UInt64) matches(t *Type) bool { return t.IsBuiltin(raw.KindUInt64) }
func (v UInt64) slot() raw.Slot     { return raw.BitsSlot(uint64(v)) }
func (v *UInt64) load(s raw.Slot)   { *v = UInt64(s.Bits) }

// Float32 is the host form of the runtime 32-bit float.
type Float32 float32

func (Float32) matches(t *Type) bool { return t.IsBuiltin(raw.KindFloat32) }
func (v Float32) slot() raw.Slot     { return raw.BitsSlot(uint64(math.Float32bits(float32(v)))) }
func (v *Float32) load(s raw.Slot)   { *v = Float32(math.Float32frombits(uint32(s.Bits))) }

// Float64 is the host form of the runtime 64-bit float.
type Float64 float64

func (Float64) matches(t *Type) bool { return t.IsBuiltin(raw.KindFloat64) }
func (v Float64) slot() raw.Slot     { return raw.BitsSlot(math.Float64bits(float64(v))) }
func (v *Float64) load(s raw.Slot)   { *v = Float64(math.Float64frombits(s.Bits)) }

// ---------------------------------------------------------------------------
// Str
// ---------------------------------------------------------------------------

// Str is the host form of the runtime string. As an argument it allocates a
// managed string; as a result it reads the managed string's content.
//
// Str is the non-null form: loading a null managed string panics. Use
// OptRef against the string class when null must be representable.
type Str string

func (Str) matches(t *Type) bool { return t.IsBuiltin(raw.KindString) }

func (v Str) slot() raw.Slot {
	return raw.ObjSlot(raw.Current().NewString(string(v)))
}

func (v *Str) load(s raw.Slot) {
	if s.Obj == nil {
		panic("bridge: runtime returned a null string for a non-null Str")
	}
	*v = Str(raw.Current().StringContent(s.Obj))
}
