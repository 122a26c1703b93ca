// Package raw defines the boundary between the bridge and the managed
// runtime that backs it.
//
// Everything here is owned by the runtime side: the record structs describe
// metadata the runtime allocates at assembly load and never frees or
// relocates, and the Runtime interface is the set of primitives the bridge
// requires from it. The bridge holds record pointers for the process
// lifetime and never mutates them.
package raw

// Kind identifies a builtin runtime type, mirroring the runtime's own type
// element tags.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindInt8
	KindUInt8
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat32
	KindFloat64
	KindString
	KindPointer
	KindValueType
	KindClass
	KindArray
	KindGeneric
	KindObject
)

var kindNames = [...]string{
	KindVoid:      "Void",
	KindBool:      "Bool",
	KindChar:      "Char",
	KindInt8:      "Int8",
	KindUInt8:     "UInt8",
	KindInt16:     "Int16",
	KindUInt16:    "UInt16",
	KindInt32:     "Int32",
	KindUInt32:    "UInt32",
	KindInt64:     "Int64",
	KindUInt64:    "UInt64",
	KindFloat32:   "Float32",
	KindFloat64:   "Float64",
	KindString:    "String",
	KindPointer:   "Pointer",
	KindValueType: "ValueType",
	KindClass:     "Class",
	KindArray:     "Array",
	KindGeneric:   "Generic",
	KindObject:    "Object",
}

// String returns the canonical display name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsReference reports whether values of this kind are passed as object
// references rather than inline scalar bits.
func (k Kind) IsReference() bool {
	switch k {
	case KindString, KindClass, KindArray, KindGeneric, KindObject:
		return true
	}
	return false
}

// TypeRecord is the runtime's tagged description of a type: a builtin kind,
// an optional class for class/struct/enum types, and modifier flags the
// bridge exposes only for matching.
type TypeRecord struct {
	Kind  Kind
	Class *ClassRecord // nil for builtins with no backing class
	ByRef bool
}

// AssemblyRecord describes a loaded assembly. An assembly may have no
// image; lookups must skip it rather than fail.
type AssemblyRecord struct {
	Name  string
	Image *ImageRecord
}

// ImageRecord describes the metadata image of an assembly.
type ImageRecord struct {
	Name string
}

// ClassRecord is the runtime's metadata record for a loaded type. The
// member slices point into runtime-owned arrays; the bridge views them
// without copying.
type ClassRecord struct {
	Name       string
	Namespace  string
	Parent     *ClassRecord
	Methods    []*MethodRecord
	Fields     []*FieldRecord
	Interfaces []*ClassRecord
	Nested     []*ClassRecord
	ThisArg    TypeRecord
	ByValArg   TypeRecord
}

// MethodRecord is the runtime's metadata record for a method. Immutable
// after the runtime creates it. Return is never nil; methods that return
// nothing carry a KindVoid type record.
type MethodRecord struct {
	Name   string
	Static bool
	Params []*ParamRecord
	Return *TypeRecord
	Parent *ClassRecord
}

// FieldRecord is the runtime's metadata record for a field.
type FieldRecord struct {
	Name   string
	Type   *TypeRecord
	Parent *ClassRecord
}

// ParamRecord describes one method parameter.
type ParamRecord struct {
	Name     string
	Position int
	Type     *TypeRecord
}

// ObjectRecord is a live managed instance. Payload is owned and interpreted
// by the runtime; the bridge only ever hands it back through the Runtime
// primitives.
type ObjectRecord struct {
	Class *ClassRecord
	Data  any
}

// Slot is the runtime-type-erased value cell used by the generic invoke and
// field primitives. A slot carries either 64 scalar bits or an object
// reference; which one is valid is licensed by the capability check made
// before the slot was produced.
type Slot struct {
	Bits uint64
	Obj  *ObjectRecord
}

// BitsSlot returns a scalar slot.
func BitsSlot(bits uint64) Slot { return Slot{Bits: bits} }

// ObjSlot returns an object-reference slot. A nil object is the runtime's
// null reference.
func ObjSlot(obj *ObjectRecord) Slot { return Slot{Obj: obj} }
