package bridge

import (
	"unsafe"

	"github.com/chazu/tether/bridge/raw"
)

// Method is a view over a runtime method record. Immutable after the
// runtime creates it; identity is record identity.
type Method struct{ rec raw.MethodRecord }

func wrapMethod(r *raw.MethodRecord) *Method { return (*Method)(unsafe.Pointer(r)) }

func (m *Method) raw() *raw.MethodRecord { return (*raw.MethodRecord)(unsafe.Pointer(m)) }

// Name returns the method name.
func (m *Method) Name() string {
	name := m.raw().Name
	if name == "" {
		panic("bridge: method record has no name")
	}
	return name
}

// IsStatic reports whether the method is static.
func (m *Method) IsStatic() bool { return m.raw().Static }

// Params returns the method's parameters in declaration order, as a view
// over the runtime-owned array.
func (m *Method) Params() []*Param {
	return wrapSlice[raw.ParamRecord, Param](m.raw().Params)
}

// ReturnType returns the method's return type descriptor.
func (m *Method) ReturnType() *Type { return wrapType(m.raw().Return) }

// DeclaringClass returns the class the method is declared on.
func (m *Method) DeclaringClass() *Class { return wrapClass(m.raw().Parent) }

// String renders the method as Class.Name for diagnostics.
func (m *Method) String() string {
	return m.DeclaringClass().String() + "." + m.Name()
}

// Param is a view over one method parameter record.
type Param struct{ rec raw.ParamRecord }

func (p *Param) raw() *raw.ParamRecord { return (*raw.ParamRecord)(unsafe.Pointer(p)) }

// Name returns the parameter name. May be empty; parameter names are not
// required metadata.
func (p *Param) Name() string { return p.raw().Name }

// Position returns the zero-based parameter position.
func (p *Param) Position() int { return p.raw().Position }

// Type returns the parameter's type descriptor.
func (p *Param) Type() *Type { return wrapType(p.raw().Type) }
