package bridge

import (
	"unsafe"

	"github.com/tliron/commonlog"

	"github.com/chazu/tether/bridge/raw"
)

var log = commonlog.GetLogger("tether.bridge")

// Class is a view over a runtime class record. Equality is record identity:
// two *Class values are the same class exactly when they point at the same
// record.
type Class struct{ rec raw.ClassRecord }

func wrapClass(r *raw.ClassRecord) *Class { return (*Class)(unsafe.Pointer(r)) }

func (c *Class) raw() *raw.ClassRecord { return (*raw.ClassRecord)(unsafe.Pointer(c)) }

// FindClass resolves a class by namespace and name across all loaded
// assemblies. Assemblies without an image are skipped. The class's static
// state is initialized on resolution. Returns nil if no image declares the
// class.
func FindClass(namespace, name string) *Class {
	rt := raw.Current()
	for _, asm := range rt.Assemblies() {
		img := rt.AssemblyImage(asm)
		if img == nil {
			continue
		}
		rec := rt.ClassFromName(img, namespace, name)
		if rec == nil {
			continue
		}
		rt.InitClass(rec)
		log.Debugf("resolved class %s in %s", wrapClass(rec), img.Name)
		return wrapClass(rec)
	}
	log.Debugf("class %s.%s not found in any loaded image", namespace, name)
	return nil
}

// Name returns the class name. The runtime guarantees populated names for
// loaded classes; an empty one indicates corrupt metadata.
func (c *Class) Name() string {
	name := c.raw().Name
	if name == "" {
		panic("bridge: class record has no name")
	}
	return name
}

// Namespace returns the namespace containing the class. Empty for classes
// in the global namespace.
func (c *Class) Namespace() string { return c.raw().Namespace }

// String renders the class as Namespace.Name, or just Name when the
// namespace is empty.
func (c *Class) String() string {
	ns := c.Namespace()
	if ns == "" {
		return c.Name()
	}
	return ns + "." + c.Name()
}

// Methods returns the methods declared directly on this class, as a view
// over the runtime-owned array. Inherited methods are reached through
// Hierarchy, not through this list.
func (c *Class) Methods() []*Method {
	return wrapSlice[raw.MethodRecord, Method](c.raw().Methods)
}

// Fields returns the fields declared directly on this class.
func (c *Class) Fields() []*Field {
	return wrapSlice[raw.FieldRecord, Field](c.raw().Fields)
}

// ImplementedInterfaces returns the interfaces this class implements.
func (c *Class) ImplementedInterfaces() []*Class {
	return wrapSlice[raw.ClassRecord, Class](c.raw().Interfaces)
}

// NestedTypes returns the types nested in this class.
func (c *Class) NestedTypes() []*Class {
	return wrapSlice[raw.ClassRecord, Class](c.raw().Nested)
}

// Parent returns the parent class, or nil for the root object type.
func (c *Class) Parent() *Class { return wrapClass(c.raw().Parent) }

// ThisArgType returns the type descriptor of `this` for the class.
func (c *Class) ThisArgType() *Type { return wrapType(&c.raw().ThisArg) }

// ByValArgType returns the type descriptor of by-value arguments for the
// class.
func (c *Class) ByValArgType() *Type { return wrapType(&c.raw().ByValArg) }

// IsAssignableFrom reports whether a value of class other can be assigned
// to a location of class c.
func (c *Class) IsAssignableFrom(other *Class) bool {
	return raw.Current().IsAssignableFrom(c.raw(), other.raw())
}

// Hierarchy returns a fresh iterator over the class and its ancestors,
// starting with the class itself. Each call yields an independent,
// restartable traversal.
//
// Termination relies on the runtime's parent chains being finite and
// acyclic; the runtime never produces cycles, so no defensive break is
// applied here.
func (c *Class) Hierarchy() Hierarchy {
	return Hierarchy{current: c}
}

// Hierarchy walks a class's parent chain. The zero value is exhausted.
type Hierarchy struct {
	current *Class
}

// Next returns the next class in the chain, or nil when the chain ends.
func (h *Hierarchy) Next() *Class {
	cur := h.current
	if cur != nil {
		h.current = cur.Parent()
	}
	return cur
}
