package raw

import "sync"

// Runtime is the set of primitives the bridge requires from the managed
// runtime. It is an external collaborator: domain management, process
// attachment and the trampoline that actually executes managed code all
// live behind this interface.
//
// All calls are synchronous and block the calling thread. The bridge adds
// no locking of its own; implementations share whatever thread-safety
// contract the underlying runtime has.
type Runtime interface {
	// Assemblies enumerates the loaded assemblies.
	Assemblies() []*AssemblyRecord

	// AssemblyImage returns the metadata image for an assembly, or nil if
	// the assembly has none.
	AssemblyImage(a *AssemblyRecord) *ImageRecord

	// ImageClasses returns the classes declared in an image.
	ImageClasses(img *ImageRecord) []*ClassRecord

	// ClassFromName resolves a class in an image by namespace and name.
	// Returns nil if absent.
	ClassFromName(img *ImageRecord, namespace, name string) *ClassRecord

	// InitClass runs the class's static initialization if it has not run
	// yet. Called once per class when the bridge first resolves it.
	InitClass(c *ClassRecord)

	// IsAssignableFrom reports whether a value of class `from` can be
	// assigned to a location of class `to` (subtype or interface).
	IsAssignableFrom(to, from *ClassRecord) bool

	// Invoke executes a method with the given receiver and argument slots.
	// The second result is the thrown exception object, or nil; when it is
	// set the return slot must not be interpreted.
	Invoke(m *MethodRecord, recv Slot, args []Slot) (Slot, *ObjectRecord)

	// FieldGet reads a field value from an instance.
	FieldGet(obj *ObjectRecord, f *FieldRecord) Slot

	// FieldSet writes a field value on an instance.
	FieldSet(obj *ObjectRecord, f *FieldRecord, v Slot)

	// NewString allocates a managed string with the given content.
	NewString(s string) *ObjectRecord

	// StringContent returns the content of a managed string.
	StringContent(obj *ObjectRecord) string

	// ArrayLen returns the element count of a managed array.
	ArrayLen(obj *ObjectRecord) int

	// ArrayGet reads an array element.
	ArrayGet(obj *ObjectRecord, i int) Slot

	// ArraySet writes an array element.
	ArraySet(obj *ObjectRecord, i int, v Slot)
}

var (
	boundMu sync.RWMutex
	bound   Runtime
)

// Bind installs the process-wide runtime backend. Call it once at attach,
// before any bridge lookup. Rebinding is permitted so tests can install
// fakes; production code binds exactly once.
func Bind(rt Runtime) {
	boundMu.Lock()
	bound = rt
	boundMu.Unlock()
}

// Current returns the bound runtime backend. Panics if Bind has not been
// called: every bridge operation is meaningless without a runtime.
func Current() Runtime {
	boundMu.RLock()
	rt := bound
	boundMu.RUnlock()
	if rt == nil {
		panic("raw: no runtime bound; call raw.Bind at attach time")
	}
	return rt
}

// Unimplemented provides panicking stubs for every Runtime method. Embed it
// in partial backends (test fixtures, capture-only backends) so they only
// spell out the primitives they actually serve.
type Unimplemented struct{}

func (Unimplemented) Assemblies() []*AssemblyRecord { panic("raw: Assemblies not implemented") }
func (Unimplemented) AssemblyImage(*AssemblyRecord) *ImageRecord {
	panic("raw: AssemblyImage not implemented")
}
func (Unimplemented) ImageClasses(*ImageRecord) []*ClassRecord {
	panic("raw: ImageClasses not implemented")
}
func (Unimplemented) ClassFromName(*ImageRecord, string, string) *ClassRecord {
	panic("raw: ClassFromName not implemented")
}
func (Unimplemented) InitClass(*ClassRecord) { panic("raw: InitClass not implemented") }
func (Unimplemented) IsAssignableFrom(*ClassRecord, *ClassRecord) bool {
	panic("raw: IsAssignableFrom not implemented")
}
func (Unimplemented) Invoke(*MethodRecord, Slot, []Slot) (Slot, *ObjectRecord) {
	panic("raw: Invoke not implemented")
}
func (Unimplemented) FieldGet(*ObjectRecord, *FieldRecord) Slot {
	panic("raw: FieldGet not implemented")
}
func (Unimplemented) FieldSet(*ObjectRecord, *FieldRecord, Slot) {
	panic("raw: FieldSet not implemented")
}
func (Unimplemented) NewString(string) *ObjectRecord   { panic("raw: NewString not implemented") }
func (Unimplemented) StringContent(*ObjectRecord) string {
	panic("raw: StringContent not implemented")
}
func (Unimplemented) ArrayLen(*ObjectRecord) int        { panic("raw: ArrayLen not implemented") }
func (Unimplemented) ArrayGet(*ObjectRecord, int) Slot  { panic("raw: ArrayGet not implemented") }
func (Unimplemented) ArraySet(*ObjectRecord, int, Slot) { panic("raw: ArraySet not implemented") }
