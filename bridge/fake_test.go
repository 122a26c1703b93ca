package bridge

import (
	"github.com/chazu/tether/bridge/raw"
)

// ---------------------------------------------------------------------------
// Fake runtime backend
// ---------------------------------------------------------------------------

// methodImpl is the fake's behavior for one method record.
type methodImpl func(recv raw.Slot, args []raw.Slot) (raw.Slot, *raw.ObjectRecord)

type fakeRuntime struct {
	raw.Unimplemented

	assemblies []*raw.AssemblyRecord
	classes    map[*raw.ImageRecord][]*raw.ClassRecord
	impls      map[*raw.MethodRecord]methodImpl
	inited     []*raw.ClassRecord

	stringClass *raw.ClassRecord
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		classes: make(map[*raw.ImageRecord][]*raw.ClassRecord),
		impls:   make(map[*raw.MethodRecord]methodImpl),
	}
}

func (f *fakeRuntime) Assemblies() []*raw.AssemblyRecord { return f.assemblies }

func (f *fakeRuntime) AssemblyImage(a *raw.AssemblyRecord) *raw.ImageRecord { return a.Image }

func (f *fakeRuntime) ImageClasses(img *raw.ImageRecord) []*raw.ClassRecord {
	return f.classes[img]
}

func (f *fakeRuntime) ClassFromName(img *raw.ImageRecord, namespace, name string) *raw.ClassRecord {
	for _, c := range f.classes[img] {
		if c.Namespace == namespace && c.Name == name {
			return c
		}
	}
	return nil
}

func (f *fakeRuntime) InitClass(c *raw.ClassRecord) { f.inited = append(f.inited, c) }

func (f *fakeRuntime) IsAssignableFrom(to, from *raw.ClassRecord) bool {
	for c := from; c != nil; c = c.Parent {
		if c == to {
			return true
		}
		for _, iface := range c.Interfaces {
			if iface == to {
				return true
			}
		}
	}
	return false
}

func (f *fakeRuntime) Invoke(m *raw.MethodRecord, recv raw.Slot, args []raw.Slot) (raw.Slot, *raw.ObjectRecord) {
	impl, ok := f.impls[m]
	if !ok {
		panic("fakeRuntime: no impl for " + m.Name)
	}
	return impl(recv, args)
}

func (f *fakeRuntime) FieldGet(obj *raw.ObjectRecord, fld *raw.FieldRecord) raw.Slot {
	fields, ok := obj.Data.(map[*raw.FieldRecord]raw.Slot)
	if !ok {
		return raw.Slot{}
	}
	return fields[fld]
}

func (f *fakeRuntime) FieldSet(obj *raw.ObjectRecord, fld *raw.FieldRecord, v raw.Slot) {
	fields, ok := obj.Data.(map[*raw.FieldRecord]raw.Slot)
	if !ok {
		fields = make(map[*raw.FieldRecord]raw.Slot)
		obj.Data = fields
	}
	fields[fld] = v
}

func (f *fakeRuntime) NewString(s string) *raw.ObjectRecord {
	return &raw.ObjectRecord{Class: f.stringClass, Data: s}
}

func (f *fakeRuntime) StringContent(obj *raw.ObjectRecord) string { return obj.Data.(string) }

func (f *fakeRuntime) ArrayLen(obj *raw.ObjectRecord) int {
	return len(obj.Data.([]raw.Slot))
}

func (f *fakeRuntime) ArrayGet(obj *raw.ObjectRecord, i int) raw.Slot {
	return obj.Data.([]raw.Slot)[i]
}

func (f *fakeRuntime) ArraySet(obj *raw.ObjectRecord, i int, v raw.Slot) {
	obj.Data.([]raw.Slot)[i] = v
}

// newInstance allocates a fake instance with empty field storage.
func (f *fakeRuntime) newInstance(c *raw.ClassRecord) *raw.ObjectRecord {
	return &raw.ObjectRecord{Class: c, Data: make(map[*raw.FieldRecord]raw.Slot)}
}

// newArray allocates a fake array instance with the given length.
func (f *fakeRuntime) newArray(c *raw.ClassRecord, n int) *raw.ObjectRecord {
	return &raw.ObjectRecord{Class: c, Data: make([]raw.Slot, n)}
}

// ---------------------------------------------------------------------------
// Record builders
// ---------------------------------------------------------------------------

func tOf(k raw.Kind) *raw.TypeRecord { return &raw.TypeRecord{Kind: k} }

func tClass(c *raw.ClassRecord) *raw.TypeRecord {
	return &raw.TypeRecord{Kind: raw.KindClass, Class: c}
}

func newClassRecord(namespace, name string, parent *raw.ClassRecord) *raw.ClassRecord {
	c := &raw.ClassRecord{Name: name, Namespace: namespace, Parent: parent}
	c.ThisArg = raw.TypeRecord{Kind: raw.KindClass, Class: c, ByRef: true}
	c.ByValArg = raw.TypeRecord{Kind: raw.KindClass, Class: c}
	return c
}

func addMethod(c *raw.ClassRecord, name string, static bool, ret *raw.TypeRecord, paramTypes ...*raw.TypeRecord) *raw.MethodRecord {
	params := make([]*raw.ParamRecord, len(paramTypes))
	for i, t := range paramTypes {
		params[i] = &raw.ParamRecord{Position: i, Type: t}
	}
	m := &raw.MethodRecord{Name: name, Static: static, Params: params, Return: ret, Parent: c}
	c.Methods = append(c.Methods, m)
	return m
}

func addField(c *raw.ClassRecord, name string, t *raw.TypeRecord) *raw.FieldRecord {
	f := &raw.FieldRecord{Name: name, Type: t, Parent: c}
	c.Fields = append(c.Fields, f)
	return f
}

// ---------------------------------------------------------------------------
// Shared fixture
// ---------------------------------------------------------------------------

// fixture is the class library most tests run against:
//
//	System.Object
//	System.String : Object
//	System.Exception : Object   (field message: String)
//	Bar.Foo : Object            (static Add(Int32,Int32): Int32,
//	                             static Add(Float64,Float64): Float64,
//	                             instance Describe(): String,
//	                             instance Throwing(): Void,
//	                             field count: Int32)
//	Bar.Baz : Foo
type fixture struct {
	rt *fakeRuntime

	object    *raw.ClassRecord
	str       *raw.ClassRecord
	exception *raw.ClassRecord
	foo       *raw.ClassRecord
	baz       *raw.ClassRecord

	addI32     *raw.MethodRecord
	addF64     *raw.MethodRecord
	describe   *raw.MethodRecord
	throwing   *raw.MethodRecord
	msgField   *raw.FieldRecord
	countField *raw.FieldRecord
}

func newFixture() *fixture {
	f := &fixture{rt: newFakeRuntime()}

	f.object = newClassRecord("System", "Object", nil)
	f.str = newClassRecord("System", "String", f.object)
	f.exception = newClassRecord("System", "Exception", f.object)
	f.msgField = addField(f.exception, "message", tOf(raw.KindString))

	f.foo = newClassRecord("Bar", "Foo", f.object)
	f.addI32 = addMethod(f.foo, "Add", true, tOf(raw.KindInt32), tOf(raw.KindInt32), tOf(raw.KindInt32))
	f.addF64 = addMethod(f.foo, "Add", true, tOf(raw.KindFloat64), tOf(raw.KindFloat64), tOf(raw.KindFloat64))
	f.describe = addMethod(f.foo, "Describe", false, tOf(raw.KindString))
	f.throwing = addMethod(f.foo, "Throwing", false, tOf(raw.KindVoid))
	f.countField = addField(f.foo, "count", tOf(raw.KindInt32))

	f.baz = newClassRecord("Bar", "Baz", f.foo)

	f.rt.stringClass = f.str

	img := &raw.ImageRecord{Name: "Fixture.dll"}
	f.rt.classes[img] = []*raw.ClassRecord{f.object, f.str, f.exception, f.foo, f.baz}
	f.rt.assemblies = []*raw.AssemblyRecord{
		{Name: "NoImage"},
		{Name: "Fixture", Image: img},
	}

	f.rt.impls[f.addI32] = func(recv raw.Slot, args []raw.Slot) (raw.Slot, *raw.ObjectRecord) {
		sum := int32(args[0].Bits) + int32(args[1].Bits)
		return raw.BitsSlot(uint64(int64(sum))), nil
	}
	f.rt.impls[f.describe] = func(recv raw.Slot, args []raw.Slot) (raw.Slot, *raw.ObjectRecord) {
		return raw.ObjSlot(f.rt.NewString("a foo")), nil
	}
	f.rt.impls[f.throwing] = func(recv raw.Slot, args []raw.Slot) (raw.Slot, *raw.ObjectRecord) {
		exc := f.rt.newInstance(f.exception)
		f.rt.FieldSet(exc, f.msgField, raw.ObjSlot(f.rt.NewString("boom")))
		// Poisoned return slot: callers must never read it on the
		// exception path.
		return raw.BitsSlot(0xDEADBEEF), exc
	}

	raw.Bind(f.rt)
	return f
}
