package bridge

import (
	"testing"

	"github.com/chazu/tether/bridge/raw"
)

// ---------------------------------------------------------------------------
// Typed field access
// ---------------------------------------------------------------------------

// TestFieldRoundTrip stores then loads every primitive capability through a
// typed field and checks the value survives.
func TestFieldRoundTrip(t *testing.T) {
	fx := newFixture()
	prim := newClassRecord("Bar", "Prim", fx.object)

	cases := []struct {
		kind  raw.Kind
		store Argument
		load  Result
	}{
		{raw.KindBool, Bool(true), new(Bool)},
		{raw.KindChar, Char('Q'), new(Char)},
		{raw.KindInt8, Int8(-12), new(Int8)},
		{raw.KindUInt8, UInt8(200), new(UInt8)},
		{raw.KindInt16, Int16(-1234), new(Int16)},
		{raw.KindUInt16, UInt16(54321), new(UInt16)},
		{raw.KindInt32, Int32(-123456), new(Int32)},
		{raw.KindUInt32, UInt32(3123456789), new(UInt32)},
		{raw.KindInt64, Int64(-1 << 40), new(Int64)},
		{raw.KindUInt64, UInt64(1 << 63), new(UInt64)},
		{raw.KindFloat32, Float32(2.5), new(Float32)},
		{raw.KindFloat64, Float64(-0.125), new(Float64)},
		{raw.KindString, Str("tether"), new(Str)},
	}

	fields := make([]*Field, len(cases))
	for i, tc := range cases {
		rec := addField(prim, tc.kind.String(), tOf(tc.kind))
		fields[i] = wrapField(rec)
	}
	obj := wrapObject(fx.rt.newInstance(prim))

	for i, tc := range cases {
		f := fields[i]
		f.Store(obj, tc.store)
		f.Load(obj, tc.load)

		var got, want any
		switch dst := tc.load.(type) {
		case *Bool:
			got, want = *dst, tc.store.(Bool)
		case *Char:
			got, want = *dst, tc.store.(Char)
		case *Int8:
			got, want = *dst, tc.store.(Int8)
		case *UInt8:
			got, want = *dst, tc.store.(UInt8)
		case *Int16:
			got, want = *dst, tc.store.(Int16)
		case *UInt16:
			got, want = *dst, tc.store.(UInt16)
		case *Int32:
			got, want = *dst, tc.store.(Int32)
		case *UInt32:
			got, want = *dst, tc.store.(UInt32)
		case *Int64:
			got, want = *dst, tc.store.(Int64)
		case *UInt64:
			got, want = *dst, tc.store.(UInt64)
		case *Float32:
			got, want = *dst, tc.store.(Float32)
		case *Float64:
			got, want = *dst, tc.store.(Float64)
		case *Str:
			got, want = *dst, tc.store.(Str)
		}
		if got != want {
			t.Errorf("%s round trip = %v, want %v", tc.kind, got, want)
		}
	}
}

func TestFieldRefRoundTrip(t *testing.T) {
	fx := newFixture()
	holder := newClassRecord("Bar", "Holder", fx.object)
	rec := addField(holder, "other", tClass(fx.foo))
	f := wrapField(rec)

	obj := wrapObject(fx.rt.newInstance(holder))
	val := wrapObject(fx.rt.newInstance(fx.baz))

	// A Baz value stores into a Foo-typed field: assignability, not exact
	// class equality.
	f.Store(obj, val.Ref())

	dst := OptRefTo(wrapClass(fx.foo))
	f.Load(obj, dst)
	if dst.Obj != val {
		t.Errorf("loaded %v, want the stored instance", dst.Obj)
	}
}

func TestFieldStoreMismatchPanics(t *testing.T) {
	fx := newFixture()
	obj := wrapObject(fx.rt.newInstance(fx.foo))
	count := wrapField(fx.countField)

	defer func() {
		if recover() == nil {
			t.Error("storing a Float64 into an Int32 field should panic")
		}
	}()
	count.Store(obj, Float64(1.5))
}

func TestFieldLoadMismatchPanics(t *testing.T) {
	fx := newFixture()
	obj := wrapObject(fx.rt.newInstance(fx.foo))
	count := wrapField(fx.countField)

	defer func() {
		if recover() == nil {
			t.Error("loading an Int32 field into a Str should panic")
		}
	}()
	count.Load(obj, new(Str))
}

func TestLoadFieldByName(t *testing.T) {
	fx := newFixture()
	obj := wrapObject(fx.rt.newInstance(fx.baz))

	count := wrapField(fx.countField)
	count.Store(obj, Int32(11))

	got, err := LoadField[Int32](obj, "count")
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}
	if got != 11 {
		t.Errorf("LoadField = %d, want 11", got)
	}
}
