package bridge

import (
	"testing"

	"github.com/chazu/tether/bridge/raw"
)

// ---------------------------------------------------------------------------
// Capability matching
// ---------------------------------------------------------------------------

func TestPrimitiveMatchingIsExact(t *testing.T) {
	newFixture()

	i32 := wrapType(tOf(raw.KindInt32))
	i64 := wrapType(tOf(raw.KindInt64))

	if !Int32(0).matches(i32) {
		t.Error("Int32 should match the Int32 kind")
	}
	if Int32(0).matches(i64) {
		t.Error("Int32 must not match a wider integer kind")
	}
	if Int64(0).matches(i32) {
		t.Error("Int64 must not match a narrower integer kind")
	}
}

func TestPrimitiveRejectsByRefSlot(t *testing.T) {
	newFixture()

	byref := wrapType(&raw.TypeRecord{Kind: raw.KindInt32, ByRef: true})
	if Int32(0).matches(byref) {
		t.Error("a by-value primitive must not match a by-reference slot")
	}
}

func TestRefMatchingWalksHierarchy(t *testing.T) {
	fx := newFixture()
	fooT := wrapType(tClass(fx.foo))
	bazT := wrapType(tClass(fx.baz))

	// A Baz reference fits a Foo-typed slot, not the reverse.
	if !(Ref{Class: wrapClass(fx.baz)}).matches(fooT) {
		t.Error("a subclass reference should match a superclass slot")
	}
	if (Ref{Class: wrapClass(fx.foo)}).matches(bazT) {
		t.Error("a superclass reference must not match a subclass slot")
	}
}

func TestRefMatchingRejectsValueKinds(t *testing.T) {
	fx := newFixture()

	if (Ref{Class: wrapClass(fx.foo)}).matches(wrapType(tOf(raw.KindInt32))) {
		t.Error("a reference must not match a value slot")
	}
}

func TestRefAndOptRefMatchTheSameSlots(t *testing.T) {
	fx := newFixture()
	fooT := wrapType(tClass(fx.foo))

	r := Ref{Class: wrapClass(fx.baz)}
	o := OptRef{Class: wrapClass(fx.baz)}
	if r.matches(fooT) != o.matches(fooT) {
		t.Error("the non-null form accepts exactly the matches of its nullable counterpart")
	}
}

func TestRefLoadPanicsOnNull(t *testing.T) {
	fx := newFixture()

	dst := RefTo(wrapClass(fx.foo))
	defer func() {
		if recover() == nil {
			t.Error("loading null into a non-null Ref should panic")
		}
	}()
	dst.load(raw.Slot{})
}

func TestOptRefLoadAcceptsNull(t *testing.T) {
	fx := newFixture()

	dst := OptRefTo(wrapClass(fx.foo))
	dst.load(raw.Slot{})
	if dst.Obj != nil {
		t.Errorf("null should load as nil Obj, got %v", dst.Obj)
	}
}

func TestNilRefArgumentPanics(t *testing.T) {
	fx := newFixture()

	defer func() {
		if recover() == nil {
			t.Error("marshalling a Ref with nil Obj should panic")
		}
	}()
	(Ref{Class: wrapClass(fx.foo)}).slot()
}

func TestStrMarshalling(t *testing.T) {
	fx := newFixture()

	s := Str("hello").slot()
	if s.Obj == nil || s.Obj.Class != fx.str {
		t.Fatal("Str argument should allocate a managed string")
	}

	var back Str
	back.load(s)
	if back != "hello" {
		t.Errorf("round trip = %q, want %q", back, "hello")
	}
}

func TestReceiverMatching(t *testing.T) {
	fx := newFixture()
	add := wrapMethod(fx.addI32)
	describe := wrapMethod(fx.describe)

	if !(Static{}).matchesThis(add) {
		t.Error("Static should match a static method")
	}
	if (Static{}).matchesThis(describe) {
		t.Error("Static must not match an instance method")
	}

	baz := Ref{Class: wrapClass(fx.baz)}
	if !baz.matchesThis(describe) {
		t.Error("a subclass reference should receive an inherited instance method")
	}
	if baz.matchesThis(add) {
		t.Error("an instance reference must not receive a static method")
	}
}
