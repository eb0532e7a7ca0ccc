package nbt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDecodeMinimalFile is scenario S1 from spec.md §8: the four bytes
// 0A 00 00 00 decode to an empty root Compound and re-encode unchanged.
func TestDecodeMinimalFile(t *testing.T) {
	in := []byte{0x0A, 0x00, 0x00, 0x00}
	root, name, err := DecodeRoot(in)
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	if name != "" {
		t.Fatalf("root name = %q, want empty", name)
	}
	if root.Len() != 0 {
		t.Fatalf("root.Len() = %d, want 0", root.Len())
	}
	out, err := EncodeRoot(root, name)
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("re-encoded bytes differ (-want +got):\n%s", diff)
	}
}

// tagEqual compares two Tags field-by-field via their exported kind and
// accessor surface only (avoids reaching into unexported fields from a
// _test.go file in the same package, which would work but would defeat
// the purpose of testing through the public accessors).
func tagEqual(t *testing.T, a, b Tag) bool {
	t.Helper()
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindByte:
		av, _ := a.ByteValue()
		bv, _ := b.ByteValue()
		return av == bv
	case KindShort:
		av, _ := a.ShortValue()
		bv, _ := b.ShortValue()
		return av == bv
	case KindInt:
		av, _ := a.IntValue()
		bv, _ := b.IntValue()
		return av == bv
	case KindLong:
		av, _ := a.LongValue()
		bv, _ := b.LongValue()
		return av == bv
	case KindFloat:
		av, _ := a.FloatValue()
		bv, _ := b.FloatValue()
		return av == bv
	case KindDouble:
		av, _ := a.DoubleValue()
		bv, _ := b.DoubleValue()
		return av == bv
	case KindString:
		av, _ := a.StringValue()
		bv, _ := b.StringValue()
		return av == bv
	case KindByteArray:
		av, _ := a.ByteArrayValue()
		bv, _ := b.ByteArrayValue()
		return cmp.Equal(av, bv)
	case KindIntArray:
		av, _ := a.IntArrayValue()
		bv, _ := b.IntArrayValue()
		return cmp.Equal(av, bv)
	case KindLongArray:
		av, _ := a.LongArrayValue()
		bv, _ := b.LongArrayValue()
		return cmp.Equal(av, bv)
	case KindCompound:
		ac, _ := a.CompoundValue()
		bc, _ := b.CompoundValue()
		return compoundEqual(t, ac, bc)
	case KindList:
		al, _ := a.ListValue()
		bl, _ := b.ListValue()
		return listEqual(t, al, bl)
	case KindEnd:
		return true
	}
	return false
}

func listEqual(t *testing.T, a, b *List) bool {
	t.Helper()
	if a.ElemKind() != b.ElemKind() || a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !tagEqual(t, a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

func compoundEqual(t *testing.T, a, b *Compound) bool {
	t.Helper()
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Range(func(name string, at Tag) bool {
		bt, ok := b.Get(name)
		if !ok || !tagEqual(t, at, bt) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// TestHealthEditRoundTrip is scenario S2 (minus the undo/reload part,
// which playerdata covers): editing a Float in place must not promote
// it to any other kind, and the surrounding Int must survive untouched.
func TestHealthEditRoundTrip(t *testing.T) {
	root := NewCompound()
	root.Set("Health", Float(5.0))
	root.Set("foodLevel", Int(18))

	root.Set("Health", Float(20.0))

	encoded, err := EncodeRoot(root, "")
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	decoded, _, err := DecodeRoot(encoded)
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}

	health, ok := decoded.Get("Health")
	if !ok {
		t.Fatal("Health missing after round-trip")
	}
	if health.Kind() != KindFloat {
		t.Fatalf("Health kind = %v, want Float", health.Kind())
	}
	hv, _ := health.FloatValue()
	if hv != 20.0 {
		t.Fatalf("Health = %v, want 20.0", hv)
	}

	food, ok := decoded.Get("foodLevel")
	if !ok {
		t.Fatal("foodLevel missing after round-trip")
	}
	if food.Kind() != KindInt {
		t.Fatalf("foodLevel kind = %v, want Int", food.Kind())
	}
}

// TestKindPreservationAcrossAllKinds exercises testable property 2:
// every kind, including values that would fit in a narrower kind, must
// decode back to the kind it was encoded with.
func TestKindPreservationAcrossAllKinds(t *testing.T) {
	list := NewList(KindInt)
	for _, v := range []int32{1, 2, 3} {
		if err := list.Append(Int(v)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	root := NewCompound()
	root.Set("aByte", Byte(3))       // small value, must stay Byte
	root.Set("aShort", Short(3))     // small value, must stay Short
	root.Set("anInt", Int(3))        // small value, must stay Int
	root.Set("aLong", Long(3))       // small value, must stay Long
	root.Set("aFloat", Float(3))
	root.Set("aDouble", Double(3))
	root.Set("aString", String("hello"))
	root.Set("aByteArray", ByteArray([]int8{1, -2, 3}))
	root.Set("anIntArray", IntArray([]int32{1, -2, 3}))
	root.Set("aLongArray", LongArray([]int64{1, -2, 3}))
	root.Set("aList", ListTag(list))

	sub := NewCompound()
	sub.Set("nested", Byte(1))
	root.Set("aCompound", CompoundTag(sub))

	encoded, err := EncodeRoot(root, "")
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	decoded, _, err := DecodeRoot(encoded)
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}

	if !compoundEqual(t, root, decoded) {
		t.Fatalf("round-trip mismatch:\n got: %s\nwant: %s",
			PrettyPrint("root", CompoundTag(decoded), PrintOptions{}),
			PrettyPrint("root", CompoundTag(root), PrintOptions{}))
	}
}

func TestListHomogeneityEnforced(t *testing.T) {
	l := NewList(KindInt)
	if err := l.Append(Int(1)); err != nil {
		t.Fatalf("Append(Int): %v", err)
	}
	err := l.Append(String("oops"))
	if err == nil {
		t.Fatal("Append(String) into an Int list should fail")
	}
	if _, ok := err.(*WrongKind); !ok {
		t.Fatalf("expected *WrongKind, got %T", err)
	}
	if l.Len() != 1 {
		t.Fatalf("rejected Append should not mutate the list, len = %d", l.Len())
	}
}

func TestEmptyListRoundTrip(t *testing.T) {
	root := NewCompound()
	root.Set("empty", ListTag(NewList(KindEnd)))

	encoded, err := EncodeRoot(root, "")
	if err != nil {
		t.Fatalf("EncodeRoot: %v", err)
	}
	decoded, _, err := DecodeRoot(encoded)
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	tag, ok := decoded.Get("empty")
	if !ok {
		t.Fatal("empty list missing")
	}
	l, err := tag.ListValue()
	if err != nil {
		t.Fatalf("ListValue: %v", err)
	}
	if l.ElemKind() != KindEnd || l.Len() != 0 {
		t.Fatalf("empty list = (%v, %d), want (End, 0)", l.ElemKind(), l.Len())
	}
}

// TestEmptyListAcceptsAnyKindByte covers spec.md §4.2: "For length 0
// accept any kind byte (including End) as empty" — an out-of-range kind
// byte must not be rejected when the length is 0.
func TestEmptyListAcceptsAnyKindByte(t *testing.T) {
	e := NewEncoder()
	e.writeUByte(byte(KindCompound))
	e.writeString("")
	e.writeUByte(byte(KindList))
	e.writeString("l")
	e.writeUByte(0xFE) // out-of-range element kind
	e.writeInt(0)
	e.writeUByte(byte(KindEnd))

	decoded, _, err := DecodeRoot(e.Bytes())
	if err != nil {
		t.Fatalf("DecodeRoot: %v", err)
	}
	tag, ok := decoded.Get("l")
	if !ok {
		t.Fatal("l missing")
	}
	l, err := tag.ListValue()
	if err != nil {
		t.Fatalf("ListValue: %v", err)
	}
	if l.ElemKind() != KindEnd || l.Len() != 0 {
		t.Fatalf("list = (%v, %d), want (End, 0)", l.ElemKind(), l.Len())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"truncated root", []byte{0x0A}},
		{"root not compound", []byte{0x01, 0x00, 0x00}},
		{"invalid tag kind", []byte{0x0A, 0x00, 0x00, 0xFE}},
		{"negative list length", func() []byte {
			e := NewEncoder()
			e.writeUByte(byte(KindCompound))
			e.writeString("")
			e.writeUByte(byte(KindList))
			e.writeString("l")
			e.writeUByte(byte(KindInt))
			e.writeInt(-1)
			e.writeUByte(byte(KindEnd))
			return e.Bytes()
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeRoot(tt.in); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestPrettyPrintDoesNotMutate(t *testing.T) {
	root := NewCompound()
	root.Set("Health", Float(20))
	before := root.Len()
	_ = PrettyPrint("root", CompoundTag(root), PrintOptions{})
	if root.Len() != before {
		t.Fatalf("PrettyPrint mutated the compound: len %d -> %d", before, root.Len())
	}
}

func TestPrettyPrintInlinesShortNumericLists(t *testing.T) {
	l := NewList(KindDouble)
	for _, v := range []float64{1.5, 64, -2} {
		if err := l.Append(Double(v)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	out := PrettyPrint("Pos", ListTag(l), PrintOptions{})
	want := "Pos: List<Double>[3]: [1.5, 64, -2]\n"
	if out != want {
		t.Fatalf("PrettyPrint =\n%q\nwant\n%q", out, want)
	}
}

func TestPrettyPrintDepthCutoff(t *testing.T) {
	inner := NewCompound()
	inner.Set("deep", Int(1))
	outer := NewCompound()
	outer.Set("inner", CompoundTag(inner))

	out := PrettyPrint("root", CompoundTag(outer), PrintOptions{MaxDepth: 1})
	for _, want := range []string{"root: Compound{1}:", "inner: Compound{1}:", "deep: Int (elided)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("PrettyPrint with MaxDepth=1 = %q, want substring %q", out, want)
		}
	}
	if strings.Contains(out, "Int(1)") {
		t.Fatalf("PrettyPrint with MaxDepth=1 should elide deep's value: %q", out)
	}
}
