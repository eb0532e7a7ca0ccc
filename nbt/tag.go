// Package nbt implements a typed, recursive, bit-exact codec for the
// binary "Named Binary Tag" format, plus a gzip framing convenience and a
// pretty-printer. It is the core this module's other packages build on:
// playerdata persists Compounds through it, itemspec produces Compounds
// from the give-command grammar, and inventory builds updated copies of
// Lists of item Compounds.
//
// The tag model is a single tagged union (Tag, with an explicit Kind
// discriminant) rather than a class hierarchy dispatched on dynamic type:
// every accessor fails closed with a WrongKind error instead of panicking
// or silently coercing. Numeric kinds are distinct even where their
// widths would allow coercion — a Byte decoded as 1 is re-encoded as a
// Byte, never promoted to an Int — because round-trip fidelity is the
// whole point of this package.
package nbt

import "fmt"

// Kind is the NBT tag discriminant, with the fixed binary values 0..12.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

var kindNames = [...]string{
	KindEnd:       "End",
	KindByte:      "Byte",
	KindShort:     "Short",
	KindInt:       "Int",
	KindLong:      "Long",
	KindFloat:     "Float",
	KindDouble:    "Double",
	KindByteArray: "ByteArray",
	KindString:    "String",
	KindList:      "List",
	KindCompound:  "Compound",
	KindIntArray:  "IntArray",
	KindLongArray: "LongArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Valid reports whether k is one of the 13 defined NBT kinds.
func (k Kind) Valid() bool {
	return k <= KindLongArray
}

// Tag is one node of an NBT tree: a kind discriminant plus whichever
// payload field that kind uses. Only the field matching Kind is
// meaningful; the rest are zero.
type Tag struct {
	kind Kind

	b8  int8
	s16 int16
	i32 int32
	i64 int64
	f32 float32
	f64 float64

	str string // String payload; also used opaquely for raw-byte round-trip, see decode.go.

	byteArray []int8
	intArray  []int32
	longArray []int64

	list     *List
	compound *Compound
}

// Kind reports the tag's NBT kind.
func (t Tag) Kind() Kind { return t.kind }

// WrongKind is returned by a typed accessor when the tag's actual kind
// differs from the one the accessor requires.
type WrongKind struct {
	Expected Kind
	Found    Kind
}

func (e *WrongKind) Error() string {
	return fmt.Sprintf("wrong NBT kind: expected %v, found %v", e.Expected, e.Found)
}

// End returns the End tag (the Compound terminator; never meaningfully
// stored inside a tree, but needed to represent an empty List's declared
// element kind).
func End() Tag { return Tag{kind: KindEnd} }

func Byte(v int8) Tag      { return Tag{kind: KindByte, b8: v} }
func Short(v int16) Tag    { return Tag{kind: KindShort, s16: v} }
func Int(v int32) Tag      { return Tag{kind: KindInt, i32: v} }
func Long(v int64) Tag     { return Tag{kind: KindLong, i64: v} }
func Float(v float32) Tag  { return Tag{kind: KindFloat, f32: v} }
func Double(v float64) Tag { return Tag{kind: KindDouble, f64: v} }
func String(v string) Tag  { return Tag{kind: KindString, str: v} }

// ByteArray wraps a copy of v as a ByteArray tag.
func ByteArray(v []int8) Tag {
	c := make([]int8, len(v))
	copy(c, v)
	return Tag{kind: KindByteArray, byteArray: c}
}

// IntArray wraps a copy of v as an IntArray tag.
func IntArray(v []int32) Tag {
	c := make([]int32, len(v))
	copy(c, v)
	return Tag{kind: KindIntArray, intArray: c}
}

// LongArray wraps a copy of v as a LongArray tag.
func LongArray(v []int64) Tag {
	c := make([]int64, len(v))
	copy(c, v)
	return Tag{kind: KindLongArray, longArray: c}
}

// ListTag wraps an existing *List as a Tag.
func ListTag(l *List) Tag {
	if l == nil {
		l = NewList(KindEnd)
	}
	return Tag{kind: KindList, list: l}
}

// CompoundTag wraps an existing *Compound as a Tag.
func CompoundTag(c *Compound) Tag {
	if c == nil {
		c = NewCompound()
	}
	return Tag{kind: KindCompound, compound: c}
}

func wrongKind(expected, found Kind) error {
	return &WrongKind{Expected: expected, Found: found}
}

func (t Tag) ByteValue() (int8, error) {
	if t.kind != KindByte {
		return 0, wrongKind(KindByte, t.kind)
	}
	return t.b8, nil
}

func (t Tag) ShortValue() (int16, error) {
	if t.kind != KindShort {
		return 0, wrongKind(KindShort, t.kind)
	}
	return t.s16, nil
}

func (t Tag) IntValue() (int32, error) {
	if t.kind != KindInt {
		return 0, wrongKind(KindInt, t.kind)
	}
	return t.i32, nil
}

func (t Tag) LongValue() (int64, error) {
	if t.kind != KindLong {
		return 0, wrongKind(KindLong, t.kind)
	}
	return t.i64, nil
}

func (t Tag) FloatValue() (float32, error) {
	if t.kind != KindFloat {
		return 0, wrongKind(KindFloat, t.kind)
	}
	return t.f32, nil
}

func (t Tag) DoubleValue() (float64, error) {
	if t.kind != KindDouble {
		return 0, wrongKind(KindDouble, t.kind)
	}
	return t.f64, nil
}

func (t Tag) StringValue() (string, error) {
	if t.kind != KindString {
		return "", wrongKind(KindString, t.kind)
	}
	return t.str, nil
}

func (t Tag) ByteArrayValue() ([]int8, error) {
	if t.kind != KindByteArray {
		return nil, wrongKind(KindByteArray, t.kind)
	}
	return t.byteArray, nil
}

func (t Tag) IntArrayValue() ([]int32, error) {
	if t.kind != KindIntArray {
		return nil, wrongKind(KindIntArray, t.kind)
	}
	return t.intArray, nil
}

func (t Tag) LongArrayValue() ([]int64, error) {
	if t.kind != KindLongArray {
		return nil, wrongKind(KindLongArray, t.kind)
	}
	return t.longArray, nil
}

func (t Tag) ListValue() (*List, error) {
	if t.kind != KindList {
		return nil, wrongKind(KindList, t.kind)
	}
	return t.list, nil
}

func (t Tag) CompoundValue() (*Compound, error) {
	if t.kind != KindCompound {
		return nil, wrongKind(KindCompound, t.kind)
	}
	return t.compound, nil
}

// Clone returns a Tag that shares no mutable state with t: List and
// Compound payloads are deep-cloned recursively, array payloads are
// copied, and every other kind is returned as-is since its payload is
// already an immutable value.
func (t Tag) Clone() Tag {
	switch t.kind {
	case KindByteArray:
		return ByteArray(t.byteArray)
	case KindIntArray:
		return IntArray(t.intArray)
	case KindLongArray:
		return LongArray(t.longArray)
	case KindList:
		return ListTag(t.list.Clone())
	case KindCompound:
		return CompoundTag(t.compound.Clone())
	default:
		return t
	}
}
