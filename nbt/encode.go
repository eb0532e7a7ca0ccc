package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Encoder writes the binary NBT format (big-endian throughout). Unlike
// the source tool this module replaces, width is always driven by the
// in-memory Tag kind, never re-derived from the numeric value — see
// spec.md §9 and DESIGN.md for why the source's "auto-pick the smallest
// int type" behavior is a round-trip-fidelity bug this module does not
// repeat.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the bytes written so far.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Encoder) writeUByte(v byte) { e.buf.WriteByte(v) }
func (e *Encoder) writeByte(v int8)  { e.buf.WriteByte(byte(v)) }

func (e *Encoder) writeShort(v int16) {
	e.writeUShort(uint16(v))
}

func (e *Encoder) writeUShort(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) writeInt(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	e.buf.Write(b[:])
}

func (e *Encoder) writeLong(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	e.buf.Write(b[:])
}

func (e *Encoder) writeFloat(v float32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
	e.buf.Write(b[:])
}

func (e *Encoder) writeDouble(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf.Write(b[:])
}

func (e *Encoder) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("nbt: string too long to encode: %d bytes (max %d)", len(s), math.MaxUint16)
	}
	e.writeUShort(uint16(len(s)))
	e.buf.WriteString(s)
	return nil
}

func (e *Encoder) writeByteArray(v []int8) {
	e.writeInt(int32(len(v)))
	for _, b := range v {
		e.writeByte(b)
	}
}

func (e *Encoder) writeIntArray(v []int32) {
	e.writeInt(int32(len(v)))
	for _, x := range v {
		e.writeInt(x)
	}
}

func (e *Encoder) writeLongArray(v []int64) {
	e.writeInt(int32(len(v)))
	for _, x := range v {
		e.writeLong(x)
	}
}

func (e *Encoder) writeList(l *List) error {
	e.writeUByte(byte(l.ElemKind()))
	e.writeInt(int32(l.Len()))
	for _, elem := range l.Elems() {
		if err := e.writePayload(elem); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeCompound(c *Compound) error {
	var err error
	c.Range(func(name string, t Tag) bool {
		e.writeUByte(byte(t.Kind()))
		if err = e.writeString(name); err != nil {
			return false
		}
		if err = e.writePayload(t); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	e.writeUByte(byte(KindEnd))
	return nil
}

func (e *Encoder) writePayload(t Tag) error {
	switch t.kind {
	case KindEnd:
		return nil
	case KindByte:
		e.writeByte(t.b8)
	case KindShort:
		e.writeShort(t.s16)
	case KindInt:
		e.writeInt(t.i32)
	case KindLong:
		e.writeLong(t.i64)
	case KindFloat:
		e.writeFloat(t.f32)
	case KindDouble:
		e.writeDouble(t.f64)
	case KindByteArray:
		e.writeByteArray(t.byteArray)
	case KindString:
		return e.writeString(t.str)
	case KindList:
		return e.writeList(t.list)
	case KindCompound:
		return e.writeCompound(t.compound)
	case KindIntArray:
		e.writeIntArray(t.intArray)
	case KindLongArray:
		e.writeLongArray(t.longArray)
	default:
		return &InvalidTagKind{Got: byte(t.kind)}
	}
	return nil
}

// EncodeRoot encodes root as a full file payload: kind byte (always
// KindCompound), rootName, then the Compound itself.
func EncodeRoot(root *Compound, rootName string) ([]byte, error) {
	e := NewEncoder()
	e.writeUByte(byte(KindCompound))
	if err := e.writeString(rootName); err != nil {
		return nil, err
	}
	if err := e.writeCompound(root); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}
