package nbt

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Decoder reads the binary NBT format (big-endian throughout) from an
// in-memory buffer that has already been gunzipped; see gzip.go for the
// framing convenience that does the gunzip step.
type Decoder struct {
	r io.Reader

	// StrictUTF8, if set, makes String decoding return *InvalidUtf8 for
	// payloads that are not valid UTF-8 instead of storing them opaquely.
	// Off by default: see the modified-UTF-8 Open Question resolution in
	// SPEC_FULL.md — opaque byte-preserving round-trip is the safer
	// default for a player-file editor that must not corrupt names it
	// cannot re-encode faithfully.
	StrictUTF8 bool
}

// NewDecoder returns a Decoder reading from data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: newByteReader(data)}
}

// byteReader is the minimal io.Reader view this package needs; kept
// distinct from bytes.Reader only so TruncatedInput can report how many
// bytes remained.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader { return &byteReader{data: data} }

func (b *byteReader) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

func (b *byteReader) remaining() int { return len(b.data) - b.pos }

func (d *Decoder) readBytes(n int) ([]byte, error) {
	have := -1
	if br, ok := d.r.(*byteReader); ok {
		have = br.remaining()
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if have < 0 {
			have = 0
		}
		return nil, &TruncatedInput{Wanted: n, Have: have}
	}
	return buf, nil
}

func (d *Decoder) readUByte() (byte, error) {
	b, err := d.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) readByte() (int8, error) {
	b, err := d.readUByte()
	return int8(b), err
}

func (d *Decoder) readShort() (int16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (d *Decoder) readInt() (int32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *Decoder) readLong() (int64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (d *Decoder) readFloat() (float32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (d *Decoder) readDouble() (float64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (d *Decoder) readString() (string, error) {
	lb, err := d.readBytes(2)
	if err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(lb))
	if n == 0 {
		return "", nil
	}
	b, err := d.readBytes(n)
	if err != nil {
		return "", err
	}
	if d.StrictUTF8 && !utf8.Valid(b) {
		return "", &InvalidUtf8{Bytes: append([]byte(nil), b...)}
	}
	// Stored opaquely: a Go string is just a byte sequence, so malformed
	// or modified-UTF-8 content (embedded NUL, CESU-8 surrogate pairs)
	// round-trips byte-for-byte without us having to understand it.
	return string(b), nil
}

func (d *Decoder) readByteArray() ([]int8, error) {
	n, err := d.readInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &NegativeLength{Context: "ByteArray", Got: n}
	}
	out := make([]int8, n)
	for i := range out {
		v, err := d.readByte()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *Decoder) readIntArray() ([]int32, error) {
	n, err := d.readInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &NegativeLength{Context: "IntArray", Got: n}
	}
	out := make([]int32, n)
	for i := range out {
		v, err := d.readInt()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *Decoder) readLongArray() ([]int64, error) {
	n, err := d.readInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &NegativeLength{Context: "LongArray", Got: n}
	}
	out := make([]int64, n)
	for i := range out {
		v, err := d.readLong()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *Decoder) readList() (*List, error) {
	kindByte, err := d.readUByte()
	if err != nil {
		return nil, err
	}
	n, err := d.readInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &NegativeLength{Context: "List", Got: n}
	}
	if n == 0 {
		// An empty list's element-kind byte is accepted as-is, including
		// End or an out-of-range value; the list carries no elements, so
		// it is normalized to the empty-List convention of KindEnd.
		return NewList(KindEnd), nil
	}
	elemKind := Kind(kindByte)
	if !elemKind.Valid() {
		return nil, &InvalidTagKind{Got: kindByte}
	}
	l := NewList(elemKind)
	for i := int32(0); i < n; i++ {
		t, err := d.readPayload(elemKind)
		if err != nil {
			return nil, err
		}
		l.elems = append(l.elems, t)
	}
	return l, nil
}

func (d *Decoder) readCompound() (*Compound, error) {
	c := NewCompound()
	for {
		kindByte, err := d.readUByte()
		if err != nil {
			return nil, err
		}
		kind := Kind(kindByte)
		if kind == KindEnd {
			return c, nil
		}
		if !kind.Valid() {
			return nil, &InvalidTagKind{Got: kindByte}
		}
		name, err := d.readString()
		if err != nil {
			return nil, err
		}
		payload, err := d.readPayload(kind)
		if err != nil {
			return nil, err
		}
		c.Set(name, payload)
	}
}

func (d *Decoder) readPayload(kind Kind) (Tag, error) {
	switch kind {
	case KindEnd:
		return End(), nil
	case KindByte:
		v, err := d.readByte()
		return Byte(v), err
	case KindShort:
		v, err := d.readShort()
		return Short(v), err
	case KindInt:
		v, err := d.readInt()
		return Int(v), err
	case KindLong:
		v, err := d.readLong()
		return Long(v), err
	case KindFloat:
		v, err := d.readFloat()
		return Float(v), err
	case KindDouble:
		v, err := d.readDouble()
		return Double(v), err
	case KindByteArray:
		v, err := d.readByteArray()
		return ByteArray(v), err
	case KindString:
		v, err := d.readString()
		return String(v), err
	case KindList:
		v, err := d.readList()
		return ListTag(v), err
	case KindCompound:
		v, err := d.readCompound()
		return CompoundTag(v), err
	case KindIntArray:
		v, err := d.readIntArray()
		return IntArray(v), err
	case KindLongArray:
		v, err := d.readLongArray()
		return LongArray(v), err
	default:
		return Tag{}, &InvalidTagKind{Got: byte(kind)}
	}
}

// DecodeRoot decodes a full file payload: a kind byte (which must be
// KindCompound), a root name, and the root Compound itself, with the
// default Decoder options.
func DecodeRoot(data []byte) (root *Compound, rootName string, err error) {
	return NewDecoder(data).DecodeRoot()
}

// DecodeRoot decodes a full file payload like the package-level
// DecodeRoot, honoring d's options such as StrictUTF8.
func (d *Decoder) DecodeRoot() (root *Compound, rootName string, err error) {
	kindByte, err := d.readUByte()
	if err != nil {
		return nil, "", err
	}
	kind := Kind(kindByte)
	if kind != KindCompound {
		return nil, "", &RootNotCompound{Got: kind}
	}
	rootName, err = d.readString()
	if err != nil {
		return nil, "", err
	}
	root, err = d.readCompound()
	if err != nil {
		return nil, "", err
	}
	return root, rootName, nil
}
