package nbt

import "fmt"

// TruncatedInput is returned when the decoder runs out of input bytes
// mid-value.
type TruncatedInput struct {
	Wanted int
	Have   int
}

func (e *TruncatedInput) Error() string {
	return fmt.Sprintf("truncated NBT input: wanted %d bytes, have %d", e.Wanted, e.Have)
}

// BadMagic is returned when a gzip framing read finds a header that does
// not match the gzip magic bytes.
type BadMagic struct {
	Got [2]byte
}

func (e *BadMagic) Error() string {
	return fmt.Sprintf("bad gzip magic: got %02x %02x", e.Got[0], e.Got[1])
}

// InvalidTagKind is returned when a decoded kind byte does not name one
// of the 13 defined NBT kinds.
type InvalidTagKind struct {
	Got byte
}

func (e *InvalidTagKind) Error() string {
	return fmt.Sprintf("invalid NBT tag kind: %#02x", e.Got)
}

// NegativeLength is returned when a length-prefixed payload (List,
// ByteArray, IntArray, LongArray) declares a negative length.
type NegativeLength struct {
	Context string
	Got     int32
}

func (e *NegativeLength) Error() string {
	return fmt.Sprintf("negative length in %s: %d", e.Context, e.Got)
}

// InvalidUtf8 is reserved for callers that opt into strict UTF-8
// validation (see Decoder.StrictUTF8 in decode.go). The default decode
// path never returns it: NBT strings round-trip opaquely regardless of
// encoding, per the modified-UTF-8 Open Question resolution (see
// SPEC_FULL.md).
type InvalidUtf8 struct {
	Bytes []byte
}

func (e *InvalidUtf8) Error() string {
	return fmt.Sprintf("invalid UTF-8 string (%d bytes)", len(e.Bytes))
}

// RootNotCompound is returned when the outermost tag kind byte in a
// decoded file is not KindCompound.
type RootNotCompound struct {
	Got Kind
}

func (e *RootNotCompound) Error() string {
	return fmt.Sprintf("root tag is not a Compound: got %v", e.Got)
}
