package nbt

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/klauspost/pgzip"
	"golang.org/x/xerrors"

	"github.com/MythicSorcerer/azox-mc/log"
)

// Load reads a gzip-compressed player file from path and decodes its
// root Compound. It mirrors the teacher's internal/repo/reader.go, which
// uses stdlib compress/gzip on the read side.
func Load(path string) (root *Compound, rootName string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", xerrors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader decodes a gzip-compressed NBT stream from r.
func LoadReader(r io.Reader) (root *Compound, rootName string, err error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && (magic[0] != 0x1f || magic[1] != 0x8b) {
		return nil, "", xerrors.Errorf("gunzip: %w", &BadMagic{Got: [2]byte{magic[0], magic[1]}})
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, "", xerrors.Errorf("gunzip: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, "", xerrors.Errorf("gunzip: %w", err)
	}
	root, rootName, err = DecodeRoot(data)
	if err != nil {
		return nil, "", xerrors.Errorf("decoding NBT: %w", err)
	}
	return root, rootName, nil
}

// Store encodes root and writes it gzip-compressed to path, truncating
// any existing file. Store does not provide the atomic-replace/undo
// guarantees the safe-write pipeline does (see the playerdata package);
// playerdata.Save does not call it and uses EncodeGzip instead.
func Store(path string, root *Compound, rootName string) error {
	data, err := EncodeRoot(root, rootName)
	if err != nil {
		return xerrors.Errorf("encoding: %w", err)
	}
	var buf bytes.Buffer
	// pgzip mirrors the teacher's cmd/distri/initrd.go write path, which
	// uses pgzip.NewWriter in preference to stdlib compress/gzip.
	zw := pgzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return xerrors.Errorf("gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return xerrors.Errorf("gzip: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return xerrors.Errorf("writing %s: %w", path, err)
	}
	log.Debug("stored NBT file", log.F("path", path), log.F("bytes", buf.Len()))
	return nil
}

// EncodeGzip encodes root and gzip-compresses it into memory, without
// touching the filesystem. playerdata.Save uses this so it can hand the
// resulting bytes to renameio for the atomic write.
func EncodeGzip(root *Compound, rootName string) ([]byte, error) {
	data, err := EncodeRoot(root, rootName)
	if err != nil {
		return nil, xerrors.Errorf("encoding: %w", err)
	}
	var buf bytes.Buffer
	zw := pgzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, xerrors.Errorf("gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, xerrors.Errorf("gzip: %w", err)
	}
	return buf.Bytes(), nil
}
