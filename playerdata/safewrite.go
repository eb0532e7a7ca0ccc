package playerdata

import (
	"fmt"
	"os"

	"github.com/google/renameio"
	"golang.org/x/xerrors"

	"github.com/MythicSorcerer/azox-mc/log"
	"github.com/MythicSorcerer/azox-mc/nbt"
)

func undoPath(path string, n int) string {
	return fmt.Sprintf("%s.undo%d", path, n)
}

func backupPath(path string) string {
	return path + ".bak"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

// rotateUndo shifts path.undo1..undo(undoLimit-1) up by one slot,
// dropping whatever previously sat at undoLimit, then copies the
// current path into the now-empty undo1 slot. Iterating from undoLimit
// down to 2 guarantees each rename source has not yet been overwritten
// by an earlier step in the same call.
func rotateUndo(path string) error {
	for i := undoLimit; i >= 2; i-- {
		src := undoPath(path, i-1)
		if !fileExists(src) {
			continue
		}
		if err := os.Rename(src, undoPath(path, i)); err != nil {
			return &BackupFailed{Path: path, Err: err}
		}
	}
	if fileExists(path) {
		if err := copyFile(path, undoPath(path, 1)); err != nil {
			return &BackupFailed{Path: path, Err: err}
		}
	}
	return nil
}

func writeBackup(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := copyFile(path, backupPath(path)); err != nil {
		return &BackupFailed{Path: path, Err: err}
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	f, err := renameio.TempFile("", path)
	if err != nil {
		return &WriteFailed{Path: path, Err: err}
	}
	defer f.Cleanup()
	if _, err := f.Write(data); err != nil {
		return &WriteFailed{Path: path, Err: err}
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return &WriteFailed{Path: path, Err: err}
	}
	return nil
}

// Save persists pf.Root to pf.Path: first rotating the undo chain and
// writing the single-shot backup (steps that only ever touch the
// undo/backup sidecars, never pf.Path itself), then atomically replacing
// pf.Path with the newly encoded bytes. A crash between the rotate step
// and the atomic replace leaves pf.Path holding its pre-save contents
// and path.undo1 holding the same — recoverable either way.
func (pf *PlayerFile) Save() error {
	if err := rotateUndo(pf.Path); err != nil {
		return err
	}
	if err := writeBackup(pf.Path); err != nil {
		return err
	}
	data, err := nbt.EncodeGzip(pf.Root, pf.RootName)
	if err != nil {
		return &EncodeFailed{Path: pf.Path, Err: err}
	}
	if err := atomicWrite(pf.Path, data); err != nil {
		return err
	}
	pf.loaded = pf.Root.Clone()
	pf.state = StateClean
	log.Info("saved player file", log.F("path", pf.Path))
	return nil
}

// reload re-reads pf.Path from disk and resets the editing session to
// Clean, used after a restore rewrites the file out from under pf.
func (pf *PlayerFile) reload() error {
	fresh, err := Load(pf.Path)
	if err != nil {
		return err
	}
	pf.Root = fresh.Root
	pf.RootName = fresh.RootName
	pf.loaded = fresh.loaded
	pf.state = fresh.state
	return nil
}

// RestoreUndo overwrites pf.Path with the contents of its nth undo
// snapshot (1 is most recent) and reloads pf from the result.
func (pf *PlayerFile) RestoreUndo(n int) error {
	src := undoPath(pf.Path, n)
	if !fileExists(src) {
		return &NoUndoAvailable{Path: pf.Path, N: n}
	}
	if err := copyFile(src, pf.Path); err != nil {
		return xerrors.Errorf("restoring %s from undo%d: %w", pf.Path, n, err)
	}
	return pf.reload()
}

// RestoreBackup overwrites pf.Path with the contents of its single-shot
// backup and reloads pf from the result.
func (pf *PlayerFile) RestoreBackup() error {
	src := backupPath(pf.Path)
	if !fileExists(src) {
		return &NoBackupAvailable{Path: pf.Path}
	}
	if err := copyFile(src, pf.Path); err != nil {
		return xerrors.Errorf("restoring %s from backup: %w", pf.Path, err)
	}
	return pf.reload()
}
