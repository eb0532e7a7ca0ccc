package playerdata

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"
	"golang.org/x/xerrors"

	"github.com/MythicSorcerer/azox-mc/nbt"
)

// State is where a PlayerFile sits in its editing-session lifecycle.
type State int

const (
	// StateClean means the in-memory tree matches what is on disk.
	StateClean State = iota
	// StateDirty means the in-memory tree has been mutated since load
	// or the last save.
	StateDirty
	// StateGone means the backing file did not exist when it was last
	// loaded (by Load, or by the reload after a restore).
	StateGone
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "Clean"
	case StateDirty:
		return "Dirty"
	case StateGone:
		return "Gone"
	default:
		return "Unknown"
	}
}

// dataWrapperKey is the legacy root-wrapper key some player files nest
// their real payload under: {"Data": {...}}.
const dataWrapperKey = "Data"

// PlayerFile is one player's parsed state, owned exclusively by whichever
// editing session loaded it; the repository takes no filesystem locks, so
// concurrent editing of the same file is a caller responsibility.
type PlayerFile struct {
	ID          string
	DisplayName string
	Path        string

	Root     *nbt.Compound
	RootName string

	state State

	// loaded holds the root exactly as decoded, for Discard to reset to
	// without re-reading the file from disk.
	loaded *nbt.Compound
}

// Load mmaps path, gunzips and decodes it, and returns a Clean
// PlayerFile; if path does not exist it returns a Gone PlayerFile with a
// nil Root and no error. Using mmap.Open plus an io.SectionReader (rather than a
// full ReadFile) avoids copying the file into a second buffer before
// gzip even gets to look at it, mirroring internal/install/install.go's
// mmap.Open(...squashfs) pattern in the teacher.
func Load(path string) (*PlayerFile, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PlayerFile{Path: path, state: StateGone}, nil
		}
		return nil, xerrors.Errorf("opening %s: %w", path, err)
	}
	defer ra.Close()

	sr := io.NewSectionReader(ra, 0, int64(ra.Len()))
	root, rootName, err := nbt.LoadReader(sr)
	if err != nil {
		return nil, xerrors.Errorf("loading %s: %w", path, err)
	}
	return &PlayerFile{
		Path:     path,
		Root:     root,
		RootName: rootName,
		state:    StateClean,
		loaded:   root.Clone(),
	}, nil
}

// Load resolves id against the repository and loads the resulting file,
// attaching the display name from the usercache.
func (r *Repository) Load(id string) (*PlayerFile, error) {
	path, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	pf, err := Load(path)
	if err != nil {
		return nil, err
	}
	pf.ID = id
	uc := readUserCache(r.userCachePaths())
	if name, ok := uc.nameFor(id); ok {
		pf.DisplayName = name
	} else {
		pf.DisplayName = id
	}
	return pf, nil
}

// State reports the PlayerFile's current lifecycle state.
func (pf *PlayerFile) State() State { return pf.state }

// MarkDirty transitions a Clean file to Dirty. Callers that mutate
// pf.Root call this; it is a no-op if already Dirty.
func (pf *PlayerFile) MarkDirty() {
	if pf.state == StateClean {
		pf.state = StateDirty
	}
}

// Discard resets the in-memory tree to what was loaded, dropping any
// Dirty mutations without touching disk, per the contract that closing a
// Dirty session discards its changes.
func (pf *PlayerFile) Discard() {
	if pf.loaded != nil {
		pf.Root = pf.loaded.Clone()
	} else {
		pf.Root = nil
	}
	pf.state = StateClean
}

// View returns the Compound callers should treat as the player's data,
// unwrapping the legacy {"Data": {...}} unwrap-root convention when
// present. The returned Compound aliases pf.Root (or pf.Root's "Data"
// entry); mutating it marks pf Dirty only if the caller also calls
// MarkDirty, since View itself is read-only.
func (pf *PlayerFile) View() (*nbt.Compound, error) {
	if pf.Root == nil {
		return nil, xerrors.Errorf("player file %s has no data (state %v)", pf.Path, pf.state)
	}
	if wrapped, ok, err := pf.Root.GetCompound(dataWrapperKey); err != nil {
		return nil, xerrors.Errorf("unwrapping %s root: %w", pf.Path, err)
	} else if ok {
		return wrapped, nil
	}
	return pf.Root, nil
}
