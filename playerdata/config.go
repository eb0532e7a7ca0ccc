// Package playerdata implements the player-file repository layer and the
// safe-write pipeline: enumeration and resolution of per-player NBT files
// against a usercache sidecar, and atomic saves with a rotating undo
// chain. It is built on package nbt for the binary format itself.
package playerdata

import "path/filepath"

const (
	defaultPlayerDataDir = "world/playerdata"
	// undoLimit is the number of rotating .undoN snapshots retained
	// per player file; spec calls for "8-10", this module uses the
	// low end of that range.
	undoLimit = 8
)

// Config is an immutable description of where a server's player files
// live, mirroring the teacher's Repo{Path, PkgPath} value-struct-as-config
// idiom (distri.go) rather than a CLI-flag-driven setup.
type Config struct {
	// ServerRoot is the directory containing world/ and usercache.json.
	ServerRoot string

	// PlayerDataDir overrides the player-file directory; if empty,
	// defaults to ServerRoot/world/playerdata.
	PlayerDataDir string

	// UserCachePath overrides the usercache sidecar path; if empty,
	// both ServerRoot/usercache.json and ServerRoot/world/usercache.json
	// are probed, in that order, and the first that exists is used.
	UserCachePath string
}

// Repository resolves player files and their usercache sidecar against a
// Config. It holds no mutable state of its own; all I/O happens on demand.
type Repository struct {
	cfg Config
}

// NewRepository returns a Repository for cfg.
func NewRepository(cfg Config) *Repository {
	return &Repository{cfg: cfg}
}

func (r *Repository) playerDataDir() string {
	if r.cfg.PlayerDataDir != "" {
		return r.cfg.PlayerDataDir
	}
	return filepath.Join(r.cfg.ServerRoot, defaultPlayerDataDir)
}

func (r *Repository) userCachePaths() []string {
	if r.cfg.UserCachePath != "" {
		return []string{r.cfg.UserCachePath}
	}
	return []string{
		filepath.Join(r.cfg.ServerRoot, "usercache.json"),
		filepath.Join(r.cfg.ServerRoot, "world", "usercache.json"),
	}
}
