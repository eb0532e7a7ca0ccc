package playerdata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// PlayerSummary is one entry of ListPlayers: a resolved display name,
// the player's identifier, and the path to their .dat file (joined onto
// the configured player-data directory, so relative if that is).
type PlayerSummary struct {
	DisplayName string
	ID          string
	Path        string
}

// ListPlayers enumerates every *.dat file in the configured player-data
// directory, joining each against the usercache for a display name
// (falling back to the raw identifier when the cache has no entry), and
// returns them sorted by display name.
func (r *Repository) ListPlayers() ([]PlayerSummary, error) {
	dir := r.playerDataDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("listing %s: %w", dir, err)
	}
	uc := readUserCache(r.userCachePaths())

	var out []PlayerSummary
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".dat") {
			continue
		}
		id := strings.TrimSuffix(de.Name(), ".dat")
		name, ok := uc.nameFor(id)
		if !ok {
			name = id
		}
		out = append(out, PlayerSummary{
			DisplayName: name,
			ID:          id,
			Path:        filepath.Join(dir, de.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

// Resolve maps a query (an exact .dat path, a bare identifier with or
// without dashes, or a display name) to a player-file path inside the
// configured player-data directory (an absolute .dat query is kept as is).
// Resolution order follows spec: literal .dat path first, then
// identifier match, then usercache display-name match.
func (r *Repository) Resolve(query string) (string, error) {
	if strings.HasSuffix(query, ".dat") {
		path := query
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.playerDataDir(), path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", &PlayerNotFound{Query: query}
		}
		return path, nil
	}

	dir := r.playerDataDir()
	normalized := normalizeID(query)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", xerrors.Errorf("listing %s: %w", dir, err)
	}
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".dat") {
			continue
		}
		id := strings.TrimSuffix(de.Name(), ".dat")
		if normalizeID(id) == normalized {
			return filepath.Join(dir, de.Name()), nil
		}
	}

	uc := readUserCache(r.userCachePaths())
	if id, ok := uc.idFor(query); ok {
		path := filepath.Join(dir, id+".dat")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", &PlayerNotFound{Query: query}
}
