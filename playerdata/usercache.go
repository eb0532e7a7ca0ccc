package playerdata

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/MythicSorcerer/azox-mc/log"
)

// userCacheEntry mirrors one element of the JSON array the usercache
// sidecar stores. Only the fields this module needs are declared;
// unknown fields (the game writes more, e.g. "expiresOn") are ignored.
type userCacheEntry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// userCache holds both lookup directions, keyed by normalizeID(id) and
// strings.ToLower(name) respectively.
type userCache struct {
	byID   map[string]string // normalized id -> display name
	byName map[string]string // lowercased name -> id (original casing)
}

func newUserCache() *userCache {
	return &userCache{byID: make(map[string]string), byName: make(map[string]string)}
}

// normalizeID makes an identifier comparison dash- and case-insensitive,
// following original_source/tools/nbtworks/nbt_lib.py's id matching: the
// original tries an identifier as given, then with dashes stripped, in
// both lookup directions. Normalizing once up front and indexing only the
// normalized form achieves the same effect without trying twice per call.
func normalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "-", ""))
}

// readUserCache parses the first existing path in paths as a usercache
// JSON array. A missing or malformed file is tolerated and yields an
// empty cache — the cache is advisory, never load-bearing.
func readUserCache(paths []string) *userCache {
	uc := newUserCache()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("reading usercache", log.F("path", path), log.F("error", err))
			}
			continue
		}
		var entries []userCacheEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			log.Warn("parsing usercache", log.F("path", path), log.F("error", err))
			return uc
		}
		for _, e := range entries {
			if e.UUID == "" {
				continue
			}
			uc.byID[normalizeID(e.UUID)] = e.Name
			if e.Name != "" {
				uc.byName[strings.ToLower(e.Name)] = e.UUID
			}
		}
		return uc
	}
	return uc
}

// nameFor returns the display name for id, or ok=false if unknown.
func (uc *userCache) nameFor(id string) (string, bool) {
	name, ok := uc.byID[normalizeID(id)]
	return name, ok
}

// idFor returns the identifier for a case-insensitive display name, or
// ok=false if unknown.
func (uc *userCache) idFor(name string) (string, bool) {
	id, ok := uc.byName[strings.ToLower(name)]
	return id, ok
}
