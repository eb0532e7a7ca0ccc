// Package itemspec parses the game's "/give" item-specification
// mini-language into a tag subtree built from package nbt. The grammar
// is a small recursive-descent one: an item id, an optional bracketed
// component list, and an optional trailing count.
package itemspec

import "github.com/MythicSorcerer/azox-mc/nbt"

// ParsedItem is the result of a successful Parse.
type ParsedItem struct {
	// ID is the fully namespaced item id, e.g. "minecraft:diamond_sword".
	ID string
	// Count defaults to 1 when absent from the input.
	Count int32
	// Components is nil when the input had no bracketed component list.
	Components *nbt.Compound
}
