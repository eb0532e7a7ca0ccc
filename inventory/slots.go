// Package inventory implements the domain helpers that operate on NBT
// Lists of item Compounds: free-slot search, slot-indexed replace and
// remove, clearing, and the fixed slot ranges a player inventory, armor
// set, offhand, and ender chest use.
package inventory

import "github.com/MythicSorcerer/azox-mc/nbt"

// Fixed slot ranges and singletons, per spec.md §3's Item record layout.
const (
	HotbarLo = 0
	HotbarHi = 9 // exclusive

	MainLo = 9
	MainHi = 36 // exclusive

	InventoryLo = 0
	InventoryHi = 36 // exclusive: hotbar + main combined

	BootsSlot   = 36
	LegsSlot    = 37
	ChestSlot   = 38
	HelmetSlot  = 39
	OffhandSlot = 40

	EnderChestLo = 0
	EnderChestHi = 27 // exclusive
)

const slotField = "Slot"

// WrongElemKind is returned by FindFreeSlot, ReplaceAtSlot and
// RemoveAtSlot when the given List's declared element kind is neither Compound (the normal
// case) nor End (an untyped empty list), since item entries must be
// Compounds carrying a Slot field.
type WrongElemKind struct {
	Found nbt.Kind
}

func (e *WrongElemKind) Error() string {
	return "inventory: list element kind must be Compound, found " + e.Found.String()
}

func requireItemList(list *nbt.List) error {
	if list.ElemKind() != nbt.KindCompound && list.ElemKind() != nbt.KindEnd {
		return &WrongElemKind{Found: list.ElemKind()}
	}
	return nil
}

func slotOf(item nbt.Tag) (int, bool) {
	c, err := item.CompoundValue()
	if err != nil {
		return 0, false
	}
	tag, ok := c.Get(slotField)
	if !ok {
		return 0, false
	}
	v, err := tag.ByteValue()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// removeSlot removes every element of list whose Slot field equals slot,
// in place, and returns list. Iterating backwards keeps RemoveAt's index
// shifting from skipping over the element that slides into a just-freed
// position.
func removeSlot(list *nbt.List, slot int) *nbt.List {
	for i := list.Len() - 1; i >= 0; i-- {
		if s, has := slotOf(list.At(i)); has && s == slot {
			list.RemoveAt(i)
		}
	}
	return list
}

// FindFreeSlot returns the lowest slot index in [lo, hi) not occupied by
// any element of list, and ok=false if every slot in the range is taken.
func FindFreeSlot(list *nbt.List, lo, hi int) (slot int, ok bool, err error) {
	if err := requireItemList(list); err != nil {
		return 0, false, err
	}
	occupied := make(map[int]bool, list.Len())
	for _, elem := range list.Elems() {
		if s, has := slotOf(elem); has {
			occupied[s] = true
		}
	}
	for i := lo; i < hi; i++ {
		if !occupied[i] {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// ReplaceAtSlot removes any existing element whose Slot field matches
// item's, then appends item, preserving at-most-one-entry-per-slot.
func ReplaceAtSlot(list *nbt.List, item *nbt.Compound) (*nbt.List, error) {
	if err := requireItemList(list); err != nil {
		return nil, err
	}
	slotTag, ok := item.Get(slotField)
	if !ok {
		return nil, &nbt.WrongKind{Expected: nbt.KindByte, Found: nbt.KindEnd}
	}
	slot, err := slotTag.ByteValue()
	if err != nil {
		return nil, err
	}

	out := removeSlot(list.Clone(), int(slot))
	if err := out.Append(nbt.CompoundTag(item)); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveAtSlot returns a new List with any entry at slot removed, plus
// how many entries were removed (0 or 1, per the unique-slots invariant).
func RemoveAtSlot(list *nbt.List, slot int) (*nbt.List, int, error) {
	if err := requireItemList(list); err != nil {
		return nil, 0, err
	}
	before := list.Len()
	out := removeSlot(list.Clone(), slot)
	return out, before - out.Len(), nil
}

// Clear returns a new, empty List sharing list's declared element kind.
func Clear(list *nbt.List) *nbt.List {
	return nbt.NewList(list.ElemKind())
}
