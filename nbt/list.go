package nbt

// List is a homogeneous sequence of Tags. The element kind is recorded
// alongside the sequence (never re-inferred on each write) so that an
// empty List still knows, and continues to encode, its declared element
// kind.
type List struct {
	elemKind Kind
	elems    []Tag
}

// NewList returns an empty List with the given declared element kind. An
// empty List conventionally declares KindEnd, matching the wire format's
// "element-kind End, length 0" convention for an empty list.
func NewList(elemKind Kind) *List {
	return &List{elemKind: elemKind}
}

// ElemKind reports the List's declared element kind.
func (l *List) ElemKind() Kind { return l.elemKind }

// Len reports the number of elements.
func (l *List) Len() int { return len(l.elems) }

// At returns the element at index i.
func (l *List) At(i int) Tag { return l.elems[i] }

// Elems returns the underlying element slice. The caller must not retain
// or mutate it beyond read access; use Append/RemoveAt to mutate the
// list itself.
func (l *List) Elems() []Tag { return l.elems }

// Append adds t to the list. The first Append on a list declared with
// KindEnd (the "unknown yet" empty state) fixes the list's element kind
// to t's kind; subsequent Appends whose kind disagrees are rejected with
// WrongKind, enforcing the List-homogeneity invariant.
func (l *List) Append(t Tag) error {
	if len(l.elems) == 0 && l.elemKind == KindEnd {
		l.elemKind = t.Kind()
	}
	if t.Kind() != l.elemKind {
		return wrongKind(l.elemKind, t.Kind())
	}
	l.elems = append(l.elems, t)
	return nil
}

// RemoveAt removes the element at index i, shifting later elements down.
func (l *List) RemoveAt(i int) {
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
}

// Clone returns a deep copy of l: every element is cloned recursively via
// Tag.Clone, so mutating the copy (or any nested List/Compound reached
// through it) never affects l.
func (l *List) Clone() *List {
	c := &List{elemKind: l.elemKind, elems: make([]Tag, len(l.elems))}
	for i, t := range l.elems {
		c.elems[i] = t.Clone()
	}
	return c
}
