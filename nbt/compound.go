package nbt

// Compound is an ordered map of names to Tags. Insertion order is
// preserved in memory (to minimize diff churn across saves) even though
// the on-disk encoding does not require it; lookup is O(1) via an
// auxiliary index.
type Compound struct {
	order []string
	index map[string]int
	vals  []Tag
}

// NewCompound returns an empty Compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.order) }

// Names returns the entry names in insertion order. The returned slice
// must not be mutated by the caller.
func (c *Compound) Names() []string { return c.order }

// Get returns the tag stored under name, and whether it was present.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return Tag{}, false
	}
	return c.vals[i], true
}

// Set inserts or overwrites the entry named name. If name is new it is
// appended to the end of the insertion order; an existing entry keeps its
// original position.
func (c *Compound) Set(name string, t Tag) {
	if i, ok := c.index[name]; ok {
		c.vals[i] = t
		return
	}
	c.index[name] = len(c.order)
	c.order = append(c.order, name)
	c.vals = append(c.vals, t)
}

// Delete removes the entry named name, if present, and reports whether
// anything was removed.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.order = append(c.order[:i], c.order[i+1:]...)
	c.vals = append(c.vals[:i], c.vals[i+1:]...)
	delete(c.index, name)
	for n, idx := range c.index {
		if idx > i {
			c.index[n] = idx - 1
		}
	}
	return true
}

// Range calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (c *Compound) Range(fn func(name string, t Tag) bool) {
	for i, name := range c.order {
		if !fn(name, c.vals[i]) {
			return
		}
	}
}

// GetCompound looks up name and type-asserts it to a Compound, returning
// WrongKind if present under a different kind and (false, nil) if absent.
func (c *Compound) GetCompound(name string) (*Compound, bool, error) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false, nil
	}
	sub, err := t.CompoundValue()
	if err != nil {
		return nil, true, err
	}
	return sub, true, nil
}

// GetList looks up name and type-asserts it to a List, returning
// WrongKind if present under a different kind and (false, nil) if absent.
func (c *Compound) GetList(name string) (*List, bool, error) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false, nil
	}
	l, err := t.ListValue()
	if err != nil {
		return nil, true, err
	}
	return l, true, nil
}

// Clone returns a deep copy of c: every entry is cloned recursively, so
// mutating the copy (or any nested List/Compound reached through it)
// never affects c.
func (c *Compound) Clone() *Compound {
	clone := &Compound{
		order: append([]string(nil), c.order...),
		index: make(map[string]int, len(c.index)),
		vals:  make([]Tag, len(c.vals)),
	}
	for name, i := range c.index {
		clone.index[name] = i
	}
	for i, t := range c.vals {
		clone.vals[i] = t.Clone()
	}
	return clone
}
