package nbt

import (
	"fmt"

	"github.com/samber/mo"
)

// Compound is a named mapping from tag name to Tag. It is both the root
// of every NBT document and the payload of a Compound tag. Entries are
// kept in insertion order; replacing an existing name keeps its position.
type Compound struct {
	Name  string
	keys  []string
	index map[string]Tag
}

func NewCompound(name string) *Compound {
	return &Compound{Name: name, index: make(map[string]Tag)}
}

// Set stores t under its own name, replacing any entry with that name.
// It refuses nil tags and tags that already contain c.
func (c *Compound) Set(t Tag) error {
	if isNil(t) {
		return &Error{Kind: ErrInvalidTree, Detail: "nil tag"}
	}
	if reaches(t, c) {
		return &Error{Kind: ErrInvalidTree, Detail: fmt.Sprintf("compound %q would contain itself", c.Name)}
	}
	c.set(t)
	return nil
}

// set stores t without the checks in Set; the decoder only hands it
// freshly built subtrees.
func (c *Compound) set(t Tag) {
	if c.index == nil {
		c.index = make(map[string]Tag)
	}
	name := t.TagName()
	if _, ok := c.index[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.index[name] = t
}

// Get returns the entry stored under name.
func (c *Compound) Get(name string) mo.Option[Tag] {
	if t, ok := c.index[name]; ok {
		return mo.Some(t)
	}
	return mo.None[Tag]()
}

func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Delete removes the entry stored under name, if any.
func (c *Compound) Delete(name string) {
	if _, ok := c.index[name]; !ok {
		return
	}
	delete(c.index, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

func (c *Compound) Len() int { return len(c.keys) }

// Keys returns entry names in insertion order.
func (c *Compound) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Entries returns the entries in insertion order.
func (c *Compound) Entries() []Tag {
	out := make([]Tag, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.index[k])
	}
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (c *Compound) Range(fn func(Tag) bool) {
	for _, k := range c.keys {
		if !fn(c.index[k]) {
			return
		}
	}
}

// Search walks nested compounds, including compounds held in lists, and
// collects those named name. A matching compound is not searched further.
// With firstOnly set the walk stops at the first match. The receiver itself
// is a candidate.
func (c *Compound) Search(name string, firstOnly bool) []*Compound {
	var found []*Compound
	c.search(name, firstOnly, &found)
	return found
}

func (c *Compound) search(name string, firstOnly bool, found *[]*Compound) bool {
	if c.Name == name {
		*found = append(*found, c)
		return true
	}
	for _, k := range c.keys {
		switch x := c.index[k].(type) {
		case *Compound:
			if x.search(name, firstOnly, found) && firstOnly {
				return true
			}
		case *List:
			for _, e := range x.elems {
				sub, ok := e.(*Compound)
				if !ok {
					continue
				}
				if sub.search(name, firstOnly, found) && firstOnly {
					return true
				}
			}
		}
	}
	return false
}
