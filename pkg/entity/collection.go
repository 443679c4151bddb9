package entity

import "slices"

// Collection is an insertion-ordered id -> record table. The zero value is
// ready to use.
type Collection[T any] struct {
	IDs  []string     `json:"ids"`
	ByID map[string]T `json:"byId"`
}

// Put inserts or replaces the record for id. New ids are appended.
func (c *Collection[T]) Put(id string, v T) {
	if c.ByID == nil {
		c.ByID = make(map[string]T)
	}
	if _, ok := c.ByID[id]; !ok {
		c.IDs = append(c.IDs, id)
	}
	c.ByID[id] = v
}

// Get returns the record for id.
func (c Collection[T]) Get(id string) (T, bool) {
	v, ok := c.ByID[id]
	return v, ok
}

// Has reports whether id is present.
func (c Collection[T]) Has(id string) bool {
	_, ok := c.ByID[id]
	return ok
}

// Len returns the number of records.
func (c Collection[T]) Len() int { return len(c.IDs) }

// Keys returns a copy of the ids in insertion order, never nil.
func (c Collection[T]) Keys() []string {
	out := make([]string, len(c.IDs))
	copy(out, c.IDs)
	return out
}

// Delete removes id if present.
func (c *Collection[T]) Delete(id string) {
	if _, ok := c.ByID[id]; !ok {
		return
	}
	delete(c.ByID, id)
	c.IDs = slices.DeleteFunc(c.IDs, func(k string) bool { return k == id })
}

// Clone returns a copy that shares no maps or slices with c.
func (c Collection[T]) Clone() Collection[T] {
	out := Collection[T]{IDs: make([]string, len(c.IDs)), ByID: make(map[string]T, len(c.ByID))}
	copy(out.IDs, c.IDs)
	for k, v := range c.ByID {
		out.ByID[k] = v
	}
	return out
}
