package fault

import "github.com/sarchlab/virtmem/hooking"

// KindCounter counts resolved faults by the way they were resolved.
type KindCounter struct {
	kinds []Kind
	count map[Kind]uint64
}

// NewKindCounter creates a new KindCounter.
func NewKindCounter() *KindCounter {
	return &KindCounter{
		count: make(map[Kind]uint64),
	}
}

// Func counts the fault carried by the hook context.
func (c *KindCounter) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosFaultHandled {
		return
	}

	rec := ctx.Item.(Record)

	_, ok := c.count[rec.Kind]
	if !ok {
		c.kinds = append(c.kinds, rec.Kind)
	}

	c.count[rec.Kind]++
}

// Kinds returns the kinds seen so far, in the order they first appeared.
func (c *KindCounter) Kinds() []Kind {
	return c.kinds
}

// Count returns the number of faults of a kind.
func (c *KindCounter) Count(kind Kind) uint64 {
	return c.count[kind]
}
