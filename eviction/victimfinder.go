// Package eviction decides which resident page leaves memory when no frame is
// free.
package eviction

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/virtmem/frame"
	"github.com/sarchlab/virtmem/vm"
)

// A VictimFinder decides which slot should be evicted.
type VictimFinder interface {
	// FindVictim returns the slot to evict. The pool must not be empty.
	FindVictim(pool *frame.Pool) frame.SlotID

	// OnFaultHandled is called after every fault, whatever the fault did.
	OnFaultHandled(pool *frame.Pool)
}

// A RightsReader tells the current rights of a page.
type RightsReader interface {
	Rights(page int) vm.Rights
}

// NewVictimFinder creates the victim finder of the given kind. rng is only
// used by Random and Clock, and rights only by Clock.
func NewVictimFinder(
	kind Kind,
	rng *rand.Rand,
	rights RightsReader,
) VictimFinder {
	switch kind {
	case FIFO:
		return NewFIFOVictimFinder()
	case Random:
		return NewRandomVictimFinder(rng)
	case Clock:
		return NewClockVictimFinder(rng, rights)
	default:
		panic(fmt.Sprintf("unknown replacement policy %d", kind))
	}
}

func poolMustNotBeEmpty(pool *frame.Pool) {
	if pool.NumResident() == 0 {
		panic("cannot find a victim in an empty frame pool")
	}
}

// FIFOVictimFinder evicts the page that was loaded first.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// FindVictim returns the oldest resident slot.
func (f *FIFOVictimFinder) FindVictim(pool *frame.Pool) frame.SlotID {
	poolMustNotBeEmpty(pool)
	return pool.Slots()[0].ID
}

// OnFaultHandled does nothing.
func (f *FIFOVictimFinder) OnFaultHandled(_ *frame.Pool) {
}

// RandomVictimFinder evicts a resident page picked uniformly at random.
type RandomVictimFinder struct {
	rng *rand.Rand
}

// NewRandomVictimFinder creates a random victim finder that draws from rng.
func NewRandomVictimFinder(rng *rand.Rand) *RandomVictimFinder {
	if rng == nil {
		panic("random victim finder needs a random source")
	}

	return &RandomVictimFinder{rng: rng}
}

// FindVictim returns a random resident slot.
func (f *RandomVictimFinder) FindVictim(pool *frame.Pool) frame.SlotID {
	poolMustNotBeEmpty(pool)

	slots := pool.Slots()

	return slots[f.rng.Intn(len(slots))].ID
}

// OnFaultHandled does nothing.
func (f *RandomVictimFinder) OnFaultHandled(_ *frame.Pool) {
}
