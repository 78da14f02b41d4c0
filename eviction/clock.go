package eviction

import (
	"math/rand"

	"github.com/sarchlab/virtmem/frame"
)

// IdleThreshold is the number of faults a page must go without being writable
// before the clock policy considers it for eviction.
const IdleThreshold = 6

// ClockVictimFinder approximates not-recently-used replacement. Every fault
// ages the pages that are not writable and rejuvenates the ones that are.
//
// When no page is old enough, the victim is picked at random.
type ClockVictimFinder struct {
	random *RandomVictimFinder
	rights RightsReader
}

// NewClockVictimFinder creates a clock victim finder.
func NewClockVictimFinder(
	rng *rand.Rand,
	rights RightsReader,
) *ClockVictimFinder {
	if rights == nil {
		panic("clock victim finder needs to read page rights")
	}

	return &ClockVictimFinder{
		random: NewRandomVictimFinder(rng),
		rights: rights,
	}
}

// FindVictim returns the oldest loaded slot that has been idle for at least
// IdleThreshold faults.
func (f *ClockVictimFinder) FindVictim(pool *frame.Pool) frame.SlotID {
	poolMustNotBeEmpty(pool)

	for _, slot := range pool.Slots() {
		if slot.Idle >= IdleThreshold {
			return slot.ID
		}
	}

	return f.random.FindVictim(pool)
}

// OnFaultHandled updates the idle counter of every resident slot.
func (f *ClockVictimFinder) OnFaultHandled(pool *frame.Pool) {
	for _, slot := range pool.Slots() {
		if f.rights.Rights(slot.Page).CanWrite() {
			slot.Idle = 0
			continue
		}

		slot.Idle++
	}
}
