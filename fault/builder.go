package fault

import (
	"github.com/sarchlab/virtmem/disk"
	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/frame"
)

// Builder can build fault handlers.
type Builder struct {
	pageTable    PageTable
	disk         disk.Disk
	numFrames    int
	victimFinder eviction.VictimFinder
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		numFrames: 1,
	}
}

// WithPageTable sets the page table that the handler updates.
func (b Builder) WithPageTable(pt PageTable) Builder {
	b.pageTable = pt
	return b
}

// WithDisk sets the backing store of the pages.
func (b Builder) WithDisk(d disk.Disk) Builder {
	b.disk = d
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithVictimFinder sets the replacement policy.
func (b Builder) WithVictimFinder(vf eviction.VictimFinder) Builder {
	b.victimFinder = vf
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.pageTable == nil {
		panic("page table is not set")
	}

	if b.disk == nil {
		panic("disk is not set")
	}

	if b.victimFinder == nil {
		panic("victim finder is not set")
	}
}

// Build creates a handler with an empty frame pool.
func (b Builder) Build() *Handler {
	b.parametersMustBeValid()

	h := &Handler{
		pageTable:    b.pageTable,
		disk:         b.disk,
		pool:         frame.NewPool(b.numFrames),
		victimFinder: b.victimFinder,
	}

	return h
}
