// Package vm provides the page table of the simulated machine. The page table
// owns the physical memory, translates virtual addresses to frames, and
// raises a page fault when an access is not allowed by the current rights.
package vm

import (
	"errors"
	"fmt"
)

// Rights are the access rights granted to a page.
type Rights uint8

// The rights that a page can have. A page with RightsNone is not resident.
const (
	RightsNone  Rights = 0
	RightsRead  Rights = 1 << 0
	RightsWrite Rights = 1 << 1

	RightsReadWrite = RightsRead | RightsWrite
)

// CanRead tells if the rights allow reading.
func (r Rights) CanRead() bool {
	return r&RightsRead != 0
}

// CanWrite tells if the rights allow writing.
func (r Rights) CanWrite() bool {
	return r&RightsWrite != 0
}

func (r Rights) String() string {
	switch r {
	case RightsNone:
		return "none"
	case RightsRead:
		return "read"
	case RightsWrite:
		return "write"
	case RightsReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("Rights(%d)", uint8(r))
	}
}

// A FaultHandler is invoked when an access violates the rights of a page.
type FaultHandler interface {
	HandleFault(page int)
}

// FaultHandlerFunc adapts a function to the FaultHandler interface.
type FaultHandlerFunc func(page int)

// HandleFault calls f(page).
func (f FaultHandlerFunc) HandleFault(page int) {
	f(page)
}

// ErrInvalidGeometry is returned when the page table cannot be created with
// the requested sizes.
var ErrInvalidGeometry = errors.New("invalid page table geometry")

// Limits on the geometry of a page table. Both the virtual and the physical
// memory are at most MaxMemorySize bytes.
const (
	MaxPages      = 1 << 24
	MaxMemorySize = 1 << 32
)

// An Entry describes where a page lives and what can be done with it.
type Entry struct {
	Frame  int
	Rights Rights
}

// A PageTable maps pages to frames.
type PageTable struct {
	pageSize  int
	numPages  int
	numFrames int

	entries []Entry
	physMem []byte

	handler  FaultHandler
	inFault  bool
	numFault uint64
}

// NewPageTable creates a page table with all pages absent.
func NewPageTable(numPages, numFrames, pageSize int) (*PageTable, error) {
	if numPages < 1 || numFrames < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"%w: %d pages, %d frames, page size %d",
			ErrInvalidGeometry, numPages, numFrames, pageSize)
	}

	if numPages > MaxPages ||
		numPages > MaxMemorySize/pageSize ||
		numFrames > MaxMemorySize/pageSize {
		return nil, fmt.Errorf(
			"%w: %d pages, %d frames, page size %d exceeds %d pages "+
				"or %d bytes of memory",
			ErrInvalidGeometry, numPages, numFrames, pageSize,
			MaxPages, MaxMemorySize)
	}

	pt := &PageTable{
		pageSize:  pageSize,
		numPages:  numPages,
		numFrames: numFrames,
		entries:   make([]Entry, numPages),
		physMem:   make([]byte, numFrames*pageSize),
	}

	return pt, nil
}

// RegisterFaultHandler sets the handler that resolves page faults. It can
// only be set once.
func (pt *PageTable) RegisterFaultHandler(h FaultHandler) {
	if pt.handler != nil {
		panic("fault handler already registered")
	}

	pt.handler = h
}

// PageSize returns the number of bytes in a page.
func (pt *PageTable) PageSize() int {
	return pt.pageSize
}

// NumPages returns the number of virtual pages.
func (pt *PageTable) NumPages() int {
	return pt.numPages
}

// NumFrames returns the number of physical frames.
func (pt *PageTable) NumFrames() int {
	return pt.numFrames
}

// Size returns the number of bytes in the virtual memory.
func (pt *PageTable) Size() int {
	return pt.numPages * pt.pageSize
}

// Entry returns the frame and rights of a page.
func (pt *PageTable) Entry(page int) Entry {
	pt.pageMustBeInRange(page)
	return pt.entries[page]
}

// Rights returns the rights of a page.
func (pt *PageTable) Rights(page int) Rights {
	return pt.Entry(page).Rights
}

// SetEntry maps the page to the frame with the given rights.
func (pt *PageTable) SetEntry(page, frame int, rights Rights) {
	pt.pageMustBeInRange(page)
	pt.frameMustBeInRange(frame)

	pt.entries[page] = Entry{Frame: frame, Rights: rights}
}

// FrameData returns the bytes of a physical frame. Writes to the returned
// slice change the physical memory.
func (pt *PageTable) FrameData(frame int) []byte {
	pt.frameMustBeInRange(frame)

	start := frame * pt.pageSize

	return pt.physMem[start : start+pt.pageSize]
}

// NumFaults returns how many faults have been delivered to the handler.
func (pt *PageTable) NumFaults() uint64 {
	return pt.numFault
}

// Load reads one byte of virtual memory.
func (pt *PageTable) Load(addr int) byte {
	page, offset := pt.split(addr)
	pt.ensureRights(page, RightsRead)

	return pt.physMem[pt.entries[page].Frame*pt.pageSize+offset]
}

// Store writes one byte of virtual memory.
func (pt *PageTable) Store(addr int, v byte) {
	page, offset := pt.split(addr)
	pt.ensureRights(page, RightsReadWrite)

	pt.physMem[pt.entries[page].Frame*pt.pageSize+offset] = v
}

func (pt *PageTable) split(addr int) (page, offset int) {
	if addr < 0 || addr >= pt.Size() {
		panic(fmt.Sprintf("address %d out of virtual memory [0, %d)",
			addr, pt.Size()))
	}

	return addr / pt.pageSize, addr % pt.pageSize
}

// ensureRights raises faults until the page has the required rights. A write
// to an absent page takes two faults, one to load and one to upgrade.
func (pt *PageTable) ensureRights(page int, required Rights) {
	for pt.entries[page].Rights&required != required {
		before := pt.entries[page].Rights
		pt.deliverFault(page)

		if pt.entries[page].Rights == before {
			panic(fmt.Sprintf(
				"fault on page %d did not change its rights (%s)",
				page, before))
		}
	}
}

func (pt *PageTable) deliverFault(page int) {
	if pt.handler == nil {
		panic(fmt.Sprintf("page fault on page %d without a handler", page))
	}

	if pt.inFault {
		panic(fmt.Sprintf("recursive page fault on page %d", page))
	}

	pt.inFault = true
	defer func() { pt.inFault = false }()

	pt.numFault++
	pt.handler.HandleFault(page)
}

func (pt *PageTable) pageMustBeInRange(page int) {
	if page < 0 || page >= pt.numPages {
		panic(fmt.Sprintf("page %d out of range [0, %d)", page, pt.numPages))
	}
}

func (pt *PageTable) frameMustBeInRange(frame int) {
	if frame < 0 || frame >= pt.numFrames {
		panic(fmt.Sprintf("frame %d out of range [0, %d)", frame, pt.numFrames))
	}
}
