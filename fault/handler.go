// Package fault resolves page faults. It decides whether a fault upgrades the
// rights of a resident page, loads the page into a free frame, or evicts
// another page to make room first.
package fault

import (
	"fmt"

	"github.com/sarchlab/virtmem/disk"
	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/frame"
	"github.com/sarchlab/virtmem/hooking"
	"github.com/sarchlab/virtmem/vm"
)

// A PageTable is the part of the page table that the fault handler drives.
type PageTable interface {
	Entry(page int) vm.Entry
	SetEntry(page, frame int, rights vm.Rights)
	FrameData(frame int) []byte
}

// HookPosFaultHandled marks that a fault has been resolved. The hook item is a
// Record.
var HookPosFaultHandled = &hooking.HookPos{Name: "FaultHandled"}

// Kind tells how a fault was resolved.
type Kind int

// The ways a fault can be resolved.
const (
	KindUpgrade Kind = iota
	KindLoad
	KindEvictLoad
)

func (k Kind) String() string {
	switch k {
	case KindUpgrade:
		return "upgrade"
	case KindLoad:
		return "load"
	case KindEvictLoad:
		return "evict-load"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Record describes one resolved fault.
type Record struct {
	Seq   uint64
	Page  int
	Kind  Kind
	Frame int

	// VictimPage is -1 unless a page was evicted.
	VictimPage int
	Writeback  bool
}

// A Handler resolves page faults. It is the only component that changes the
// frame pool and the page table entries.
type Handler struct {
	hooking.HookableBase

	pageTable    PageTable
	disk         disk.Disk
	pool         *frame.Pool
	victimFinder eviction.VictimFinder

	stats Stats
}

// Stats returns the counters collected so far.
func (h *Handler) Stats() Stats {
	return h.stats
}

// Pool returns the frame pool managed by the handler.
func (h *Handler) Pool() *frame.Pool {
	return h.pool
}

// HandleFault resolves a fault on page.
func (h *Handler) HandleFault(page int) {
	entry := h.pageTable.Entry(page)

	rec := Record{
		Seq:        h.stats.Faults,
		Page:       page,
		VictimPage: -1,
	}

	switch {
	case entry.Rights.CanWrite():
		panic(fmt.Sprintf("fault on page %d that is already %s",
			page, entry.Rights))
	case entry.Rights.CanRead():
		h.upgrade(page, entry, &rec)
	default:
		h.load(page, &rec)
	}

	h.stats.Faults++
	h.victimFinder.OnFaultHandled(h.pool)

	h.InvokeHook(hooking.HookCtx{
		Domain: h,
		Pos:    HookPosFaultHandled,
		Item:   rec,
	})
}

func (h *Handler) upgrade(page int, entry vm.Entry, rec *Record) {
	h.pageTable.SetEntry(page, entry.Frame, vm.RightsReadWrite)

	rec.Kind = KindUpgrade
	rec.Frame = entry.Frame
}

func (h *Handler) load(page int, rec *Record) {
	rec.Kind = KindLoad

	f, ok := h.pool.Allocate()
	if !ok {
		h.evict(rec)

		f, ok = h.pool.Allocate()
		if !ok {
			panic("no free frame after eviction")
		}
	}

	h.mustRead(page, h.pageTable.FrameData(f))
	h.stats.DiskReads++

	h.pool.Admit(f, page)
	h.pageTable.SetEntry(page, f, vm.RightsRead)

	rec.Frame = f
}

func (h *Handler) evict(rec *Record) {
	h.residentSetMustNotBeEmpty()

	id := h.victimFinder.FindVictim(h.pool)
	slot := h.pool.Slot(id)
	victim, f := slot.Page, slot.Frame

	if h.pageTable.Entry(victim).Rights.CanWrite() {
		h.mustWrite(victim, h.pageTable.FrameData(f))
		h.stats.DiskWrites++
		rec.Writeback = true
	}

	h.pageTable.SetEntry(victim, 0, vm.RightsNone)
	h.pool.Evict(id)

	rec.Kind = KindEvictLoad
	rec.VictimPage = victim
}

func (h *Handler) residentSetMustNotBeEmpty() {
	if h.pool.NumResident() == 0 {
		panic("eviction requested with no resident page")
	}
}

func (h *Handler) mustRead(page int, buf []byte) {
	err := h.disk.Read(page, buf)
	if err != nil {
		panic(fmt.Errorf("reading page %d from disk: %w", page, err))
	}
}

func (h *Handler) mustWrite(page int, buf []byte) {
	err := h.disk.Write(page, buf)
	if err != nil {
		panic(fmt.Errorf("writing page %d to disk: %w", page, err))
	}
}
