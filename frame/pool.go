// Package frame tracks the physical frames of the simulated machine and the
// pages that currently occupy them.
package frame

import "fmt"

// A SlotID identifies a Slot in the pool's arena. IDs are recycled after the
// slot is evicted.
type SlotID int

// A Slot is the metadata of one frame that currently holds a page.
type Slot struct {
	ID    SlotID
	Frame int
	Page  int

	// LoadSeq is the order in which the page was loaded. It only grows.
	LoadSeq uint64

	// Idle is owned by the replacement policy. The pool resets it on load.
	Idle int

	resident bool
}

// A Pool tracks which frames are free and which are resident.
type Pool struct {
	numFrames int

	slots       []Slot
	freeSlotIDs []SlotID
	loadOrder   []SlotID

	frameFree   []bool
	numFree     int
	pageToSlot  map[int]SlotID
	nextLoadSeq uint64
}

// NewPool creates a pool with numFrames frames, all of them free.
func NewPool(numFrames int) *Pool {
	if numFrames < 1 {
		panic(fmt.Sprintf("frame pool needs at least one frame, got %d",
			numFrames))
	}

	p := &Pool{
		numFrames:  numFrames,
		slots:      make([]Slot, 0, numFrames),
		loadOrder:  make([]SlotID, 0, numFrames),
		frameFree:  make([]bool, numFrames),
		numFree:    numFrames,
		pageToSlot: make(map[int]SlotID),
	}

	for i := range p.frameFree {
		p.frameFree[i] = true
	}

	return p
}

// NumFrames returns the total number of frames.
func (p *Pool) NumFrames() int {
	return p.numFrames
}

// NumFree returns the number of frames that hold no page.
func (p *Pool) NumFree() int {
	return p.numFree
}

// NumResident returns the number of frames that hold a page.
func (p *Pool) NumResident() int {
	return len(p.loadOrder)
}

// Allocate returns the lowest-numbered free frame. The frame stays free until
// a page is admitted into it.
func (p *Pool) Allocate() (int, bool) {
	if p.numFree == 0 {
		return 0, false
	}

	for f, free := range p.frameFree {
		if free {
			return f, true
		}
	}

	panic("free frame count is not zero, but no free frame is found")
}

// Admit records that page now lives in frame. The new slot is appended to the
// load order.
func (p *Pool) Admit(frame, page int) SlotID {
	p.frameMustBeFree(frame)
	p.pageMustNotBeResident(page)

	id := p.newSlotID()
	p.slots[id] = Slot{
		ID:       id,
		Frame:    frame,
		Page:     page,
		LoadSeq:  p.nextLoadSeq,
		resident: true,
	}
	p.nextLoadSeq++

	p.frameFree[frame] = false
	p.numFree--
	p.pageToSlot[page] = id
	p.loadOrder = append(p.loadOrder, id)

	return id
}

// Evict removes the slot from the resident set and frees its frame.
func (p *Pool) Evict(id SlotID) {
	p.slotMustBeResident(id)

	slot := &p.slots[id]
	p.removeFromLoadOrder(id)
	delete(p.pageToSlot, slot.Page)
	p.frameFree[slot.Frame] = true
	p.numFree++

	*slot = Slot{ID: id}
	p.freeSlotIDs = append(p.freeSlotIDs, id)
}

// Slot returns the slot with the given ID.
func (p *Pool) Slot(id SlotID) *Slot {
	p.slotMustBeResident(id)
	return &p.slots[id]
}

// Slots returns the resident slots, oldest first.
func (p *Pool) Slots() []*Slot {
	slots := make([]*Slot, 0, len(p.loadOrder))
	for _, id := range p.loadOrder {
		slots = append(slots, &p.slots[id])
	}

	return slots
}

// FindPage returns the slot that holds the page, if the page is resident.
func (p *Pool) FindPage(page int) (SlotID, bool) {
	id, found := p.pageToSlot[page]
	return id, found
}

func (p *Pool) newSlotID() SlotID {
	n := len(p.freeSlotIDs)
	if n > 0 {
		id := p.freeSlotIDs[n-1]
		p.freeSlotIDs = p.freeSlotIDs[:n-1]

		return id
	}

	p.slots = append(p.slots, Slot{})

	return SlotID(len(p.slots) - 1)
}

func (p *Pool) removeFromLoadOrder(id SlotID) {
	for i, s := range p.loadOrder {
		if s == id {
			p.loadOrder = append(p.loadOrder[:i], p.loadOrder[i+1:]...)
			return
		}
	}

	panic(fmt.Sprintf("slot %d is not in the load order", id))
}

func (p *Pool) frameMustBeFree(frame int) {
	if frame < 0 || frame >= p.numFrames {
		panic(fmt.Sprintf("frame %d out of range [0, %d)", frame, p.numFrames))
	}

	if !p.frameFree[frame] {
		panic(fmt.Sprintf("frame %d is already taken", frame))
	}
}

func (p *Pool) pageMustNotBeResident(page int) {
	if id, found := p.pageToSlot[page]; found {
		panic(fmt.Sprintf("page %d is already resident in frame %d",
			page, p.slots[id].Frame))
	}
}

func (p *Pool) slotMustBeResident(id SlotID) {
	if id < 0 || int(id) >= len(p.slots) || !p.slots[id].resident {
		panic(fmt.Sprintf("slot %d is not resident", id))
	}
}
