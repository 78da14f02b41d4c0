package workload

import (
	"encoding/binary"
	"math/rand"
	"sort"
)

// Scan reads every byte of the memory once, in order.
func Scan(mem Memory, _ *rand.Rand) {
	for addr := 0; addr < mem.Size(); addr++ {
		mem.Load(addr)
	}
}

// Sort fills the memory with random 32-bit integers and sorts them in place.
func Sort(mem Memory, rng *rand.Rand) {
	ints := intView{mem: mem}

	for i := 0; i < ints.Len(); i++ {
		ints.set(i, rng.Uint32())
	}

	sort.Sort(ints)
}

const (
	focusRounds     = 100
	focusAccesses   = 100
	focusRegionSize = 25
)

// Focus writes and then reads small random regions, so that most accesses in
// a round hit the same few pages.
func Focus(mem Memory, rng *rand.Rand) {
	size := mem.Size()

	for r := 0; r < focusRounds; r++ {
		start := rng.Intn(size)

		for i := 0; i < focusAccesses; i++ {
			mem.Store((start+rng.Intn(focusRegionSize))%size, 0)
		}

		for i := 0; i < focusAccesses; i++ {
			mem.Load((start + rng.Intn(focusRegionSize)) % size)
		}
	}
}

const intSize = 4

// intView sees the memory as an array of little-endian uint32.
type intView struct {
	mem Memory
}

func (v intView) Len() int {
	return v.mem.Size() / intSize
}

func (v intView) get(i int) uint32 {
	var b [intSize]byte
	for j := range b {
		b[j] = v.mem.Load(i*intSize + j)
	}

	return binary.LittleEndian.Uint32(b[:])
}

func (v intView) set(i int, x uint32) {
	var b [intSize]byte
	binary.LittleEndian.PutUint32(b[:], x)

	for j := range b {
		v.mem.Store(i*intSize+j, b[j])
	}
}

func (v intView) Less(i, j int) bool {
	return v.get(i) < v.get(j)
}

func (v intView) Swap(i, j int) {
	a, b := v.get(i), v.get(j)
	v.set(i, b)
	v.set(j, a)
}
