package workload_test

import (
	"encoding/binary"
	"math/rand"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/virtmem/workload"
)

type flatMemory struct {
	data   []byte
	loads  int
	stores int
}

func (m *flatMemory) Load(addr int) byte {
	m.loads++
	return m.data[addr]
}

func (m *flatMemory) Store(addr int, v byte) {
	m.stores++
	m.data[addr] = v
}

func (m *flatMemory) Size() int {
	return len(m.data)
}

var _ = Describe("Lookup", func() {
	It("should find every program", func() {
		Expect(workload.Names()).To(Equal([]string{"focus", "scan", "sort"}))
		for _, n := range workload.Names() {
			p, err := workload.Lookup(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).NotTo(BeNil())
		}
	})

	It("should reject unknown programs", func() {
		_, err := workload.Lookup("bogus")
		Expect(err).To(MatchError(workload.ErrUnknownProgram))
	})
})

var _ = Describe("Programs", func() {
	var mem *flatMemory

	BeforeEach(func() {
		mem = &flatMemory{data: make([]byte, 1024)}
	})

	It("should only read in scan", func() {
		workload.Scan(mem, rand.New(rand.NewSource(1)))

		Expect(mem.loads).To(Equal(1024))
		Expect(mem.stores).To(BeZero())
	})

	It("should sort the memory as integers", func() {
		workload.Sort(mem, rand.New(rand.NewSource(1)))

		ints := make([]int, len(mem.data)/4)
		for i := range ints {
			ints[i] = int(binary.LittleEndian.Uint32(mem.data[i*4:]))
		}
		Expect(sort.IntsAreSorted(ints)).To(BeTrue())
	})

	It("should write and read within the memory in focus", func() {
		workload.Focus(mem, rand.New(rand.NewSource(1)))

		Expect(mem.stores).To(Equal(100 * 100))
		Expect(mem.loads).To(Equal(100 * 100))
	})

	It("should be deterministic for a seed", func() {
		other := &flatMemory{data: make([]byte, 1024)}

		workload.Sort(mem, rand.New(rand.NewSource(9)))
		workload.Sort(other, rand.New(rand.NewSource(9)))

		Expect(mem.data).To(Equal(other.data))
	})
})
