package fault

import (
	"bytes"
	"log"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/virtmem/disk"
	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/vm"
)

const testPageSize = 8

type machine struct {
	pageTable *vm.PageTable
	storage   *disk.Storage
	handler   *Handler
}

func newMachine(numPages, numFrames int, kind eviction.Kind) machine {
	pt, err := vm.NewPageTable(numPages, numFrames, testPageSize)
	Expect(err).NotTo(HaveOccurred())

	storage, err := disk.NewStorage(numPages, testPageSize)
	Expect(err).NotTo(HaveOccurred())

	rng := rand.New(rand.NewSource(1))

	h := MakeBuilder().
		WithPageTable(pt).
		WithDisk(storage).
		WithNumFrames(numFrames).
		WithVictimFinder(eviction.NewVictimFinder(kind, rng, pt)).
		Build()
	pt.RegisterFaultHandler(h)

	return machine{pageTable: pt, storage: storage, handler: h}
}

func (m machine) invariantsMustHold() {
	pool := m.handler.Pool()
	Expect(pool.NumResident() + pool.NumFree()).To(Equal(pool.NumFrames()))

	frames := map[int]int{}
	for _, s := range pool.Slots() {
		Expect(frames).NotTo(HaveKey(s.Frame))
		frames[s.Frame] = s.Page

		e := m.pageTable.Entry(s.Page)
		Expect(e.Rights.CanRead()).To(BeTrue())
		Expect(e.Frame).To(Equal(s.Frame))
	}

	resident := 0
	for p := 0; p < m.pageTable.NumPages(); p++ {
		if m.pageTable.Rights(p) != vm.RightsNone {
			resident++
		}
	}
	Expect(resident).To(Equal(pool.NumResident()))
}

var _ = Describe("Fault handling", func() {
	for _, kind := range []eviction.Kind{
		eviction.FIFO, eviction.Random, eviction.Clock,
	} {
		It("should keep the data of every page with "+kind.String(), func() {
			m := newMachine(8, 3, kind)
			rng := rand.New(rand.NewSource(5))
			shadow := make([]byte, 8*testPageSize)

			for i := 0; i < 2000; i++ {
				addr := rng.Intn(len(shadow))
				if rng.Intn(3) == 0 {
					v := byte(rng.Intn(256))
					m.pageTable.Store(addr, v)
					shadow[addr] = v
				} else {
					Expect(m.pageTable.Load(addr)).To(Equal(shadow[addr]))
				}

				m.invariantsMustHold()
			}
		})
	}

	It("should evict the first loaded page with FIFO", func() {
		m := newMachine(4, 3, eviction.FIFO)

		for p := 0; p < 3; p++ {
			m.pageTable.Load(p * testPageSize)
		}
		m.pageTable.Load(3 * testPageSize)

		Expect(m.pageTable.Rights(0)).To(Equal(vm.RightsNone))
		Expect(m.pageTable.Rights(3)).To(Equal(vm.RightsRead))
		Expect(m.handler.Stats()).To(Equal(
			Stats{Faults: 4, DiskReads: 4, DiskWrites: 0}))
	})

	It("should count one upgrade fault per written page", func() {
		m := newMachine(2, 2, eviction.FIFO)

		m.pageTable.Store(0, 1)
		m.pageTable.Store(testPageSize, 1)
		m.pageTable.Store(1, 1)

		Expect(m.handler.Stats()).To(Equal(
			Stats{Faults: 4, DiskReads: 2, DiskWrites: 0}))
	})

	It("should write back only pages that were written", func() {
		m := newMachine(4, 1, eviction.FIFO)

		m.pageTable.Store(0, 42)
		m.pageTable.Load(testPageSize)
		m.pageTable.Load(2 * testPageSize)

		Expect(m.handler.Stats().DiskWrites).To(Equal(uint64(1)))

		buf := make([]byte, testPageSize)
		Expect(m.storage.Read(0, buf)).To(Succeed())
		Expect(buf[0]).To(Equal(byte(42)))

		Expect(m.pageTable.Load(0)).To(Equal(byte(42)))
	})

	It("should age pages on upgrade faults with Clock", func() {
		m := newMachine(4, 2, eviction.Clock)

		m.pageTable.Load(0)
		m.pageTable.Store(testPageSize, 1)

		slots := m.handler.Pool().Slots()
		Expect(slots[0].Idle).To(Equal(3))
		Expect(slots[1].Idle).To(Equal(0))
	})
})

var _ = Describe("LogHook", func() {
	It("should print each fault", func() {
		out := &bytes.Buffer{}
		m := newMachine(2, 1, eviction.FIFO)
		m.handler.AcceptHook(NewLogHook(log.New(out, "", 0)))

		m.pageTable.Load(0)
		m.pageTable.Load(testPageSize)

		Expect(out.String()).To(Equal(
			"page fault on page #0 (load): frame 0\n" +
				"page fault on page #1 (evict-load): frame 0, " +
				"evicted page #0, writeback false\n"))
	})
})

var _ = Describe("DBHook", func() {
	var mockCtrl *gomock.Controller

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record each fault", func() {
		recorder := NewMockDataRecorder(mockCtrl)
		recorder.EXPECT().CreateTable("page_faults", faultEntry{})
		recorder.EXPECT().InsertData("page_faults", faultEntry{
			RunID:      "run",
			Seq:        0,
			Page:       1,
			Kind:       "load",
			Frame:      0,
			VictimPage: -1,
		})
		recorder.EXPECT().InsertData("page_faults", faultEntry{
			RunID:      "run",
			Seq:        1,
			Page:       1,
			Kind:       "upgrade",
			Frame:      0,
			VictimPage: -1,
		})

		m := newMachine(2, 1, eviction.FIFO)
		m.handler.AcceptHook(NewDBHook("run", recorder))

		m.pageTable.Store(testPageSize, 9)
	})
})
