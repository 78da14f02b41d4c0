package fault

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/virtmem/vm"
)

var _ = Describe("Handler", func() {
	var (
		mockCtrl     *gomock.Controller
		pageTable    *MockPageTable
		disk         *MockDisk
		victimFinder *MockVictimFinder
		handler      *Handler
		buf          []byte
	)

	build := func(numFrames int) {
		handler = MakeBuilder().
			WithPageTable(pageTable).
			WithDisk(disk).
			WithNumFrames(numFrames).
			WithVictimFinder(victimFinder).
			Build()
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pageTable = NewMockPageTable(mockCtrl)
		disk = NewMockDisk(mockCtrl)
		victimFinder = NewMockVictimFinder(mockCtrl)
		buf = make([]byte, 16)

		build(2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse to build without collaborators", func() {
		Expect(func() { MakeBuilder().Build() }).To(Panic())
		Expect(func() {
			MakeBuilder().WithPageTable(pageTable).WithDisk(disk).Build()
		}).To(Panic())
	})

	It("should upgrade a read-only page without disk access", func() {
		handler.pool.Admit(1, 3)

		pageTable.EXPECT().Entry(3).
			Return(vm.Entry{Frame: 1, Rights: vm.RightsRead})
		pageTable.EXPECT().SetEntry(3, 1, vm.RightsReadWrite)
		victimFinder.EXPECT().OnFaultHandled(handler.pool)

		handler.HandleFault(3)

		Expect(handler.Stats()).To(Equal(Stats{Faults: 1}))
		Expect(handler.pool.NumResident()).To(Equal(1))
	})

	It("should load a page into a free frame", func() {
		gomock.InOrder(
			pageTable.EXPECT().Entry(3).Return(vm.Entry{}),
			pageTable.EXPECT().FrameData(0).Return(buf),
			disk.EXPECT().Read(3, buf).Return(nil),
			pageTable.EXPECT().SetEntry(3, 0, vm.RightsRead),
			victimFinder.EXPECT().OnFaultHandled(handler.pool),
		)

		handler.HandleFault(3)

		Expect(handler.Stats()).To(Equal(Stats{Faults: 1, DiskReads: 1}))
		id, found := handler.pool.FindPage(3)
		Expect(found).To(BeTrue())
		Expect(handler.pool.Slot(id).Frame).To(Equal(0))
	})

	Context("when no frame is free", func() {
		var victim int

		BeforeEach(func() {
			build(1)
			id := handler.pool.Admit(0, 5)
			victim = 5

			pageTable.EXPECT().Entry(7).Return(vm.Entry{})
			victimFinder.EXPECT().FindVictim(handler.pool).Return(id)
		})

		It("should write back a dirty victim", func() {
			gomock.InOrder(
				pageTable.EXPECT().Entry(victim).
					Return(vm.Entry{Frame: 0, Rights: vm.RightsReadWrite}),
				pageTable.EXPECT().FrameData(0).Return(buf),
				disk.EXPECT().Write(victim, buf).Return(nil),
				pageTable.EXPECT().SetEntry(victim, 0, vm.RightsNone),
				pageTable.EXPECT().FrameData(0).Return(buf),
				disk.EXPECT().Read(7, buf).Return(nil),
				pageTable.EXPECT().SetEntry(7, 0, vm.RightsRead),
				victimFinder.EXPECT().OnFaultHandled(handler.pool),
			)

			handler.HandleFault(7)

			Expect(handler.Stats()).To(Equal(
				Stats{Faults: 1, DiskReads: 1, DiskWrites: 1}))
			_, found := handler.pool.FindPage(victim)
			Expect(found).To(BeFalse())
		})

		It("should skip the writeback of a clean victim", func() {
			gomock.InOrder(
				pageTable.EXPECT().Entry(victim).
					Return(vm.Entry{Frame: 0, Rights: vm.RightsRead}),
				pageTable.EXPECT().SetEntry(victim, 0, vm.RightsNone),
				pageTable.EXPECT().FrameData(0).Return(buf),
				disk.EXPECT().Read(7, buf).Return(nil),
				pageTable.EXPECT().SetEntry(7, 0, vm.RightsRead),
				victimFinder.EXPECT().OnFaultHandled(handler.pool),
			)

			handler.HandleFault(7)

			Expect(handler.Stats()).To(Equal(Stats{Faults: 1, DiskReads: 1}))
		})
	})

	It("should panic on a fault of a read-write page", func() {
		pageTable.EXPECT().Entry(3).
			Return(vm.Entry{Frame: 0, Rights: vm.RightsReadWrite})

		Expect(func() { handler.HandleFault(3) }).To(Panic())
	})

	It("should panic when the disk fails", func() {
		pageTable.EXPECT().Entry(3).Return(vm.Entry{})
		pageTable.EXPECT().FrameData(0).Return(buf)
		disk.EXPECT().Read(3, buf).Return(errors.New("broken disk"))

		Expect(func() { handler.HandleFault(3) }).To(Panic())
	})

	It("should invoke hooks after every fault", func() {
		counter := NewKindCounter()
		handler.AcceptHook(counter)

		pageTable.EXPECT().Entry(3).Return(vm.Entry{})
		pageTable.EXPECT().FrameData(0).Return(buf)
		disk.EXPECT().Read(3, buf).Return(nil)
		pageTable.EXPECT().SetEntry(3, 0, vm.RightsRead)
		pageTable.EXPECT().Entry(3).
			Return(vm.Entry{Frame: 0, Rights: vm.RightsRead})
		pageTable.EXPECT().SetEntry(3, 0, vm.RightsReadWrite)
		victimFinder.EXPECT().OnFaultHandled(handler.pool).Times(2)

		handler.HandleFault(3)
		handler.HandleFault(3)

		Expect(counter.Kinds()).To(Equal([]Kind{KindLoad, KindUpgrade}))
		Expect(counter.Count(KindLoad)).To(Equal(uint64(1)))
		Expect(counter.Count(KindUpgrade)).To(Equal(uint64(1)))
		Expect(counter.Count(KindEvictLoad)).To(BeZero())
	})
})
