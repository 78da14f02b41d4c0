package simulation

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/rs/xid"
	"github.com/sarchlab/virtmem/datarecording"
	"github.com/sarchlab/virtmem/disk"
	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/fault"
	"github.com/sarchlab/virtmem/vm"
)

// DefaultPageSize is the number of bytes in a page unless set otherwise.
const DefaultPageSize = 4096

// DefaultDiskPath is the file that backs the virtual memory unless set
// otherwise.
const DefaultDiskPath = "myvirtualdisk"

// Builder can be used to build a simulation.
type Builder struct {
	numPages     int
	numFrames    int
	pageSize     int
	policy       eviction.Kind
	seed         int64
	diskPath     string
	inMemoryDisk bool
	recordOn     bool
	recordPath   string
	faultLogger  *log.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		numPages:  1,
		numFrames: 1,
		pageSize:  DefaultPageSize,
		policy:    eviction.FIFO,
		seed:      1,
		diskPath:  DefaultDiskPath,
	}
}

// WithNumPages sets the number of virtual pages.
func (b Builder) WithNumPages(n int) Builder {
	b.numPages = n
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n int) Builder {
	b.numFrames = n
	return b
}

// WithPageSize sets the number of bytes in a page.
func (b Builder) WithPageSize(n int) Builder {
	b.pageSize = n
	return b
}

// WithPolicy sets the page replacement policy.
func (b Builder) WithPolicy(k eviction.Kind) Builder {
	b.policy = k
	return b
}

// WithSeed sets the seed of the random source shared by the replacement
// policy and the workload.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithDiskPath sets the file that backs the virtual memory.
func (b Builder) WithDiskPath(path string) Builder {
	b.diskPath = path
	b.inMemoryDisk = false

	return b
}

// WithInMemoryDisk keeps the backing store in memory instead of a file.
func (b Builder) WithInMemoryDisk() Builder {
	b.inMemoryDisk = true
	return b
}

// WithRecording records every fault and the run summary in a SQLite
// database. An empty path generates a unique file name.
func (b Builder) WithRecording(path string) Builder {
	b.recordOn = true
	b.recordPath = path

	return b
}

// WithFaultLogger prints every fault to the logger.
func (b Builder) WithFaultLogger(logger *log.Logger) Builder {
	b.faultLogger = logger
	return b
}

// Build creates the disk, the page table, and the fault handler, and wires
// them together.
func (b Builder) Build() (*Simulation, error) {
	s := &Simulation{
		id:          xid.New().String(),
		numPages:    b.numPages,
		numFrames:   b.numFrames,
		pageSize:    b.pageSize,
		policy:      b.policy,
		seed:        b.seed,
		rng:         rand.New(rand.NewSource(b.seed)),
		kindCounter: fault.NewKindCounter(),
	}

	d, err := b.openDisk()
	if err != nil {
		return nil, fmt.Errorf("couldn't create virtual disk: %w", err)
	}
	s.disk = d

	pt, err := vm.NewPageTable(b.numPages, b.numFrames, b.pageSize)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("couldn't create page table: %w", err)
	}
	s.pageTable = pt

	s.handler = fault.MakeBuilder().
		WithPageTable(pt).
		WithDisk(d).
		WithNumFrames(b.numFrames).
		WithVictimFinder(eviction.NewVictimFinder(b.policy, s.rng, pt)).
		Build()
	pt.RegisterFaultHandler(s.handler)

	s.handler.AcceptHook(s.kindCounter)

	if b.faultLogger != nil {
		s.handler.AcceptHook(fault.NewLogHook(b.faultLogger))
	}

	if b.recordOn {
		err = s.startRecording(b.recordPath)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("couldn't create recording database: %w", err)
		}
	}

	return s, nil
}

func (b Builder) openDisk() (disk.Disk, error) {
	if b.inMemoryDisk {
		return disk.NewStorage(b.numPages, b.pageSize)
	}

	return disk.Open(b.diskPath, b.numPages, b.pageSize)
}

func (s *Simulation) startRecording(path string) error {
	recorder, err := datarecording.New(path)
	if err != nil {
		return err
	}

	s.dataRecorder = recorder
	s.dataRecorder.CreateTable(runTableName, runEntry{})
	s.handler.AcceptHook(fault.NewDBHook(s.id, recorder))

	return nil
}
