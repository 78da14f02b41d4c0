package simulation

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

const runTableName = "runs"

type runEntry struct {
	ID         string
	Workload   string
	Policy     string
	NumPages   int
	NumFrames  int
	PageSize   int
	Seed       int64
	Faults     uint64
	DiskReads  uint64
	DiskWrites uint64
	HostRSS    uint64
}

func (s *Simulation) recordRun() {
	stats := s.Stats()

	s.dataRecorder.InsertData(runTableName, runEntry{
		ID:         s.id,
		Workload:   s.workloadName,
		Policy:     s.policy.String(),
		NumPages:   s.numPages,
		NumFrames:  s.numFrames,
		PageSize:   s.pageSize,
		Seed:       s.seed,
		Faults:     stats.Faults,
		DiskReads:  stats.DiskReads,
		DiskWrites: stats.DiskWrites,
		HostRSS:    hostRSS(),
	})
}

// hostRSS returns the resident memory of the simulator process, or 0 if it
// cannot be read.
func hostRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return 0
	}

	return mem.RSS
}
