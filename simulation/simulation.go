// Package simulation wires the page table, the backing disk, and the fault
// handler into a runnable virtual memory simulation.
package simulation

import (
	"errors"
	"io"
	"math/rand"

	"github.com/sarchlab/virtmem/datarecording"
	"github.com/sarchlab/virtmem/disk"
	"github.com/sarchlab/virtmem/eviction"
	"github.com/sarchlab/virtmem/fault"
	"github.com/sarchlab/virtmem/vm"
	"github.com/sarchlab/virtmem/workload"
)

// A Simulation holds every piece of state of one run.
type Simulation struct {
	id        string
	numPages  int
	numFrames int
	pageSize  int
	policy    eviction.Kind
	seed      int64
	rng       *rand.Rand

	disk         disk.Disk
	pageTable    *vm.PageTable
	handler      *fault.Handler
	kindCounter  *fault.KindCounter
	dataRecorder datarecording.DataRecorder

	workloadName string
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// PageTable returns the page table of the simulated machine.
func (s *Simulation) PageTable() *vm.PageTable {
	return s.pageTable
}

// Handler returns the fault handler.
func (s *Simulation) Handler() *fault.Handler {
	return s.handler
}

// Stats returns the fault, disk read, and disk write counts.
func (s *Simulation) Stats() fault.Stats {
	return s.handler.Stats()
}

// FaultKindCount returns how many faults were resolved in a certain way.
func (s *Simulation) FaultKindCount(kind fault.Kind) uint64 {
	return s.kindCounter.Count(kind)
}

// Run runs the named workload program to completion. An unknown program
// returns workload.ErrUnknownProgram without touching memory.
func (s *Simulation) Run(workloadName string) error {
	s.workloadName = workloadName

	program, err := workload.Lookup(workloadName)
	if err != nil {
		return err
	}

	program(s.pageTable, s.rng)

	return nil
}

// Report writes the run summary.
func (s *Simulation) Report(w io.Writer) error {
	return s.Stats().Report(w, s.workloadName, s.policy.String())
}

// Terminate records the run summary, if recording, and releases the disk.
func (s *Simulation) Terminate() error {
	var errs []error

	if s.dataRecorder != nil {
		s.recordRun()
		errs = append(errs, s.dataRecorder.Close())
	}

	errs = append(errs, s.disk.Close())

	return errors.Join(errs...)
}
