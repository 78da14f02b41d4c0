package fault

import (
	"fmt"
	"io"
	"strings"
)

// Stats counts what the fault handler did.
type Stats struct {
	Faults     uint64
	DiskReads  uint64
	DiskWrites uint64
}

// Report writes the run summary.
func (s Stats) Report(w io.Writer, workload, policy string) error {
	_, err := fmt.Fprintf(w,
		"%s program, %s policy\n"+
			"page faults: %d\n"+
			"disk reads: %d\n"+
			"disk writes: %d\n"+
			"%s\n",
		workload, policy,
		s.Faults, s.DiskReads, s.DiskWrites,
		strings.Repeat("-", 40))

	return err
}
