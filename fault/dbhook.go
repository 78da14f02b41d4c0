package fault

import (
	"github.com/sarchlab/virtmem/datarecording"
	"github.com/sarchlab/virtmem/hooking"
)

const faultTableName = "page_faults"

type faultEntry struct {
	RunID      string
	Seq        uint64
	Page       int
	Kind       string
	Frame      int
	VictimPage int
	Writeback  bool
}

// A DBHook records every resolved fault into a data recorder.
type DBHook struct {
	runID    string
	recorder datarecording.DataRecorder
}

// NewDBHook creates a DBHook and the table it writes to.
func NewDBHook(runID string, recorder datarecording.DataRecorder) *DBHook {
	recorder.CreateTable(faultTableName, faultEntry{})

	return &DBHook{
		runID:    runID,
		recorder: recorder,
	}
}

// Func records the fault.
func (h *DBHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosFaultHandled {
		return
	}

	rec := ctx.Item.(Record)

	h.recorder.InsertData(faultTableName, faultEntry{
		RunID:      h.runID,
		Seq:        rec.Seq,
		Page:       rec.Page,
		Kind:       rec.Kind.String(),
		Frame:      rec.Frame,
		VictimPage: rec.VictimPage,
		Writeback:  rec.Writeback,
	})
}
