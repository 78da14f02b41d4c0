package fault

import (
	"log"

	"github.com/sarchlab/virtmem/hooking"
)

// LogHook prints one line for every resolved fault.
type LogHook struct {
	*log.Logger
}

// NewLogHook creates a LogHook that writes to logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func prints the fault.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosFaultHandled {
		return
	}

	rec := ctx.Item.(Record)

	switch rec.Kind {
	case KindEvictLoad:
		h.Printf("page fault on page #%d (%s): frame %d, evicted page #%d, writeback %t",
			rec.Page, rec.Kind, rec.Frame, rec.VictimPage, rec.Writeback)
	default:
		h.Printf("page fault on page #%d (%s): frame %d",
			rec.Page, rec.Kind, rec.Frame)
	}
}
