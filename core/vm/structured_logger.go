package vm

import (
	"log/slog"

	"github.com/eth2030/stackvm/log"
)

// LogTracer writes every step of a run to a Logger at debug level. It keeps
// no state and may be shared by concurrent runs.
type LogTracer struct {
	log *log.Logger
}

// NewLogTracer returns a LogTracer writing to l, or to the default logger's
// "trace" module when l is nil.
func NewLogTracer(l *log.Logger) *LogTracer {
	if l == nil {
		l = log.Default().Module("trace")
	}
	return &LogTracer{log: l}
}

func (t *LogTracer) CaptureStart(code []byte, gas uint64) {
	t.log.Debug("run start", "codeLen", len(code), "gas", gas)
}

func (t *LogTracer) CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, err error) {
	if !t.log.Enabled(slog.LevelDebug) {
		return
	}
	args := []any{"pc", pc, "op", op.String(), "gas", gas, "cost", cost, "depth", stack.Len()}
	if stack.Len() > 0 {
		top, _ := stack.Peek(0)
		args = append(args, "top", top.Hex())
	}
	if err != nil {
		args = append(args, "err", err)
	}
	t.log.Debug("step", args...)
}

func (t *LogTracer) CaptureEnd(out *Outcome) {
	t.log.Debug("run end", "status", out.Status.String(), "gasUsed", out.GasUsed, "steps", out.Steps)
}
