package vm

import (
	"fmt"
	"strings"
)

// Tracer observes a run step by step. CaptureState is called once per
// instruction, after gas has been charged and before the handler runs. A
// rejected step is reported with a non-nil err; its cost is 0 unless the
// step failed on the charge itself. CaptureEnd receives the final outcome.
type Tracer interface {
	CaptureStart(code []byte, gas uint64)
	CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, err error)
	CaptureEnd(out *Outcome)
}

// StructLog is a single step recorded by StructLogTracer.
type StructLog struct {
	PC      uint64   `json:"pc"`
	Op      string   `json:"op"`
	Gas     uint64   `json:"gas"`
	GasCost uint64   `json:"gasCost"`
	Stack   []string `json:"stack"`
	Memory  []byte   `json:"memory,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// StructLogTracerConfig controls which optional data is captured per step.
type StructLogTracerConfig struct {
	EnableMemory bool
}

// StructLogTracer collects every step of a run in memory.
type StructLogTracer struct {
	config  StructLogTracerConfig
	logs    []StructLog
	outcome *Outcome
}

// NewStructLogTracer returns an empty StructLogTracer.
func NewStructLogTracer(config StructLogTracerConfig) *StructLogTracer {
	return &StructLogTracer{config: config}
}

// CaptureStart resets the tracer so it can be reused across runs.
func (t *StructLogTracer) CaptureStart(code []byte, gas uint64) {
	t.logs = nil
	t.outcome = nil
}

// CaptureState records one step. The stack is copied as hex strings,
// bottom first.
func (t *StructLogTracer) CaptureState(pc uint64, op OpCode, gas, cost uint64, stack *Stack, memory *Memory, err error) {
	entry := StructLog{
		PC:      pc,
		Op:      op.String(),
		Gas:     gas,
		GasCost: cost,
	}
	data := stack.Data()
	entry.Stack = make([]string, len(data))
	for i := range data {
		entry.Stack[i] = data[i].Hex()
	}
	if t.config.EnableMemory && memory.Len() > 0 {
		entry.Memory = memory.Data()
	}
	if err != nil {
		entry.Error = err.Error()
	}
	t.logs = append(t.logs, entry)
}

// CaptureEnd stores the outcome of the run.
func (t *StructLogTracer) CaptureEnd(out *Outcome) {
	t.outcome = out
}

// Logs returns the recorded steps.
func (t *StructLogTracer) Logs() []StructLog { return t.logs }

// Outcome returns the outcome of the last traced run, or nil while a run
// is in progress.
func (t *StructLogTracer) Outcome() *Outcome { return t.outcome }

// FormatLogs renders logs as one human-readable line per step.
func FormatLogs(logs []StructLog) string {
	var b strings.Builder
	for i, log := range logs {
		fmt.Fprintf(&b, "%-5d %-10s gas=%-8d cost=%-6d", log.PC, log.Op, log.Gas, log.GasCost)
		if len(log.Stack) > 0 {
			b.WriteString(" stack=[" + strings.Join(log.Stack, ", ") + "]")
		}
		if len(log.Memory) > 0 {
			fmt.Fprintf(&b, " mem=%x", log.Memory)
		}
		if log.Error != "" {
			fmt.Fprintf(&b, " err=%q", log.Error)
		}
		if i < len(logs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
