package vm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/eth2030/stackvm/log"
	"github.com/eth2030/stackvm/metrics"
)

// Status is the state of an Interpreter.
type Status uint8

const (
	StatusRunning Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Outcome is the terminal result of a run.
//
// On success Stack holds the final stack, bottom first and top last, and
// Memory the final memory contents. On failure both are nil: only the gas
// consumed and the failure survive.
type Outcome struct {
	Status  Status
	Kind    FailureKind
	Err     error // first error encountered, nil on success
	Stack   []Word
	Memory  []byte
	GasUsed uint64
	GasLeft uint64
	PC      uint64 // pc of the failing instruction, or where execution stopped
	Steps   uint64 // instructions executed to completion
}

// Failed reports whether the run halted with a failure.
func (o *Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// Interpreter executes a single program. It owns its stack, memory, gas
// meter and program counter and is not safe for concurrent use; separate
// Interpreters share no state and may run in parallel.
type Interpreter struct {
	code []byte
	cfg  Config

	pc    uint64
	stack *Stack
	mem   *Memory
	gas   *GasMeter

	status  Status
	outcome *Outcome
	steps   uint64

	log *log.Logger
}

// New returns an Interpreter in the running state with pc 0, an empty
// stack, empty memory and the full gas budget. The code is copied.
func New(code []byte, gas uint64, cfg Config) (*Interpreter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Interpreter{
		code:   append([]byte(nil), code...),
		cfg:    cfg,
		stack:  NewStack(cfg.StackLimit),
		mem:    NewMemory(),
		gas:    NewGasMeter(gas),
		status: StatusRunning,
		log:    cfg.Logger,
	}, nil
}

// Execute runs code with the given gas budget and returns its outcome.
func Execute(code []byte, gas uint64, cfg Config) (*Outcome, error) {
	in, err := New(code, gas, cfg)
	if err != nil {
		return nil, err
	}
	return in.Run(), nil
}

// Status returns the current state of the interpreter.
func (in *Interpreter) Status() Status {
	return in.status
}

// Run advances the interpreter to a terminal state and returns the
// outcome. Calling Run again returns the same outcome without re-executing.
func (in *Interpreter) Run() *Outcome {
	if in.outcome != nil {
		return in.outcome
	}
	if !in.cfg.DisableMetrics {
		metrics.VMActiveRuns.Inc()
		defer metrics.VMActiveRuns.Dec()
		timer := metrics.NewTimer(metrics.VMRunTime)
		defer timer.Stop()
	}
	if in.cfg.Tracer != nil {
		in.cfg.Tracer.CaptureStart(in.code, in.gas.Limit())
	}
	in.log.Debug("run start", "codeLen", len(in.code), "gas", in.gas.Limit())

	for in.status == StatusRunning {
		if in.pc >= uint64(len(in.code)) {
			in.halt(nil)
			break
		}
		halted, err := in.step()
		if err != nil {
			in.halt(err)
			break
		}
		if halted {
			in.halt(nil)
		}
	}
	return in.outcome
}

// step executes the instruction at pc. All checks and the gas charge happen
// before the handler runs, so a failing step leaves the stack, memory, pc
// and gas exactly as they were.
func (in *Interpreter) step() (bool, error) {
	ins, err := Decode(in.code, in.pc)
	if err != nil {
		in.capture(&ins, 0, err)
		return false, err
	}
	op := instructionSet[ins.Op]

	if sLen := in.stack.Len(); sLen < op.pops {
		err := fmt.Errorf("%w: %v needs %d items, have %d", ErrStackUnderflow, ins.Op, op.pops, sLen)
		in.capture(&ins, 0, err)
		return false, err
	} else if sLen-op.pops+op.pushes > in.stack.Limit() {
		err := fmt.Errorf("%w: %v exceeds limit %d", ErrStackOverflow, ins.Op, in.stack.Limit())
		in.capture(&ins, 0, err)
		return false, err
	}

	cost, memSize, err := in.cost(op)
	if err != nil {
		in.capture(&ins, 0, err)
		return false, err
	}
	if err := in.gas.Charge(cost); err != nil {
		in.capture(&ins, cost, err)
		return false, err
	}
	in.capture(&ins, cost, nil)

	if memSize > 0 {
		in.mem.Resize(memSize)
	}
	op.execute(&ins, &scopeContext{Stack: in.stack, Memory: in.mem, Gas: in.gas})
	in.steps++
	in.pc = ins.Next()
	return op.halts, nil
}

// cost returns the full gas cost of op against the current state together
// with the memory size it needs, or 0 if memory does not grow.
func (in *Interpreter) cost(op *operation) (uint64, uint64, error) {
	var (
		cost    = op.constantGas
		memSize uint64
	)
	if op.memorySize != nil {
		size, overflow := op.memorySize(in.stack)
		if overflow {
			return 0, 0, ErrGasUintOverflow
		}
		if size > in.cfg.MaxMemory {
			return 0, 0, fmt.Errorf("%w: need %d bytes, max %d", ErrMemoryLimitExceeded, size, in.cfg.MaxMemory)
		}
		if cur := uint64(in.mem.Len()); size > cur {
			memCost, err := in.cfg.MemoryGas(cur, size)
			if err != nil {
				return 0, 0, fmt.Errorf("%w: memory gas: %v", ErrOutOfGas, err)
			}
			if cost, overflow = math.SafeAdd(cost, memCost); overflow {
				return 0, 0, ErrGasUintOverflow
			}
			memSize = size
		}
	}
	if op.dynamicGas != nil {
		dynCost, err := op.dynamicGas(in.stack)
		if err != nil {
			return 0, 0, err
		}
		var overflow bool
		if cost, overflow = math.SafeAdd(cost, dynCost); overflow {
			return 0, 0, ErrGasUintOverflow
		}
	}
	return cost, memSize, nil
}

func (in *Interpreter) capture(ins *Instruction, cost uint64, err error) {
	if in.cfg.Tracer != nil {
		in.cfg.Tracer.CaptureState(ins.PC, ins.Op, in.gas.Remaining(), cost, in.stack, in.mem, err)
	}
}

// halt moves the interpreter into its terminal state and builds the
// outcome.
func (in *Interpreter) halt(err error) {
	out := &Outcome{
		Kind:    KindOf(err),
		Err:     err,
		GasUsed: in.gas.Used(),
		GasLeft: in.gas.Remaining(),
		PC:      in.pc,
		Steps:   in.steps,
	}
	if err != nil {
		out.Status = StatusFailed
		in.log.Debug("run failed", "kind", out.Kind.String(), "pc", in.pc, "err", err, "gasUsed", out.GasUsed)
	} else {
		out.Status = StatusSucceeded
		out.Stack = in.stack.Data()
		out.Memory = in.mem.Data()
		in.log.Debug("run halted", "pc", in.pc, "steps", in.steps, "gasUsed", out.GasUsed)
	}
	in.status = out.Status
	in.outcome = out

	if !in.cfg.DisableMetrics {
		metrics.VMExecutions.Inc()
		metrics.VMSteps.Add(int64(in.steps))
		metrics.VMGasUsed.Add(int64(out.GasUsed))
		if out.Failed() {
			metrics.VMFailures.Inc()
		}
	}
	if in.cfg.Tracer != nil {
		in.cfg.Tracer.CaptureEnd(out)
	}
}
