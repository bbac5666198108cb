package vm

import (
	"errors"
	"fmt"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrOutOfGas       = errors.New("out of gas")
	ErrInvalidOpCode  = errors.New("invalid opcode")

	// ErrGasUintOverflow is returned when a memory offset or a gas sum does
	// not fit in 64 bits. It is reported as an out-of-gas failure.
	ErrGasUintOverflow = errors.New("gas uint64 overflow")
	// ErrMemoryLimitExceeded is returned when an access would grow memory
	// past Config.MaxMemory. It is reported as an out-of-gas failure.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	ErrInvalidConfig = errors.New("invalid vm config")
)

// FailureKind classifies why a run halted unsuccessfully.
type FailureKind uint8

const (
	NoFailure FailureKind = iota
	StackUnderflow
	StackOverflow
	OutOfGas
	InvalidOpcode
)

func (k FailureKind) String() string {
	switch k {
	case NoFailure:
		return "none"
	case StackUnderflow:
		return "StackUnderflow"
	case StackOverflow:
		return "StackOverflow"
	case OutOfGas:
		return "OutOfGas"
	case InvalidOpcode:
		return "InvalidOpcode"
	default:
		return fmt.Sprintf("FailureKind(%d)", uint8(k))
	}
}

// KindOf maps an execution error onto its failure kind. A nil error maps to
// NoFailure. Errors outside the known set come from pricing hooks refusing a
// charge and are treated as OutOfGas.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return NoFailure
	case errors.Is(err, ErrStackUnderflow):
		return StackUnderflow
	case errors.Is(err, ErrStackOverflow):
		return StackOverflow
	case errors.Is(err, ErrOutOfGas),
		errors.Is(err, ErrGasUintOverflow),
		errors.Is(err, ErrMemoryLimitExceeded):
		return OutOfGas
	case errors.Is(err, ErrInvalidOpCode):
		return InvalidOpcode
	default:
		return OutOfGas
	}
}
