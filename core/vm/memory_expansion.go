package vm

// memory_expansion.go prices memory growth. Memory is billed per 32-byte
// word of its high-water mark using the Yellow Paper formula
// C_mem(a) = G_memory * a + floor(a^2 / 512); growing from one size to
// another costs the difference of the two totals.

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/params"
)

// maxMemoryWordSize bounds the byte size for which the quadratic formula
// is evaluated; anything larger cannot be paid for with a uint64 budget.
const maxMemoryWordSize = 0x1FFFFFFFE0

// MemoryGasFunc returns the gas needed to grow memory from currentSize to
// newSize bytes. It is consulted before every growth with the new
// high-water mark and must not have side effects.
type MemoryGasFunc func(currentSize, newSize uint64) (uint64, error)

// ToWordSize returns the number of 32-byte words needed to hold size bytes.
func ToWordSize(size uint64) uint64 {
	if size > ^uint64(0)-31 {
		return ^uint64(0)/32 + 1
	}
	return (size + 31) / 32
}

// quadraticCost returns the total cost of holding words words of memory.
func quadraticCost(words uint64) uint64 {
	square := words * words
	return words*params.MemoryGas + square/params.QuadCoeffDiv
}

// QuadraticMemoryGas is the default MemoryGasFunc.
func QuadraticMemoryGas(currentSize, newSize uint64) (uint64, error) {
	if newSize <= currentSize {
		return 0, nil
	}
	if newSize > maxMemoryWordSize {
		return 0, ErrGasUintOverflow
	}
	oldCost := quadraticCost(ToWordSize(currentSize))
	newCost := quadraticCost(ToWordSize(newSize))
	return newCost - oldCost, nil
}

// wordToUint64 converts w to a uint64, reporting whether it overflowed.
func wordToUint64(w *Word) (uint64, bool) {
	return w.Uint64WithOverflow()
}

// calcMemSize returns offset+length as a uint64, reporting overflow. A zero
// length touches no memory regardless of the offset.
func calcMemSize(offset, length *Word) (uint64, bool) {
	if length.IsZero() {
		return 0, false
	}
	off, overflow := wordToUint64(offset)
	if overflow {
		return 0, true
	}
	l, overflow := wordToUint64(length)
	if overflow {
		return 0, true
	}
	return math.SafeAdd(off, l)
}

// --- Memory size functions for operations that access memory ---

func memoryMload(stack *Stack) (uint64, bool) {
	return calcMemSize(stack.back(0), &word32)
}

func memoryMstore(stack *Stack) (uint64, bool) {
	return calcMemSize(stack.back(0), &word32)
}

func memoryMstore8(stack *Stack) (uint64, bool) {
	return calcMemSize(stack.back(0), &word1)
}

func memoryKeccak256(stack *Stack) (uint64, bool) {
	return calcMemSize(stack.back(0), stack.back(1))
}

var (
	word1  = NewWord(1)
	word32 = NewWord(32)
)
