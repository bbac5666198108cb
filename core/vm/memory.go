package vm

import "github.com/ethereum/go-ethereum/common/math"

// Memory is the byte-addressable linear memory of a run. It starts empty,
// grows only forward to exactly the highest byte touched, and zero-fills new
// bytes. Gas for growth is charged by the interpreter before the access; the
// accessors here grow on their own so that Memory is usable in isolation.
//
// Callers must keep offset+size within uint64; the accessors panic
// otherwise. The interpreter rejects such accesses as out of gas before
// touching memory.
type Memory struct {
	store []byte
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Resize grows memory to size bytes. It never shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// ensure grows memory to cover [offset, offset+size). It panics if the end
// of the range overflows uint64.
func (m *Memory) ensure(offset, size uint64) {
	end, overflow := math.SafeAdd(offset, size)
	if overflow {
		panic("memory: offset overflow")
	}
	m.Resize(end)
}

// Load32 returns the 32 bytes at offset as a big-endian word.
func (m *Memory) Load32(offset uint64) Word {
	m.ensure(offset, 32)
	return WordFromBytes(m.store[offset : offset+32])
}

// Store32 writes the 32-byte big-endian encoding of val at offset.
func (m *Memory) Store32(offset uint64, val Word) {
	m.ensure(offset, 32)
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Store8 writes the low-order byte of val at offset. No other byte is
// touched.
func (m *Memory) Store8(offset uint64, val Word) {
	m.ensure(offset, 1)
	m.store[offset] = byte(val.Uint64())
}

// Set copies value into memory at [offset, offset+size).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.ensure(offset, size)
	copy(m.store[offset:offset+size], value)
}

// Get returns a copy of memory at [offset, offset+size).
func (m *Memory) Get(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	m.ensure(offset, size)
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out
}

// getPtr returns a direct slice into memory. The caller must have resized
// memory to cover the range.
func (m *Memory) getPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the current length of memory in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns a copy of the full memory contents.
func (m *Memory) Data() []byte {
	out := make([]byte, len(m.store))
	copy(out, m.store)
	return out
}
