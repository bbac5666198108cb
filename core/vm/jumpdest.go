package vm

// JumpDestValidator confirms that a jump target is legal. It is consulted
// only by control-flow opcodes, which this interpreter does not execute.
type JumpDestValidator interface {
	ValidJumpDest(dest Word) bool
}

// CodeAnalysis is a JumpDestValidator over a fixed program. A target is
// valid when the byte at that offset is JUMPDEST and it is not part of a
// PUSH operand.
type CodeAnalysis struct {
	code   []byte
	bitmap bitvec // set bits mark PUSH immediate bytes
}

// NewCodeAnalysis scans code once and records which bytes are PUSH data.
func NewCodeAnalysis(code []byte) *CodeAnalysis {
	return &CodeAnalysis{code: code, bitmap: codeBitmap(code)}
}

// ValidJumpDest implements JumpDestValidator.
func (a *CodeAnalysis) ValidJumpDest(dest Word) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(a.code)) {
		return false
	}
	if OpCode(a.code[udest]) != JUMPDEST {
		return false
	}
	return a.IsCode(udest)
}

// IsCode reports whether the byte at pos is an opcode rather than PUSH data.
func (a *CodeAnalysis) IsCode(pos uint64) bool {
	if pos >= uint64(len(a.code)) {
		return false
	}
	return !a.bitmap.isSet(pos)
}

// bitvec is a bit vector with one bit per code byte.
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) isSet(pos uint64) bool {
	return bits[pos/8]&(1<<(pos%8)) != 0
}

// codeBitmap marks every byte that belongs to a PUSH immediate. Operands
// that run past the end of code are truncated.
func codeBitmap(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		for n := op.PushSize(); n > 0 && pc < uint64(len(code)); n-- {
			bits.set(pc)
			pc++
		}
	}
	return bits
}
