package vm

import "fmt"

// Instruction is one decoded position of a program: the opcode, where it
// sits, how many bytes it spans and, for PUSH0..PUSH32, the immediate
// operand.
type Instruction struct {
	PC        uint64
	Op        OpCode
	Size      uint64 // opcode byte plus immediate bytes
	Immediate Word
	JumpDest  bool // set by Disassemble for valid jump destinations
}

// Decode reads the instruction at pc. PUSHn operands that run past the end
// of code are right-padded with zero bytes. Unrecognized opcode bytes
// return ErrInvalidOpCode together with the partially decoded instruction.
func Decode(code []byte, pc uint64) (Instruction, error) {
	if pc >= uint64(len(code)) {
		return Instruction{PC: pc, Op: STOP, Size: 1}, nil
	}
	ins := Instruction{PC: pc, Op: OpCode(code[pc]), Size: 1}
	if !ins.Op.Valid() {
		return ins, fmt.Errorf("%w: %v at pc %d", ErrInvalidOpCode, ins.Op, pc)
	}
	if n := uint64(ins.Op.PushSize()); n > 0 {
		ins.Immediate = WordFromBytes(pushData(code, pc+1, n))
		ins.Size += n
	}
	return ins, nil
}

// pushData returns size bytes of code starting at start, zero-padded on the
// right where code ends early.
func pushData(code []byte, start, size uint64) []byte {
	out := make([]byte, size)
	codeLen := uint64(len(code))
	if start >= codeLen {
		return out
	}
	end := start + size
	if end > codeLen {
		end = codeLen
	}
	copy(out, code[start:end])
	return out
}

// Next returns the program counter of the following instruction.
func (ins Instruction) Next() uint64 {
	return ins.PC + ins.Size
}

func (ins Instruction) String() string {
	s := fmt.Sprintf("%05d %v", ins.PC, ins.Op)
	if ins.Op.IsPush() {
		s += " " + ins.Immediate.Hex()
	}
	return s
}

// Disassemble decodes the whole program without executing it. Invalid
// bytes are kept as single-byte instructions so the listing stays aligned
// with the code.
func Disassemble(code []byte) []Instruction {
	analysis := NewCodeAnalysis(code)

	var out []Instruction
	for pc := uint64(0); pc < uint64(len(code)); {
		ins, _ := Decode(code, pc)
		ins.JumpDest = ins.Op == JUMPDEST && analysis.ValidJumpDest(NewWord(pc))
		out = append(out, ins)
		pc = ins.Next()
	}
	return out
}
